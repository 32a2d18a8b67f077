// Package areas holds the read-only catalog of Angolan localities known to
// Urban Vision, together with the measured environmental statistics that are
// rendered into the system prompt.
package areas

import "strings"

// Fallback is the top-level area used when a request names no area at all.
const Fallback = "Angola"

// Area is a known locality with its reference measurements (IQAir 2024,
// World Bank). Aggregate entries such as "Luanda" or "Angola" carry no
// per-locality statistics and have HasStats set to false.
type Area struct {
	// Name is the canonical spelling used in responses and prompts.
	Name string

	// Province is the province the locality belongs to.
	Province string

	// PM25 is the average PM2.5 concentration in µg/m³.
	PM25 float64

	// SO2 is the average SO2 concentration.
	SO2 float64

	// Vegetation is the vegetation cover in percent.
	Vegetation float64

	// AvgTemp is the average temperature in °C.
	AvgTemp float64

	// Note is a short qualifier ("zona industrial", "altitude 1700m").
	Note string

	// HasStats reports whether the measurement fields are populated.
	HasStats bool
}

func stat(name, province string, pm25, so2, veg, temp float64, note string) Area {
	return Area{
		Name:       name,
		Province:   province,
		PM25:       pm25,
		SO2:        so2,
		Vegetation: veg,
		AvgTemp:    temp,
		Note:       note,
		HasStats:   true,
	}
}

// catalog is ordered the way the localities are presented to clients.
var catalog = []Area{
	stat("Maianga", "Luanda", 14, 5, 18, 27, ""),
	stat("Samba", "Luanda", 12, 4, 22, 26, ""),
	stat("Rangel", "Luanda", 16, 6, 12, 28, "alta densidade"),
	stat("Ingombota", "Luanda", 13, 4, 25, 26, ""),
	stat("Viana", "Luanda", 15, 6, 15, 27, "zona industrial"),
	stat("Cacuaco", "Luanda", 14, 5, 20, 27, "refinaria"),
	stat("Benguela", "Benguela", 12, 3, 28, 24, ""),
	stat("Lobito", "Benguela", 13, 4, 24, 25, ""),
	stat("Catumbela", "Benguela", 14, 5, 30, 25, ""),
	stat("Huambo", "Huambo", 13, 3, 35, 19, "altitude 1700m"),
	stat("Caála", "Huambo", 11, 2, 42, 18, ""),
	stat("Lubango", "Huíla", 12, 3, 38, 18, "altitude 1760m"),
	stat("Matala", "Huíla", 11, 2, 32, 22, ""),
	stat("Cabinda", "Cabinda", 14, 7, 85, 26, "floresta tropical + petróleo"),
	stat("Namibe", "Namibe", 8, 2, 5, 21, ""),
	stat("Tômbwa", "Namibe", 7, 1, 3, 20, ""),
	stat("Malanje", "Malanje", 11, 3, 55, 24, ""),
	{Name: "Sumbe", Province: "Cuanza Sul"},
	{Name: "Porto Amboim", Province: "Cuanza Sul"},
	{Name: "N'dalatando", Province: "Cuanza Norte"},
	stat("Uíge", "Uíge", 10, 2, 70, 23, ""),
	stat("M'banza Congo", "Zaire", 9, 2, 65, 24, ""),
	stat("Dundo", "Lunda Norte", 13, 5, 60, 25, "mineração diamantes"),
	stat("Saurimo", "Lunda Sul", 12, 4, 58, 24, ""),
	stat("Luena", "Moxico", 11, 2, 72, 22, "Moxico"),
	stat("Kuito", "Bié", 12, 2, 45, 20, ""),
	stat("Menongue", "Cuando Cubango", 9, 1, 40, 23, "savana"),
	stat("Ondjiva", "Cunene", 10, 2, 20, 26, "semiárido"),
	{Name: "Caxito", Province: "Bengo"},
	{Name: "Luanda", Province: "Luanda"},
	{Name: Fallback},
}

var byName = func() map[string]Area {
	m := make(map[string]Area, len(catalog))
	for _, a := range catalog {
		m[a.Name] = a
	}
	return m
}()

// Names returns the canonical names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, a := range catalog {
		names[i] = a.Name
	}
	return names
}

// All returns a copy of the catalog.
func All() []Area {
	out := make([]Area, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the area with exactly the given canonical name.
func Lookup(name string) (Area, bool) {
	a, ok := byName[name]
	return a, ok
}

// Canonical resolves name to its canonical spelling. An exact match wins;
// otherwise the first case-insensitive match in catalog order is returned.
func Canonical(name string) (string, bool) {
	if _, ok := Lookup(name); ok {
		return name, true
	}
	for _, n := range Names() {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// InProvince returns the areas with statistics that belong to province, in
// catalog order.
func InProvince(province string) []Area {
	var out []Area
	for _, a := range catalog {
		if a.Province == province && a.HasStats {
			out = append(out, a)
		}
	}
	return out
}
