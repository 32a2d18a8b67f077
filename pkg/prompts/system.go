// Package prompts builds the chat message sequences sent to the completion
// backend. Every sequence starts with the fixed system prompt and ends with
// exactly one user message carrying the caller's current request.
package prompts

import (
	"strings"

	"urbanvision-ao/urbanvision/pkg/areas"
)

const promptIntro = `Você é um assistente especializado em Visão Urbana e Gestão Ambiental para Angola.
Seu nome é "Urban Vision AI". Você tem conhecimento sobre todas as 18 províncias de Angola.

Você tem conhecimento profundo sobre:

1. **Monitoramento Ambiental**:
   - Dióxido de Carbono (CO2): níveis, impactos na saúde e no clima
   - Zonas de Calor: ilhas de calor urbanas, causas e efeitos
   - Qualidade do ar: PM2.5, SO2 e outros poluentes

2. **Previsão e Análise com IA**:
   - Crescimento das zonas de calor ao longo dos anos
   - Previsão de aumento de temperatura em áreas específicas
   - Tendências climáticas urbanas

3. **Recomendações de Melhoria**:
   - Restabelecimento de áreas verdes: tipos de plantas, quantidade necessária
   - Tempo de recuperação da vegetação
   - Estratégias de mitigação do calor urbano

4. **Planejamento Urbano e Industrial**:
   - Identificação de zonas industriais
   - Restrições para novas construções industriais
   - Zoneamento sustentável

`

const promptClosing = `Responda sempre em português de forma clara e útil. Quando fizer previsões ou recomendações,
seja específico e baseie-se em dados científicos sobre urbanismo sustentável.`

// section groups provinces under one heading of the locality listing.
// Inline sections print their single locality on the heading line.
type section struct {
	heading   string
	provinces []string
	inline    bool
}

// sections lists the named provinces first. Provinces with measurements that
// none of them claims are gathered under the trailing heading.
var sections = []section{
	{heading: "Luanda (Capital) - PM2.5 médio: 13 µg/m³", provinces: []string{"Luanda"}},
	{heading: "Benguela - PM2.5 médio: 12 µg/m³", provinces: []string{"Benguela"}},
	{heading: "Huambo (Planalto Central) - PM2.5 médio: 13 µg/m³", provinces: []string{"Huambo"}},
	{heading: "Huíla - PM2.5 médio: 12 µg/m³", provinces: []string{"Huíla"}},
	{heading: "Cabinda", provinces: []string{"Cabinda"}, inline: true},
	{heading: "Namibe (Deserto)", provinces: []string{"Namibe"}},
}

const otherHeading = "Outras Capitais Provinciais"

// systemPrompt is the knowledge base prefixed to every invocation.
var systemPrompt = promptIntro + localities() + promptClosing

// localities renders the measured localities of the areas catalog.
func localities() string {
	var b strings.Builder
	b.WriteString("Dados baseados em medições reais (IQAir 2024, World Bank):\n")
	b.WriteString("Nota: Angola tem média PM2.5 de 11-13 µg/m³ nas principais cidades.\n")

	claimed := make(map[string]bool)
	for _, s := range sections {
		var list []areas.Area
		for _, p := range s.provinces {
			claimed[p] = true
			list = append(list, areas.InProvince(p)...)
		}
		if len(list) == 0 {
			continue
		}
		if s.inline && len(list) == 1 {
			b.WriteString("\n**" + s.heading + ":** " + measurements(list[0]) + "\n")
			continue
		}
		writeSection(&b, s.heading, list)
	}

	var rest []areas.Area
	for _, a := range areas.All() {
		if a.HasStats && !claimed[a.Province] {
			rest = append(rest, a)
		}
	}
	if len(rest) > 0 {
		writeSection(&b, otherHeading, rest)
	}
	b.WriteString("\n")
	return b.String()
}

func writeSection(b *strings.Builder, heading string, list []areas.Area) {
	b.WriteString("\n**" + heading + ":**\n")
	for _, a := range list {
		b.WriteString("- " + a.Name + ": " + measurements(a) + "\n")
	}
}

func measurements(a areas.Area) string {
	line := "PM2.5=" + num(a.PM25) + ", SO2=" + num(a.SO2) +
		", Vegetação=" + num(a.Vegetation) + "%, Temp média=" + num(a.AvgTemp) + "°C"
	if a.Note != "" {
		line += " (" + a.Note + ")"
	}
	return line
}

// SystemPrompt returns the fixed system prompt.
func SystemPrompt() string {
	return systemPrompt
}
