package input

import (
	"fmt"

	"urbanvision-ao/urbanvision/pkg/areas"
)

// UnknownAreaError is returned by StrictArea for names outside the catalog.
type UnknownAreaError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownAreaError) Error() string {
	return fmt.Sprintf("unknown area %q", e.Name)
}

// Area normalizes an area name against the catalog. Known names come back in
// canonical casing, unknown non-empty names are returned verbatim and empty
// input becomes areas.Fallback.
func Area(v any) string {
	name := Sanitize(v, MaxAreaLength)
	if canonical, ok := areas.Canonical(name); ok {
		return canonical
	}
	if name != "" {
		return name
	}
	return areas.Fallback
}

// StrictArea is Area without the passthrough: names that are not in the
// catalog produce an *UnknownAreaError.
func StrictArea(v any) (string, error) {
	name := Sanitize(v, MaxAreaLength)
	if name == "" {
		return areas.Fallback, nil
	}
	if canonical, ok := areas.Canonical(name); ok {
		return canonical, nil
	}
	return "", &UnknownAreaError{Name: name}
}
