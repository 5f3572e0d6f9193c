package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category selects which converter and unit set apply to a request.
type Category string

const (
	Length      Category = "length"
	Weight      Category = "weight"
	Temperature Category = "temperature"
)

var (
	// ErrUnknownUnit is returned when a unit token is not part of the category's unit set.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnknownCategory is returned for a category other than length, weight or temperature.
	ErrUnknownCategory = errors.New("unknown category")
)

// Title returns the display name of the category, e.g. "Length".
func (c Category) Title() string {
	// A Caser is stateful, so one is built per call.
	return cases.Title(language.English).String(string(c))
}

// UnknownUnitError reports which token was rejected and in which category.
type UnknownUnitError struct {
	Category Category
	Unit     string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown %s unit %q", e.Category, e.Unit)
}

func (e *UnknownUnitError) Unwrap() error { return ErrUnknownUnit }

// Factor tables map each unit to its magnitude in the category's base unit.
// They are never written after initialization.
var (
	// lengthFactors are expressed in millimeters.
	lengthFactors = map[string]float64{
		"mm":   1,
		"cm":   10,
		"m":    1000,
		"km":   1000000,
		"inch": 25.4,
		"foot": 304.8,
		"yard": 914.4,
		"mile": 1609344,
	}

	// weightFactors are expressed in milligrams.
	weightFactors = map[string]float64{
		"mg":    1,
		"g":     1000,
		"kg":    1000000,
		"ton":   1000000000,
		"ounce": 28349.5,
		"pound": 453592,
	}
)

const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
	Kelvin     = "kelvin"
)

// Presentation order of each category's units.
var unitOrder = map[Category][]string{
	Length:      {"mm", "cm", "m", "km", "inch", "foot", "yard", "mile"},
	Weight:      {"mg", "g", "kg", "ton", "ounce", "pound"},
	Temperature: {Celsius, Fahrenheit, Kelvin},
}

// Categories returns the supported categories in display order.
func Categories() []Category {
	return []Category{Length, Weight, Temperature}
}

// ParseCategory accepts a category name in any letter case, e.g. "Length".
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := unitOrder[c]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Units returns the unit tokens of a category in display order, or nil for
// an unknown category. The returned slice is a copy.
func Units(c Category) []string {
	return slices.Clone(unitOrder[c])
}

// IsUnit reports whether unit is a valid token within category c.
func IsUnit(c Category, unit string) bool {
	return slices.Contains(unitOrder[c], unit)
}
