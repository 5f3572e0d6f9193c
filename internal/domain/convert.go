package domain

import "fmt"

// absoluteZeroOffset is the Celsius value of 0 K negated.
const absoluteZeroOffset = 273.15

// ConvertLength converts value between two length units via millimeters.
func ConvertLength(value float64, from, to string) (float64, error) {
	return convertByFactor(Length, lengthFactors, value, from, to)
}

// ConvertWeight converts value between two weight units via milligrams.
func ConvertWeight(value float64, from, to string) (float64, error) {
	return convertByFactor(Weight, weightFactors, value, from, to)
}

// convertByFactor computes value * factors[from] / factors[to]. Both tokens
// are checked before the identity shortcut, so an unknown unit converted to
// itself still fails.
func convertByFactor(c Category, factors map[string]float64, value float64, from, to string) (float64, error) {
	fromFactor, ok := factors[from]
	if !ok {
		return 0, &UnknownUnitError{Category: c, Unit: from}
	}
	toFactor, ok := factors[to]
	if !ok {
		return 0, &UnknownUnitError{Category: c, Unit: to}
	}
	if from == to {
		return value, nil
	}
	return value * fromFactor / toFactor, nil
}

// ConvertTemperature converts value between the celsius, fahrenheit and
// kelvin scales. Values below absolute zero are converted like any other.
func ConvertTemperature(value float64, from, to string) (float64, error) {
	if !isScale(from) {
		return 0, &UnknownUnitError{Category: Temperature, Unit: from}
	}
	if !isScale(to) {
		return 0, &UnknownUnitError{Category: Temperature, Unit: to}
	}

	switch from {
	case Celsius:
		switch to {
		case Fahrenheit:
			return value*9/5 + 32, nil
		case Kelvin:
			return value + absoluteZeroOffset, nil
		}
	case Fahrenheit:
		switch to {
		case Celsius:
			return (value - 32) * 5 / 9, nil
		case Kelvin:
			return (value-32)*5/9 + absoluteZeroOffset, nil
		}
	case Kelvin:
		switch to {
		case Celsius:
			return value - absoluteZeroOffset, nil
		case Fahrenheit:
			return (value-absoluteZeroOffset)*9/5 + 32, nil
		}
	}
	// from == to
	return value, nil
}

func isScale(unit string) bool {
	switch unit {
	case Celsius, Fahrenheit, Kelvin:
		return true
	default:
		return false
	}
}

// Convert dispatches to the converter for category c.
func Convert(c Category, value float64, from, to string) (float64, error) {
	switch c {
	case Length:
		return ConvertLength(value, from, to)
	case Weight:
		return ConvertWeight(value, from, to)
	case Temperature:
		return ConvertTemperature(value, from, to)
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownCategory, c)
	}
}
