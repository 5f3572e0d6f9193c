// Package domain holds the unit conversion core and the request/result
// types its collaborators exchange.
//
// # Categories and Units
//
// Three independent categories are supported. Unit tokens are lower-case
// strings and are only meaningful inside their own category:
//
//	Length:      mm, cm, m, km, inch, foot, yard, mile
//	Weight:      mg, g, kg, ton, ounce, pound
//	Temperature: celsius, fahrenheit, kelvin
//
// # Base Units
//
// Length and weight conversions are routed through a base unit using an
// immutable factor table (magnitude of each unit expressed in the base unit):
//
//	Length: millimeter (mm = 1, inch = 25.4, mile = 1609344, ...)
//	Weight: milligram  (mg = 1, ounce = 28349.5, pound = 453592, ...)
//
// A conversion is value * factor[from] / factor[to]. Converting a unit to
// itself returns the input unchanged so no floating-point drift is introduced.
//
// Temperature uses the affine formulas between Celsius, Fahrenheit and
// Kelvin. There is no absolute-zero check.
//
// # Errors
//
// An unrecognized unit token in any category fails with [ErrUnknownUnit]
// (wrapped in [*UnknownUnitError]). This includes temperature scales: the
// converters never silently pass an unknown token through.
//
// # Collaborators
//
// [ConvertLength], [ConvertWeight] and [ConvertTemperature] are pure and safe
// for concurrent use. [Execute] wraps them for the HTTP, stream and CLI
// adapters: it normalizes and validates a [ConversionRequest] (length and
// weight values must be non-negative), formats the two-decimal display line
// and stamps the result with a deterministic ID and the processing time.
package domain
