// Command validate runs the conversion self-checks: literal cross-checks,
// identity, round-trip precision, and rejection of unknown units. Given the
// fixtures written by genmock, it also re-runs every request and verifies the
// stored results still match.
//
// Usage:
//
//	go run ./cmd/validate
//	go run ./cmd/validate \
//	  -requests data/mock/conversion_requests.json \
//	  -results data/mock/conversion_results.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// fixtureTime matches genmock so regenerated results are comparable.
var fixtureTime = time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC)

const (
	literalTolerance   = 1e-9
	roundTripTolerance = 1e-9
	roundTripValue     = 123.456
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	requestsPath := flag.String("requests", "", "path to the conversion request fixture (optional)")
	resultsPath := flag.String("results", "", "path to the conversion result fixture (optional)")
	flag.Parse()

	if (*requestsPath == "") != (*resultsPath == "") {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*requestsPath, *resultsPath))
}

func run(requestsPath, resultsPath string) int {
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	fmt.Println("=== Unit Conversion Validation ===")
	fmt.Println()

	phases := []*phase{
		validateLiterals(),
		validateIdentity(),
		validateRoundTrip(),
		validateUnknownUnits(),
	}

	if requestsPath != "" {
		requests, err := loadJSON[domain.ConversionRequest](requestsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load requests: %v\n", err)
			return 1
		}
		results, err := loadJSON[domain.ConversionResult](resultsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load results: %v\n", err)
			return 1
		}
		phases = append(phases, validateFixtures(requests, results))
	}

	return report(phases)
}

func report(phases []*phase) int {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Literal cross-checks ──

type literal struct {
	category domain.Category
	value    float64
	from, to string
	expected float64
}

var literals = []literal{
	{domain.Length, 1, "m", "mm", 1000},
	{domain.Length, 1, "mile", "km", 1.609344},
	{domain.Weight, 1, "kg", "g", 1000},
	{domain.Weight, 1, "pound", "ounce", 16},
	{domain.Temperature, 0, domain.Celsius, domain.Fahrenheit, 32},
	{domain.Temperature, 100, domain.Celsius, domain.Kelvin, 373.15},
	{domain.Temperature, 32, domain.Fahrenheit, domain.Celsius, 0},
}

func validateLiterals() *phase {
	p := &phase{name: "Phase 1: Literal cross-checks"}
	for _, l := range literals {
		got, err := domain.Convert(l.category, l.value, l.from, l.to)
		if err != nil {
			p.errorf("%s %g %s->%s: %v", l.category, l.value, l.from, l.to, err)
			continue
		}
		if math.Abs(got-l.expected) > literalTolerance {
			p.errorf("%s %g %s->%s: expected %g, got %g", l.category, l.value, l.from, l.to, l.expected, got)
		}
	}
	return p
}

// ── Phase 2: Identity ──

func validateIdentity() *phase {
	p := &phase{name: "Phase 2: Identity (same unit)"}
	for _, c := range domain.Categories() {
		for _, u := range domain.Units(c) {
			got, err := domain.Convert(c, roundTripValue, u, u)
			if err != nil {
				p.errorf("%s %s: %v", c, u, err)
				continue
			}
			if got != roundTripValue {
				p.errorf("%s %s: expected %g unchanged, got %g", c, u, roundTripValue, got)
			}
		}
	}
	return p
}

// ── Phase 3: Round trip ──

func validateRoundTrip() *phase {
	p := &phase{name: "Phase 3: Round trip (relative 1e-9)"}
	for _, c := range domain.Categories() {
		units := domain.Units(c)
		for _, a := range units {
			for _, b := range units {
				there, err := domain.Convert(c, roundTripValue, a, b)
				if err != nil {
					p.errorf("%s %s->%s: %v", c, a, b, err)
					continue
				}
				back, err := domain.Convert(c, there, b, a)
				if err != nil {
					p.errorf("%s %s->%s: %v", c, b, a, err)
					continue
				}
				if rel := math.Abs(back-roundTripValue) / roundTripValue; rel > roundTripTolerance {
					p.errorf("%s %s->%s->%s: got %g (relative error %g)", c, a, b, a, back, rel)
				}
			}
		}
	}
	return p
}

// ── Phase 4: Unknown units ──

func validateUnknownUnits() *phase {
	p := &phase{name: "Phase 4: Unknown units rejected"}
	checks := []struct {
		category domain.Category
		from, to string
	}{
		{domain.Length, "lightyear", "m"},
		{domain.Length, "m", "kg"},
		{domain.Weight, "stone", "kg"},
		{domain.Temperature, domain.Celsius, "parsecs"},
		{domain.Temperature, "rankine", domain.Kelvin},
	}
	for _, ch := range checks {
		_, err := domain.Convert(ch.category, 5, ch.from, ch.to)
		if !errors.Is(err, domain.ErrUnknownUnit) {
			p.errorf("%s %s->%s: expected unknown unit error, got %v", ch.category, ch.from, ch.to, err)
		}
	}
	return p
}

// ── Phase 5: Fixture parity ──

func validateFixtures(requests []domain.ConversionRequest, results []domain.ConversionResult) *phase {
	p := &phase{name: "Phase 5: Fixture parity (genmock)"}

	if len(requests) != len(results) {
		p.errorf("count: %d requests, %d results", len(requests), len(results))
	}

	byID := make(map[string]domain.ConversionResult, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}

	for i, req := range requests {
		want, err := domain.Execute(req)
		if err != nil {
			p.errorf("request %d: %v", i, err)
			continue
		}
		got, ok := byID[want.ID]
		if !ok {
			p.errorf("request %d: ID %q not found in results", i, want.ID)
			continue
		}
		if math.Abs(got.Result-want.Result) > literalTolerance {
			p.errorf("ID %s: result: expected %g, got %g", want.ID, want.Result, got.Result)
		}
		if got.Display != want.Display {
			p.errorf("ID %s: display: expected %q, got %q", want.ID, want.Display, got.Display)
		}
		if got.Error != "" {
			p.errorf("ID %s: unexpected error %q", want.ID, got.Error)
		}
	}
	return p
}
