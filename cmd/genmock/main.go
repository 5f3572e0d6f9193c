// Command genmock generates conversion fixtures for the stream and API test
// suites: one request per ordered unit pair in every category, and the
// results the service produces for them. It runs the actual domain package
// so the fixtures match real pipeline output.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -requests-out data/mock/conversion_requests.json \
//	  -results-out data/mock/conversion_results.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// fixtureTime stamps ProcessedAt so regenerated fixtures are byte-identical.
var fixtureTime = time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC)

// sampleValues are converted for every unit pair. Length and weight reject
// negatives, so the negative sample is used for temperature only.
var sampleValues = []float64{0, 1, 12.5, 1000}

const negativeTemperature = -40

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	requestsOut := flag.String("requests-out", "", "output path for the conversion request fixture")
	resultsOut := flag.String("results-out", "", "output path for the conversion result fixture")
	flag.Parse()

	if *requestsOut == "" || *resultsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -requests-out, -results-out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	requests := buildRequests()
	results := make([]domain.ConversionResult, 0, len(requests))
	for _, req := range requests {
		res, err := domain.Execute(req)
		if err != nil {
			return fmt.Errorf("convert %s %g %s->%s: %w", req.Category, req.Value, req.From, req.To, err)
		}
		results = append(results, res)
	}

	if err := writeJSON(*requestsOut, requests); err != nil {
		return fmt.Errorf("writing request fixture: %w", err)
	}
	log.Printf("wrote request fixture: %s", *requestsOut)

	if err := writeJSON(*resultsOut, results); err != nil {
		return fmt.Errorf("writing result fixture: %w", err)
	}
	log.Printf("wrote result fixture: %s", *resultsOut)

	printStats(requests)
	return nil
}

// buildRequests enumerates every ordered (from, to) pair, identity pairs
// included, for each category and sample value.
func buildRequests() []domain.ConversionRequest {
	var requests []domain.ConversionRequest //nolint:prealloc // size depends on the unit tables
	for _, c := range domain.Categories() {
		values := sampleValues
		if c == domain.Temperature {
			values = append(values[:len(values):len(values)], negativeTemperature)
		}
		units := domain.Units(c)
		for _, from := range units {
			for _, to := range units {
				for _, v := range values {
					requests = append(requests, domain.ConversionRequest{
						Category: c,
						Value:    v,
						From:     from,
						To:       to,
					})
				}
			}
		}
	}
	return requests
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(requests []domain.ConversionRequest) {
	counts := map[domain.Category]int{}
	for _, r := range requests {
		counts[r.Category]++
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(requests))
	for _, c := range domain.Categories() {
		n := len(domain.Units(c))
		fmt.Printf("%s: %d requests (%d units, %d pairs)\n", c.Title(), counts[c], n, n*n)
	}
}
