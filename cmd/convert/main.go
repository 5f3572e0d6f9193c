// Command convert performs a single unit conversion from the terminal.
//
// Usage:
//
//	convert -category length -from m -to mm 1
//	convert -category temperature -from celsius -to kelvin -- -40
//	convert -list
//
// A negative value must follow "--" so it is not parsed as a flag.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/unit-converter-service/internal/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	category := fs.String("category", "", "unit category: length, weight or temperature")
	from := fs.String("from", "", "source unit")
	to := fs.String("to", "", "target unit")
	list := fs.Bool("list", false, "list categories and their units")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: convert -category <category> -from <unit> -to <unit> <value>")
		fmt.Fprintln(stderr, "       convert -category <category> -from <unit> -to <unit> -- <negative value>")
		fmt.Fprintln(stderr, "       convert -list")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *list {
		printUnits(stdout)
		return 0
	}

	if *category == "" || *from == "" || *to == "" || fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	value, err := strconv.ParseFloat(fs.Arg(0), 64)
	if err != nil {
		fmt.Fprintf(stderr, "error: value %q is not a number\n", fs.Arg(0))
		return 1
	}

	res, err := domain.Execute(domain.ConversionRequest{
		Category: domain.Category(*category),
		Value:    value,
		From:     *from,
		To:       *to,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, res.Display)
	return 0
}

func printUnits(w io.Writer) {
	for _, c := range domain.Categories() {
		fmt.Fprintf(w, "%s: %s\n", c.Title(), strings.Join(domain.Units(c), ", "))
	}
}
