// Command partiqlparse parses a PartiQL expression from an argument or
// stdin and prints its s-expression form.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/partiql-go/partiql/parser"
)

func main() {
	app := cli.NewApp()
	app.Name = "partiqlparse"
	app.Usage = "parse a PartiQL expression and print its s-expression form"
	app.ArgsUsage = "[query]"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "distinct-aggregates",
			Usage: "recognize only the core aggregate function set (count, sum, min, max, avg), not the extended set (array_agg, any, every, stddev, stddev_pop)",
		},
	}
	app.Action = func(c *cli.Context) error {
		text, err := readQuery(c)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		aggregateFuncs := parser.ExtendedAggregateFunctions
		if c.Bool("distinct-aggregates") {
			aggregateFuncs = parser.StandardAggregateFunctions
		}

		sexp, err := parser.ParseToSexp(text, parser.WithAggregateFunctions(aggregateFuncs))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Println(sexp)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readQuery(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args(), " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
