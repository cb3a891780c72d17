package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/context-maximiser/sample-fixture/pkg/catalog"
	"github.com/context-maximiser/sample-fixture/pkg/sample"
	"github.com/context-maximiser/sample-fixture/pkg/scipindex"
)

var greetCmd = &cobra.Command{
	Use:   "greet NAME",
	Short: "Greet a person by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := sample.Fgreet(cmd.OutOrStdout(), args[0])
		if err != nil {
			return err
		}
		logger.Debug("Greeted", zap.String("name", args[0]))
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var calcCmd = &cobra.Command{
	Use:   "calc X Y",
	Short: "Print the sum of two numbers",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ints, floats, err := parseNumbers(args)
		if err != nil {
			return err
		}
		if ints != nil {
			fmt.Fprintln(cmd.OutOrStdout(), sample.Calculate(ints[0], ints[1]))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatFloat(sample.Calculate(floats[0], floats[1])))
		return nil
	},
}

var doubleCmd = &cobra.Command{
	Use:   "double N...",
	Short: "Print every number doubled",
	RunE: func(cmd *cobra.Command, args []string) error {
		ints, floats, err := parseNumbers(args)
		if err != nil {
			return err
		}

		var out []string
		if ints != nil {
			for _, n := range sample.ProcessData(ints) {
				out = append(out, strconv.FormatInt(n, 10))
			}
		} else {
			for _, n := range sample.ProcessData(floats) {
				out = append(out, formatFloat(n))
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", strings.Join(out, " "))
		return nil
	},
}

var processCmd = &cobra.Command{
	Use:   "process NAME DATA",
	Short: "Tag DATA with a processor name",
	Long:  "Create a DataProcessor named NAME and print the result of processing DATA. Integer DATA is processed as a number.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := sample.NewDataProcessor(args[0])

		var data any = args[1]
		if n, err := strconv.ParseInt(args[1], 10, 64); err == nil {
			data = n
		}
		fmt.Fprintln(cmd.OutOrStdout(), p.Process(data))
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fixture demo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sample.Run(cmd.OutOrStdout())
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the fixture symbol catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		c, err := scanFixture()
		if err != nil {
			return err
		}
		if missing := c.Missing(catalog.Expected()); len(missing) > 0 {
			logger.Warn("Fixture is missing expected symbols", zap.Strings("missing", missing))
		}
		return c.Encode(cmd.OutOrStdout(), format)
	},
}

var scipCmd = &cobra.Command{
	Use:   "scip",
	Short: "Write the golden SCIP index of the fixture",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		c, err := scanFixture()
		if err != nil {
			return err
		}
		idx := scipindex.Build(c, "samplefixture", Version)
		if err := scipindex.Write(out, idx); err != nil {
			return err
		}

		logger.Info("Wrote SCIP index", zap.String("path", out), zap.Int("documents", len(idx.Documents)))
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d documents to %s\n", len(idx.Documents), out)
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringP("format", "f", catalog.FormatTable, "output format (table, json, yaml)")
	scipCmd.Flags().StringP("out", "o", "index.scip", "output file")
}

// parseNumbers parses args as integers, falling back to floats when any
// argument is not an integer. Exactly one of the returned slices is non-nil
// on success.
func parseNumbers(args []string) ([]int64, []float64, error) {
	ints := make([]int64, 0, len(args))
	for _, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			ints = nil
			break
		}
		ints = append(ints, n)
	}
	if ints != nil {
		return ints, nil, nil
	}

	floats := make([]float64, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid number %q: %w", a, err)
		}
		floats = append(floats, f)
	}
	return nil, floats, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
