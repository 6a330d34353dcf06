// Command finplan runs the advisory calculators and a file-backed wealth
// ledger from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	logger := logrus.New()
	logger.SetOutput(errOut)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)

	var verbose bool
	root := &cobra.Command{
		Use:           "finplan",
		Short:         "Personal finance calculators",
		Long:          "Savings, retirement, insurance and financial health calculators with a local wealth ledger",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(calculatorCmds(logger)...)
	root.AddCommand(ledgerCmd(logger))
	return root
}

// readInput decodes a YAML file, or stdin when path is "-"
func readInput(cmd *cobra.Command, path string, dst interface{}) error {
	var r io.Reader
	switch path {
	case "":
		return fmt.Errorf("--input is required")
	case "-":
		r = cmd.InOrStdin()
	default:
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := yaml.NewDecoder(r).Decode(dst); err != nil && err != io.EOF {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
