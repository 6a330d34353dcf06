package main

import (
	"github.com/Dan9191/advisory-service/internal/finance"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type healthFile struct {
	Variant             string `yaml:"variant"`
	finance.HealthInput `yaml:",inline"`
}

// calculator builds a command that decodes T from --input and prints run's result
func calculator[T any](name, short string, logger *logrus.Logger, run func(T) (interface{}, error)) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in T
			if err := readInput(cmd, input, &in); err != nil {
				return err
			}
			logger.Debugf("%s input: %+v", name, in)
			out, err := run(in)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML input file, - for stdin")
	return cmd
}

func calculatorCmds(logger *logrus.Logger) []*cobra.Command {
	health := calculator("health", "Recommend health insurance cover", logger, func(in healthFile) (interface{}, error) {
		v, err := finance.HealthVariantByName(in.Variant)
		if err != nil {
			return nil, err
		}
		return finance.EstimateHealthCover(v, in.HealthInput), nil
	})

	return []*cobra.Command{
		calculator("savings", "Project savings growth", logger, func(in finance.SavingsInput) (interface{}, error) {
			return finance.ProjectSavings(in), nil
		}),
		calculator("retirement", "Estimate the retirement corpus", logger, func(in finance.RetirementInput) (interface{}, error) {
			return finance.EstimateRetirementGap(in), nil
		}),
		health,
		calculator("term", "Recommend term life cover", logger, func(in finance.TermInput) (interface{}, error) {
			return finance.EstimateTermCover(in), nil
		}),
		calculator("score", "Score financial health with insurance recommendations", logger, func(in finance.AssessmentInput) (interface{}, error) {
			return finance.Assess(in), nil
		}),
		calculator("dime", "Compute the DIME life insurance gap", logger, func(in finance.DimeInput) (interface{}, error) {
			return finance.CalculateDimeGap(in), nil
		}),
	}
}
