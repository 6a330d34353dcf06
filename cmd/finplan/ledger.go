package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Dan9191/advisory-service/internal/finance"
	"github.com/Dan9191/advisory-service/internal/ledger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func loadLedger(path string) ([]ledger.Entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return []ledger.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()
	return ledger.Load(f), nil
}

// saveLedger replaces the file atomically
func saveLedger(path string, entries []ledger.Entry) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := ledger.Save(tmp, entries); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

func ledgerCmd(logger *logrus.Logger) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Track income and expenses in a local file",
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", ledger.StorageKey+".json", "ledger file")

	apply := func(cmd *cobra.Command, action ledger.Action) error {
		prior, err := loadLedger(file)
		if err != nil {
			return err
		}
		next, err := ledger.Reduce(prior, action)
		if err != nil {
			return err
		}
		if err := saveLedger(file, next); err != nil {
			return err
		}
		logger.Debugf("Ledger %s: %d -> %d entries", file, len(prior), len(next))
		return printJSON(cmd, ledger.Summarize(next))
	}

	var entry ledger.Entry
	var entryType string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry.Type = ledger.EntryType(entryType)
			return apply(cmd, ledger.Add(entry))
		},
	}
	add.Flags().StringVar(&entryType, "type", string(ledger.Expense), "income or expense")
	add.Flags().StringVar(&entry.Category, "category", "", "entry category")
	add.Flags().Float64Var(&entry.Amount, "amount", 0, "amount in rupees")
	add.Flags().StringVar(&entry.Date, "date", "", "date as YYYY-MM-DD")
	add.Flags().StringVar(&entry.Description, "description", "", "optional description")
	add.Flags().StringVar(&entry.ID, "id", "", "optional entry id")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return apply(cmd, ledger.Delete(args[0]))
		},
	}

	var confirmed bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear %s without --yes", file)
			}
			return apply(cmd, ledger.Clear())
		},
	}
	clearCmd.Flags().BoolVar(&confirmed, "yes", false, "confirm clearing the ledger")

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Print totals, categories and the monthly trend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadLedger(file)
			if err != nil {
				return err
			}
			s := ledger.Summarize(entries)
			logger.Infof("Net savings: %s", finance.AmountToWords(s.NetSavings))
			return printJSON(cmd, s)
		},
	}

	cmd.AddCommand(add, del, clearCmd, summary)
	return cmd
}
