package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/request"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/service"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/validation"
)

// loadReport reads a parsed report from a YAML or JSON file.
// JSON is valid YAML, so one decoder handles both.
func loadReport(path string) (model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report model.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return model.Report{}, fmt.Errorf("parse report %s: %w", path, err)
	}

	if err := validation.ValidateSimulate(request.SimulateRequest{
		Type: string(report.Type),
		Rows: report.Rows,
	}); err != nil {
		return model.Report{}, err
	}
	return report, nil
}

type simulateOutput struct {
	Simulation service.SimulationResult `json:"simulation"`
	Commit     *model.CommitSummary     `json:"commit,omitempty"`
}

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	var (
		userID      string
		file        string
		commit      bool
		exclude     []string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Classify a report against a user's holdings, optionally committing the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateUUID(userID); err != nil {
				return err
			}
			report, err := loadReport(file)
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer db.Close()

			previews, err := service.NewPreviewSealer("", time.Minute)
			if err != nil {
				return err
			}
			reconciler := service.NewReconcileService(
				repository.NewUserRepository(db),
				repository.NewWatchlistRepository(db),
				repository.NewHoldingRepository(db),
				previews,
				time.Minute,
				concurrency,
			)

			result, err := reconciler.Simulate(cmd.Context(), userID, report)
			if err != nil {
				return err
			}
			out := simulateOutput{Simulation: result}

			if commit {
				summary, err := reconciler.CommitPreview(cmd.Context(), userID, result.PreviewToken, exclude)
				out.Commit = &summary
				if printErr := printJSON(cmd.OutOrStdout(), out); printErr != nil {
					return printErr
				}
				if err != nil {
					return err
				}
				if summary.Status() != model.CommitStatusSucceeded {
					return fmt.Errorf("commit %s: %d of %d writes succeeded", summary.Status(), summary.Succeeded, summary.Attempted)
				}
				return nil
			}

			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID")
	cmd.Flags().StringVarP(&file, "file", "f", "", "parsed report (YAML or JSON)")
	cmd.Flags().BoolVar(&commit, "commit", false, "write the classification after simulating")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "codes to leave out of the commit")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "maximum writes in flight, 0 for unbounded")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
