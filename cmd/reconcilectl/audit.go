package main

import (
	"github.com/spf13/cobra"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/service"
)

func newAuditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "List codes that match more than one holding of a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := service.NewAuditService(
				repository.NewUserRepository(db),
				repository.NewHoldingRepository(db),
			).RunAudit(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}
