package main

import (
	"github.com/spf13/cobra"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api/request"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/service"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/validation"
)

func newUserCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var name, watchlist string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user with a primary watchlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateUserRequest{Name: name, WatchlistName: watchlist}
			if err := validation.ValidateCreateUser(req); err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer db.Close()

			user, err := service.NewUserService(repository.NewUserRepository(db)).
				CreateUser(cmd.Context(), req.Name, req.WatchlistName)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
	create.Flags().StringVar(&name, "name", "", "user name")
	create.Flags().StringVar(&watchlist, "watchlist", "", "primary watchlist name")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(create)
	return cmd
}
