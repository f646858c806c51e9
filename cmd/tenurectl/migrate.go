package main

import (
	"go-tenure/internal/app"
	"go-tenure/internal/config"
	"go-tenure/internal/shared/migration"

	"github.com/spf13/cobra"
)

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the SQL schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, dialect, err := app.OpenSQLDB(*cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := migration.Up(db, dialect)
			if err != nil {
				return err
			}
			cmd.Printf("applied %d migration(s)\n", n)
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, dialect, err := app.OpenSQLDB(*cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := migration.Down(db, dialect, steps)
			if err != nil {
				return err
			}
			cmd.Printf("rolled back %d migration(s)\n", n)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back, 0 for all")

	cmd.AddCommand(up, down)
	return cmd
}
