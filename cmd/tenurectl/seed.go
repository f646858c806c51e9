package main

import (
	"fmt"
	"io"

	"go-tenure/internal/app"
	"go-tenure/internal/config"
	"go-tenure/internal/record"
	"go-tenure/internal/tenure"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newSeedCmd(cfg *config.Config) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample employee records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			storage, err := app.OpenStorage(ctx, *cfg)
			if err != nil {
				return err
			}
			defer storage.Close(ctx)

			created, err := app.Seed(ctx, record.NewService(storage.Repo), reset, tenure.Today())
			if err != nil {
				return err
			}

			renderRecords(cmd.OutOrStdout(), created)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", true, "delete every stored record before seeding")
	return cmd
}

func renderRecords(w io.Writer, records []record.RecordResponse) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "ID", "Hire date", "Gross salary", "Tenure", "Uplifted salary"})
	for i, r := range records {
		t.AppendRow(table.Row{
			i + 1,
			r.ID,
			r.HireDate,
			fmt.Sprintf("%.2f", r.GrossSalary),
			fmt.Sprintf("%dy %dm %dd", r.Years, r.Months, r.Days),
			fmt.Sprintf("%.2f", r.UpliftedSalary),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(records)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}
