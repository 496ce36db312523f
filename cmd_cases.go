package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Aashish23092/loan-underwriting/config"
	"github.com/Aashish23092/loan-underwriting/service"
	"github.com/Aashish23092/loan-underwriting/store"
	"github.com/spf13/cobra"
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List saved underwriting cases",
	Args:  cobra.NoArgs,
	RunE:  runCases,
}

func runCases(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadConfig()

	st, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	cases, err := service.NewDecisionService(st, nil).ListCases(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tSCORE")
	for _, c := range cases {
		score := "-"
		if s := service.ComputeMasterScore(c.Banking, c.WC, c.Agri); s != nil {
			score = fmt.Sprintf("%.2f", *s)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.CreatedAt.Format("2006-01-02 15:04"), score)
	}
	return w.Flush()
}
