package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventvol/clashwatch/internal/clash"
	"github.com/eventvol/clashwatch/internal/cli"
	"github.com/eventvol/clashwatch/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print dashboard report tables",
	}

	cmd.AddCommand(reportTrendCmd())
	cmd.AddCommand(reportTallyCmd())
	cmd.AddCommand(reportManpowerCmd())
	cmd.AddCommand(reportRejectedCmd())

	return cmd
}

func reportTrendCmd() *cobra.Command {
	var (
		ff       filterFlags
		interval string
	)

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Disbursement amount trend over completed payouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, f, err := reportSetup(cmd, &ff)
			if err != nil {
				return err
			}
			defer a.close()

			records, err := a.cache.Records(cmd.Context())
			if err != nil {
				return err
			}

			iv := report.ParseInterval(interval)
			points := report.Trend(records, f, iv)

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Disbursement trend (%s)", iv)))
			w := newTabWriter()
			fmt.Fprintln(w, cli.HeaderStyle.Render("BUCKET\tAMOUNT"))
			var total float64
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%.2f\n", p.Bucket, p.Amount)
				total += p.Amount
			}
			fmt.Fprintf(w, "%s\t%.2f\n", cli.BoldStyle.Render("TOTAL"), total)
			return w.Flush()
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&interval, "interval", "day", "bucket interval (day, week, month)")

	return cmd
}

func reportTallyCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Unique accounts per payout date and role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, f, err := reportSetup(cmd, &ff)
			if err != nil {
				return err
			}
			defer a.close()

			records, err := a.cache.Records(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("Account tally"))
			w := newTabWriter()
			fmt.Fprintln(w, cli.HeaderStyle.Render("PAYOUT DATE\tROLE\tUNIQUE ACCOUNTS"))
			for _, t := range report.AccountTally(records, f) {
				fmt.Fprintf(w, "%s\t%s\t%d\n", t.Date, t.Role, t.Accounts)
			}
			return w.Flush()
		},
	}
	ff.register(cmd)

	return cmd
}

func reportManpowerCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "manpower",
		Short: "Distinct headcount per role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, f, err := reportSetup(cmd, &ff)
			if err != nil {
				return err
			}
			defer a.close()

			records, err := a.cache.Records(cmd.Context())
			if err != nil {
				return err
			}

			counts, total := report.ManpowerByRole(records, f)

			fmt.Println(cli.TitleStyle.Render("Manpower by role"))
			w := newTabWriter()
			fmt.Fprintln(w, cli.HeaderStyle.Render("ROLE\tUNIQUE ACCOUNTS"))
			for _, c := range counts {
				fmt.Fprintf(w, "%s\t%d\n", c.Role, c.Accounts)
			}
			fmt.Fprintf(w, "%s\t%d\n", cli.BoldStyle.Render("TOTAL UNIQUE PEOPLE"), total)
			return w.Flush()
		},
	}
	ff.register(cmd)

	return cmd
}

func reportRejectedCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "rejected",
		Short: "Approval outcomes per role, campaign, and status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, f, err := reportSetup(cmd, &ff)
			if err != nil {
				return err
			}
			defer a.close()

			records, err := a.cache.Records(cmd.Context())
			if err != nil {
				return err
			}

			rows, totals := report.RejectionSummary(records, f)

			fmt.Println(cli.TitleStyle.Render("Rejection summary"))
			w := newTabWriter()
			fmt.Fprintln(w, cli.HeaderStyle.Render("ROLE\tCAMPAIGN\tSTATUS\tCOUNT"))
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.Role, r.Campaign, r.Status, r.Count)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%s %d approved, %d rejected, %d total\n",
				cli.BoldStyle.Render("Totals:"), totals.Approved, totals.Rejected, totals.Total)
			return nil
		},
	}
	ff.register(cmd)

	return cmd
}

func reportSetup(cmd *cobra.Command, ff *filterFlags) (*app, clash.Filter, error) {
	f, err := ff.build()
	if err != nil {
		return nil, f, err
	}
	a, err := newApp(cmd)
	if err != nil {
		return nil, f, err
	}
	return a, f, nil
}
