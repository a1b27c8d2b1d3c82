package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventvol/clashwatch/internal/cli"
	"github.com/eventvol/clashwatch/internal/model"
)

func clashesCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "clashes [board]",
		Short: "Show clash tables for a board",
		Long: `Runs the board's clash detection over the current record table and prints
the per-category clash tables. Without an argument the configured boards are
listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClashes(cmd, args, &ff)
		},
	}
	ff.register(cmd)

	return cmd
}

func runClashes(cmd *cobra.Command, args []string, ff *filterFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if len(args) == 0 {
		fmt.Println(cli.TitleStyle.Render("Configured boards"))
		w := newTabWriter()
		fmt.Fprintln(w, cli.HeaderStyle.Render("NAME\tSTRATEGY\tTITLE"))
		for _, b := range a.doc.Boards {
			fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, b.Strategy, b.Title)
		}
		return w.Flush()
	}

	f, err := ff.build()
	if err != nil {
		return err
	}

	board, err := a.doc.Board(args[0])
	if err != nil {
		return err
	}
	detector, err := board.Detector()
	if err != nil {
		return err
	}

	records, err := a.cache.Records(cmd.Context())
	if err != nil {
		return err
	}

	result := detector.Detect(board.Prefilter(records)).Filtered(f)

	fmt.Println(cli.TitleStyle.Render(board.Title))
	if result.Empty() {
		fmt.Println(cli.SuccessStyle.Render("No clashes detected."))
		return nil
	}

	for _, label := range result.Labels {
		rows, _ := result.Table(label)
		if len(rows) == 0 {
			fmt.Printf("%s %s\n\n", cli.BoldStyle.Render(label), cli.SubtleStyle.Render("(none)"))
			continue
		}

		fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("%s (%d rows)", label, len(rows))))
		w := newTabWriter()
		fmt.Fprintln(w, cli.HeaderStyle.Render("GMS ID\tNAME\tCAMPAIGN\tDATE\tSTATUS\tAMOUNT"))
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.GMSID,
				model.DisplayName(r.Name),
				model.Display(r.CampaignID),
				model.DayKey(r.DateOf(result.DateField)),
				model.Display(r.ApprovalStatus),
				r.AmountLabel(),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println()
	}

	fmt.Println(cli.BoldStyle.Render("Summary"))
	w := newTabWriter()
	fmt.Fprintln(w, cli.HeaderStyle.Render("CATEGORY\tCLASHING GROUPS"))
	for _, c := range result.Summary() {
		fmt.Fprintf(w, "%s\t%d\n", c.Label, c.Clashes)
	}
	return w.Flush()
}
