package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventvol/clashwatch/internal/clash"
	"github.com/eventvol/clashwatch/internal/cli"
)

func riskCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "risk <board>",
		Short: "Show per-person risk rollup for a board",
		Long: `Aggregates a board's clash tables per GMS id: the distinct clash categories
each person appears in, highest count first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRisk(cmd, args[0], &ff)
		},
	}
	ff.register(cmd)

	return cmd
}

func runRisk(cmd *cobra.Command, boardName string, ff *filterFlags) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	f, err := ff.build()
	if err != nil {
		return err
	}

	board, err := a.doc.Board(boardName)
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
	entries := clash.AggregateRisk(result)

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Risk rollup: %s", board.Title)))
	if len(entries) == 0 {
		fmt.Println(cli.SuccessStyle.Render("No high-risk GMS IDs found in the selected range."))
		return nil
	}

	w := newTabWriter()
	fmt.Fprintln(w, cli.HeaderStyle.Render("GMS ID\tNAMES\tCATEGORIES\tCOUNT"))
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.GMSID, e.NamesLabel(), e.CategoriesLabel(), e.Count)
	}
	return w.Flush()
}
