package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eventvol/clashwatch/internal/cli"
	"github.com/eventvol/clashwatch/internal/conflict"
	"github.com/eventvol/clashwatch/internal/model"
)

func conflictsCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Show schedule conflicts per person and registration date",
		Long: `Classifies each person's shifts per registration date: mutually exclusive
shift pairs (HIGH) and duplicate entries of the same shift type (MEDIUM).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConflicts(cmd, name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "only show conflicts for this person")

	return cmd
}

func runConflicts(cmd *cobra.Command, name string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	records, err := a.cache.Records(cmd.Context())
	if err != nil {
		return err
	}

	conflicts := conflict.NewClassifier(a.doc.Conflicts).Detect(records)
	if name != "" {
		kept := conflicts[:0:0]
		for _, c := range conflicts {
			if c.Name == name {
				kept = append(kept, c)
			}
		}
		conflicts = kept
	}

	fmt.Println(cli.TitleStyle.Render("Schedule conflicts"))
	if len(conflicts) == 0 {
		fmt.Println(cli.SuccessStyle.Render("No conflicts detected."))
		return nil
	}

	w := newTabWriter()
	fmt.Fprintln(w, cli.HeaderStyle.Render("SEVERITY\tNAME\tDATE\tTYPE\tDESCRIPTION\tSHIFTS"))
	for _, c := range conflicts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			cli.SeverityStyle(string(c.Severity)).Render(string(c.Severity)),
			model.DisplayName(c.Name),
			model.DayKey(c.Date),
			c.Type,
			c.Description,
			strings.Join(c.Shifts, ", "),
		)
	}
	return w.Flush()
}
