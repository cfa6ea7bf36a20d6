package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPracticeCmd(flags *globalFlags) *cobra.Command {
	practice := &cobra.Command{Use: "practice", Short: "Zen practice games"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List practice games with your status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			user, err := username(app, flags)
			if err != nil {
				return err
			}
			games, err := app.PracticeCLI.List(cmd.Context(), user, limit)
			if err != nil {
				return err
			}
			if len(games) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no practice games; seed some with `wikigo practice seed <file>`")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tROUTE\tSTATUS\tADDED")
			for _, g := range games {
				_, _ = fmt.Fprintf(tw, "%s\t%s → %s\t%s\t%s\n", g.ID, g.StartTitle, g.GoalTitle, statusColor(g.Status), humanize.Time(g.CreatedAt))
			}
			return tw.Flush()
		},
	}
	list.Flags().IntVar(&limit, "limit", 50, "number of games")
	practice.AddCommand(list)

	practice.AddCommand(&cobra.Command{
		Use:   "seed <file>",
		Short: "Load practice games from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			n, err := app.PracticeCLI.Seed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %s games\n", humanize.Comma(int64(n)))
			return nil
		},
	})

	var id string
	var solution []string
	add := &cobra.Command{
		Use:   "add <start> <goal>",
		Short: "Add a practice game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			g, err := app.PracticeCLI.Add(cmd.Context(), id, args[0], args[1], solution)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s: %s → %s\n", g.ID, g.StartTitle, g.GoalTitle)
			return nil
		},
	}
	add.Flags().StringVar(&id, "id", "", "game id (generated when empty)")
	add.Flags().StringSliceVar(&solution, "solution", nil, "known solution path, start to goal")
	practice.AddCommand(add)

	practice.AddCommand(&cobra.Command{
		Use:   "solution <id>",
		Short: "Reveal a practice game's solution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			user, err := username(app, flags)
			if err != nil {
				return err
			}
			g, err := app.PracticeCLI.Solution(cmd.Context(), user, args[0])
			if err != nil {
				return err
			}
			if len(g.Solution) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s has no recorded solution\n", g.ID)
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(g.Solution, " → "))
			return nil
		},
	})
	return practice
}

func statusColor(status string) string {
	switch status {
	case "completed":
		return color.GreenString(status)
	case "solution_viewed":
		return color.YellowString(status)
	default:
		return status
	}
}
