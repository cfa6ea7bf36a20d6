package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	gamedto "wikigo/internal/modules/game/dto"
	lbdto "wikigo/internal/modules/leaderboard/dto"
)

func newDailyCmd(flags *globalFlags) *cobra.Command {
	daily := &cobra.Command{Use: "daily", Short: "Daily challenge commands"}

	var showDate string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the daily challenge and how players did",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			challenge, err := app.LeaderboardCLI.Daily(cmd.Context(), showDate)
			if err != nil {
				return err
			}
			stats, err := app.LeaderboardCLI.DailyStats(cmd.Context(), challenge.Date)
			if err != nil {
				return err
			}
			printDaily(cmd.OutOrStdout(), challenge)
			printDailyStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	show.Flags().StringVar(&showDate, "date", "", "date (YYYY-MM-DD, defaults to today)")
	daily.AddCommand(show)

	var date, start, goal, hint string
	set := &cobra.Command{
		Use:   "set --start <title> --goal <title>",
		Short: "Set the daily challenge for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.LeaderboardCLI.SetDaily(cmd.Context(), lbdto.SetDailyInput{
				Date:  date,
				Start: start,
				Goal:  goal,
				Hint:  hint,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daily challenge for %s: %s → %s\n", out.Date, out.StartTitle, out.GoalTitle)
			return nil
		},
	}
	set.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, defaults to today)")
	set.Flags().StringVar(&start, "start", "", "start article")
	set.Flags().StringVar(&goal, "goal", "", "goal article")
	set.Flags().StringVar(&hint, "hint", "", "optional hint shown to players")
	_ = set.MarkFlagRequired("start")
	_ = set.MarkFlagRequired("goal")
	daily.AddCommand(set)

	daily.AddCommand(&cobra.Command{
		Use:   "yesterday",
		Short: "Show yesterday's challenge with its best solution",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.LeaderboardCLI.Yesterday(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Challenge == nil {
				_, _ = fmt.Fprintln(w, "no challenge was set yesterday")
				return nil
			}
			printDaily(w, *out.Challenge)
			printDailyStats(w, out.Stats)
			if len(out.Challenge.BestSolution) > 0 {
				_, _ = fmt.Fprintf(w, "best path: %s\n", strings.Join(out.Challenge.BestSolution, " → "))
			}
			if len(out.Top) > 0 {
				_, _ = fmt.Fprintln(w)
				printEntries(w, out.Top)
			}
			return nil
		},
	})
	return daily
}

func newLeaderboardCmd(flags *globalFlags) *cobra.Command {
	var date string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the ranked completions for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			entries, err := app.LeaderboardCLI.Leaderboard(cmd.Context(), date, limit, offset)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no completions yet")
				return nil
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().IntVar(&limit, "limit", 10, "number of entries")
	cmd.Flags().IntVar(&offset, "offset", 0, "entries to skip")
	return cmd
}

func newRankCmd(flags *globalFlags) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Show a player's position on a day's leaderboard",
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
			out, err := app.LeaderboardCLI.Rank(cmd.Context(), user, date)
			if err != nil {
				return err
			}
			if out.Rank == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s has no completion on %s\n", out.Username, out.Date)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is %s on %s\n", out.Username, humanize.Ordinal(*out.Rank), out.Date)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [username]",
		Short: "Show streak, completions and today's rank",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			user := optionalArg(args)
			if user == "" {
				if user, err = username(app, flags); err != nil {
					return err
				}
			}
			out, err := app.LeaderboardCLI.Stats(cmd.Context(), user)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, color.New(color.Bold).Sprint(out.Username))
			_, _ = fmt.Fprintf(w, "streak:       %s\n", pluralDays(out.Streak))
			_, _ = fmt.Fprintf(w, "completions:  %s\n", humanize.Comma(int64(out.TotalCompletions)))
			if out.GlobalRank != nil {
				_, _ = fmt.Fprintf(w, "today:        %s\n", humanize.Ordinal(*out.GlobalRank))
			} else {
				_, _ = fmt.Fprintln(w, "today:        not played")
			}
			return nil
		},
	}
}

func newChallengeCmd(flags *globalFlags) *cobra.Command {
	challenge := &cobra.Command{Use: "challenge", Short: "Inspect challenge links"}

	challenge.AddCommand(&cobra.Command{
		Use:   "decode <link>",
		Short: "Decode a challenge link or its payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, ok := app.GameCLI.DecodeChallenge(args[0])
			if !ok {
				return fmt.Errorf("not a valid challenge link")
			}
			printChallenge(cmd.OutOrStdout(), out)
			return nil
		},
	})

	var score int
	compare := &cobra.Command{
		Use:   "compare <link> --score <n>",
		Short: "Compare a score against a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if score < 0 {
				return fmt.Errorf("score must not be negative")
			}
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, ok := app.GameCLI.CompareChallenge(score, args[0])
			if !ok {
				return fmt.Errorf("not a valid challenge link")
			}
			printChallenge(cmd.OutOrStdout(), out.Challenger)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "your score %s: %s\n", humanize.Comma(int64(out.Score)), outcomeColor(out.Outcome))
			return nil
		},
	}
	compare.Flags().IntVar(&score, "score", 0, "your final score")
	_ = compare.MarkFlagRequired("score")
	challenge.AddCommand(compare)
	return challenge
}

func newRunsCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List won games from the local journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			runs, err := app.GameCLI.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}
			printRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs")
	return cmd
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}

func printDaily(w io.Writer, d lbdto.DailyOutput) {
	_, _ = fmt.Fprintf(w, "%s  %s → %s\n", color.New(color.Bold).Sprint(d.Date), d.StartTitle, d.GoalTitle)
	if d.Hint != "" {
		_, _ = fmt.Fprintf(w, "hint: %s\n", d.Hint)
	}
}

func printDailyStats(w io.Writer, s lbdto.DailyStatsOutput) {
	if s.CompletionCount == 0 {
		_, _ = fmt.Fprintln(w, "no completions yet")
		return
	}
	_, _ = fmt.Fprintf(w, "%s completions, avg %.1f moves, avg %s, avg score %s\n",
		humanize.Comma(int64(s.CompletionCount)),
		s.AverageMoves,
		(time.Duration(s.AverageTimeMs) * time.Millisecond).Round(time.Second),
		humanize.Comma(int64(s.AverageScore)),
	)
	if s.Best != nil {
		_, _ = fmt.Fprintf(w, "best: %s with %s\n", s.Best.Username, humanize.Comma(int64(s.Best.Score)))
	}
}

func printEntries(w io.Writer, entries []lbdto.EntryOutput) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tPLAYER\tSCORE\tMOVES\tTIME")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			e.Position, e.Username, humanize.Comma(int64(e.Score)), e.Moves,
			(time.Duration(e.TimeMs) * time.Millisecond).Round(100*time.Millisecond))
	}
	_ = tw.Flush()
}

func printChallenge(w io.Writer, c gamedto.ChallengeOutput) {
	_, _ = fmt.Fprintf(w, "%s went %s → %s in %d moves, %ds, score %s\n",
		c.Username, c.Start, c.End, c.Moves, c.Time, humanize.Comma(int64(c.Score)))
}

func printRuns(w io.Writer, runs []gamedto.RunOutput) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "WHEN\tMODE\tROUTE\tMOVES\tSCORE\tSUBMISSION")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s → %s\t%d\t%s\t%s\n",
			humanize.Time(r.WonAt), r.Mode, r.Start, r.Goal, r.Moves, humanize.Comma(int64(r.Score)), r.Submission)
	}
	_ = tw.Flush()
}

func outcomeColor(outcome string) string {
	switch outcome {
	case "won":
		return color.GreenString("you win")
	case "lost":
		return color.RedString("you lose")
	default:
		return color.YellowString("tie")
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
