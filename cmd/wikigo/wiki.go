package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSummaryCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <title>",
		Short: "Print an article summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			s, err := app.WikiCLI.Summary(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if s == nil {
				_, _ = fmt.Fprintln(w, "no summary available")
				return nil
			}
			_, _ = fmt.Fprintln(w, color.New(color.Bold).Sprint(s.Title))
			if s.Description != "" {
				_, _ = fmt.Fprintln(w, color.New(color.Faint).Sprint(s.Description))
			}
			_, _ = fmt.Fprintf(w, "\n%s\n\n%s\n", s.Extract, s.PageURL)
			return nil
		},
	}
}

func newExistsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <title>",
		Short: "Check that a title is a playable article",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.WikiCLI.Exists(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !out.Exists {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.RedString("no:"), out.Reason)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("yes:"), out.CanonicalTitle)
			return nil
		},
	}
}

func newLinksCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "links <title>",
		Short: "List the playable links on an article",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			title, links, err := app.WikiCLI.Links(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s: %s links\n", color.New(color.Bold).Sprint(title), humanize.Comma(int64(len(links))))
			if limit > 0 && len(links) > limit {
				links = links[:limit]
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			for i, link := range links {
				_, _ = fmt.Fprintf(tw, "%d\t%s\n", i+1, link)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many links (0 for all)")
	return cmd
}

func newOpenCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <title>",
		Short: "Open an article in the default browser",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			url, err := app.WikiCLI.Open(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "opened %s\n", url)
			return nil
		},
	}
}
