package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wikigo/internal/bootstrap"
	gamedto "wikigo/internal/modules/game/dto"
	"wikigo/internal/platform/config"
	"wikigo/internal/platform/prefs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	dataDir    string
	verbose    bool
	user       string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "wikigo",
		Short:         "Race through Wikipedia from one article to another",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory for the database, journal and preferences")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&flags.user, "user", "", "player name (defaults to the saved preference)")

	root.AddCommand(newPlayCmd(flags))
	root.AddCommand(newDailyCmd(flags))
	root.AddCommand(newLeaderboardCmd(flags))
	root.AddCommand(newRankCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newChallengeCmd(flags))
	root.AddCommand(newRunsCmd(flags))
	root.AddCommand(newPracticeCmd(flags))
	root.AddCommand(newSummaryCmd(flags))
	root.AddCommand(newExistsCmd(flags))
	root.AddCommand(newLinksCmd(flags))
	root.AddCommand(newOpenCmd(flags))
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newServeCmd(flags))
	return root
}

func loadApp(ctx context.Context, flags *globalFlags, interactive bool) (*bootstrap.App, error) {
	return bootstrap.New(ctx, bootstrap.Options{
		Config:      config.LoadOptions{ConfigPath: flags.configPath, DataDir: flags.dataDir},
		Verbose:     flags.verbose,
		Interactive: interactive,
	})
}

// username resolves the --user flag, then the saved preference.
func username(app *bootstrap.App, flags *globalFlags) (string, error) {
	if name := strings.TrimSpace(flags.user); name != "" {
		return name, nil
	}
	p, err := app.Prefs.Load()
	if err != nil {
		return "", err
	}
	if p.Username == "" {
		return "", errors.New("no player name: pass --user or run `wikigo config set-user <name>`")
	}
	return p.Username, nil
}

func newPlayCmd(flags *globalFlags) *cobra.Command {
	var daily, random bool
	var zen, challenge, start, goal, date, category string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the game in the terminal UI",
		Long: "Open the game in the terminal UI. Without flags the setup screen is shown;\n" +
			"the flags start a session straight away.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := playInput(daily, random, zen, challenge, start, goal, date, category)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd.Context(), flags, true)
			if err != nil {
				return err
			}
			defer app.Close()
			if flags.user != "" {
				if err := saveUser(app.Prefs, flags.user); err != nil {
					return err
				}
			}
			return bootstrap.RunTUI(app, input)
		},
	}
	cmd.Flags().BoolVar(&daily, "daily", false, "play the daily challenge")
	cmd.Flags().StringVar(&date, "date", "", "daily challenge date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().BoolVar(&random, "random", false, "play a random pair")
	cmd.Flags().StringVar(&category, "category", "", "draw random articles from this category")
	cmd.Flags().StringVar(&zen, "zen", "", "play a practice game by id")
	cmd.Flags().StringVar(&challenge, "challenge", "", "accept a challenge link")
	cmd.Flags().StringVar(&start, "start", "", "start article for a custom game")
	cmd.Flags().StringVar(&goal, "goal", "", "goal article for a custom game")
	cmd.MarkFlagsMutuallyExclusive("daily", "random", "zen", "challenge")
	return cmd
}

func playInput(daily, random bool, zen, challenge, start, goal, date, category string) (*gamedto.StartInput, error) {
	switch {
	case daily:
		return &gamedto.StartInput{Mode: "daily", Date: date}, nil
	case zen != "":
		return &gamedto.StartInput{Mode: "zen", PracticeGameID: zen}, nil
	case challenge != "":
		return &gamedto.StartInput{Mode: "challenge", Challenge: challenge}, nil
	case random || start != "" || goal != "" || category != "":
		return &gamedto.StartInput{Mode: "random", Start: start, Goal: goal, Category: category}, nil
	case date != "":
		return nil, errors.New("--date only applies to --daily")
	}
	return nil, nil
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Show configuration and edit preferences"}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			p, err := app.Prefs.Load()
			if err != nil {
				return err
			}
			c := app.Config
			out := cmd.OutOrStdout()
			storage := "sqlite " + c.DBPath
			if c.UsePostgres() {
				storage = "postgres"
			}
			_, _ = fmt.Fprintf(out, "data dir:     %s\n", c.DataDir)
			_, _ = fmt.Fprintf(out, "storage:      %s\n", storage)
			_, _ = fmt.Fprintf(out, "wiki api:     %s\n", c.WikiAPIURL)
			_, _ = fmt.Fprintf(out, "wiki rest:    %s\n", c.WikiRESTURL)
			_, _ = fmt.Fprintf(out, "summary ttl:  %s\n", c.SummaryTTL)
			_, _ = fmt.Fprintf(out, "share base:   %s\n", c.ShareBaseURL)
			_, _ = fmt.Fprintf(out, "listen:       %s\n", c.ListenAddr)
			_, _ = fmt.Fprintf(out, "journal:      %s\n", c.JournalDir())
			_, _ = fmt.Fprintf(out, "player:       %s\n", p.DisplayName())
			_, _ = fmt.Fprintf(out, "theme:        %s\n", p.Theme)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set-theme <light|dark|classic>",
		Short: "Choose the terminal UI theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := prefs.ParseTheme(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			p, err := app.Prefs.Load()
			if err != nil {
				return err
			}
			p.Theme = name
			if err := app.Prefs.Save(p); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", name)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set-user <name>",
		Short: "Set the name used for leaderboard submissions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			name := strings.Join(args, " ")
			if err := saveUser(app.Prefs, name); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "playing as %s\n", name)
			return nil
		},
	})
	return cfgCmd
}

func saveUser(store prefs.Store, name string) error {
	p, err := store.Load()
	if err != nil {
		return err
	}
	p.Username = strings.TrimSpace(name)
	return store.Save(p)
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the leaderboard HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, flags, false)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.Serve(ctx, app, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to listen_addr)")
	return cmd
}
