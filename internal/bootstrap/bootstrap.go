package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"github.com/jackc/pgx/v5/pgxpool"

	gameinadapter "wikigo/internal/modules/game/adapter/in"
	gameoutadapter "wikigo/internal/modules/game/adapter/out"
	gamedto "wikigo/internal/modules/game/dto"
	gameservice "wikigo/internal/modules/game/service"
	gameusecase "wikigo/internal/modules/game/usecase"
	leaderboardinadapter "wikigo/internal/modules/leaderboard/adapter/in"
	leaderboardoutadapter "wikigo/internal/modules/leaderboard/adapter/out"
	leaderboardout "wikigo/internal/modules/leaderboard/port/out"
	leaderboardservice "wikigo/internal/modules/leaderboard/service"
	leaderboardusecase "wikigo/internal/modules/leaderboard/usecase"
	practiceinadapter "wikigo/internal/modules/practice/adapter/in"
	practiceoutadapter "wikigo/internal/modules/practice/adapter/out"
	practiceout "wikigo/internal/modules/practice/port/out"
	practiceservice "wikigo/internal/modules/practice/service"
	practiceusecase "wikigo/internal/modules/practice/usecase"
	wikiinadapter "wikigo/internal/modules/wiki/adapter/in"
	wikioutadapter "wikigo/internal/modules/wiki/adapter/out"
	wikiservice "wikigo/internal/modules/wiki/service"
	wikiusecase "wikigo/internal/modules/wiki/usecase"
	"wikigo/internal/platform/clock"
	"wikigo/internal/platform/config"
	"wikigo/internal/platform/id"
	"wikigo/internal/platform/logging"
	"wikigo/internal/platform/pgdb"
	"wikigo/internal/platform/prefs"
	"wikigo/internal/platform/sqlitedb"
	uiapp "wikigo/internal/ui/app"
)

type Options struct {
	Config  config.LoadOptions
	Verbose bool
	// Interactive sends logs to the configured log file so the alt-screen
	// stays clean.
	Interactive bool
}

type App struct {
	Config config.Config
	Logger hclog.Logger
	Prefs  prefs.Store

	WikiCLI         wikiinadapter.CLIHandler
	GameCLI         gameinadapter.CLIHandler
	GameTUI         gameinadapter.TUIHandler
	LeaderboardCLI  leaderboardinadapter.CLIHandler
	LeaderboardHTTP leaderboardinadapter.HTTPHandler
	PracticeCLI     practiceinadapter.CLIHandler

	closers []io.Closer
}

type stores struct {
	completions leaderboardout.CompletionStore
	dailies     leaderboardout.DailyChallengeStore
	practice    practiceout.PracticeStore
}

func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}
	logOpts := logging.Options{Verbose: opts.Verbose}
	if opts.Interactive {
		logOpts.File = cfg.LogFile
	}
	log, logCloser, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: log, closers: []io.Closer{logCloser}}

	clk := clock.SystemClock{}
	ids := id.UUID{}

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("open local database: %w", err)
	}
	app.closers = append(app.closers, db)

	summaryCache, err := wikioutadapter.NewSQLiteSummaryCache(db)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new summary cache: %w", err)
	}
	wikiSvc := wikiservice.NewWikiService(
		clk,
		wikioutadapter.NewMediaWikiClient(wikioutadapter.MediaWikiOptions{
			APIURL:    cfg.WikiAPIURL,
			RESTURL:   cfg.WikiRESTURL,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.HTTPTimeout,
		}),
		wikioutadapter.NewHTMLLinkExtractor(),
		summaryCache,
		wikioutadapter.NewBrowserLauncher(),
		wikiservice.Options{SummaryTTL: cfg.SummaryTTL, PageBaseURL: cfg.WikiPageURL, Logger: log},
	)
	wikiUC := wikiusecase.NewInteractor(wikiSvc)

	st, err := app.openStores(ctx, db)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	leaderboardUC := leaderboardusecase.NewInteractor(
		leaderboardservice.NewLeaderboardService(clk, st.completions, st.dailies, log),
		wikiUC,
	)
	practiceUC := practiceusecase.NewInteractor(
		practiceservice.NewPracticeService(clk, ids, st.practice, practiceoutadapter.NewYAMLSeedSource(), log),
		wikiUC,
	)

	app.Prefs = prefs.NewFileStore(cfg.PreferencesPath())
	gameUC := gameusecase.NewInteractor(
		gameservice.NewGameService(clk, ids, gameoutadapter.NewMarkdownJournal(cfg.JournalDir()), log),
		gameusecase.Deps{
			Wiki:         wikiUC,
			Leaderboard:  leaderboardUC,
			Practice:     practiceUC,
			Preferences:  app.Prefs,
			ShareBaseURL: cfg.ShareBaseURL,
			Logger:       log,
		},
	)

	app.WikiCLI = wikiinadapter.NewCLIHandler(wikiUC)
	app.GameCLI = gameinadapter.NewCLIHandler(gameUC)
	app.GameTUI = gameinadapter.NewTUIHandler(gameUC)
	app.LeaderboardCLI = leaderboardinadapter.NewCLIHandler(leaderboardUC)
	app.LeaderboardHTTP = leaderboardinadapter.NewHTTPHandler(leaderboardUC, gameUC, log)
	app.PracticeCLI = practiceinadapter.NewCLIHandler(practiceUC)
	return app, nil
}

// openStores picks the hosted PostgreSQL backend when a DSN is configured
// and the local SQLite file otherwise. The summary cache always stays local.
func (a *App) openStores(ctx context.Context, db *sql.DB) (stores, error) {
	if a.Config.UsePostgres() {
		pool, err := pgdb.Connect(ctx, a.Config.PostgresDSN)
		if err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, poolCloser{pool})
		a.Logger.Info("using hosted leaderboard database")
		return postgresStores(ctx, pool)
	}
	var (
		st  stores
		err error
	)
	if st.completions, err = leaderboardoutadapter.NewSQLiteCompletionStore(db); err != nil {
		return stores{}, fmt.Errorf("new completion store: %w", err)
	}
	if st.dailies, err = leaderboardoutadapter.NewSQLiteDailyStore(db); err != nil {
		return stores{}, fmt.Errorf("new daily store: %w", err)
	}
	if st.practice, err = practiceoutadapter.NewSQLitePracticeStore(db); err != nil {
		return stores{}, fmt.Errorf("new practice store: %w", err)
	}
	return st, nil
}

func postgresStores(ctx context.Context, pool *pgxpool.Pool) (stores, error) {
	var (
		st  stores
		err error
	)
	if st.completions, err = leaderboardoutadapter.NewPostgresCompletionStore(ctx, pool); err != nil {
		return stores{}, fmt.Errorf("new completion store: %w", err)
	}
	if st.dailies, err = leaderboardoutadapter.NewPostgresDailyStore(ctx, pool); err != nil {
		return stores{}, fmt.Errorf("new daily store: %w", err)
	}
	if st.practice, err = practiceoutadapter.NewPostgresPracticeStore(ctx, pool); err != nil {
		return stores{}, fmt.Errorf("new practice store: %w", err)
	}
	return st, nil
}

type poolCloser struct {
	pool *pgxpool.Pool
}

func (p poolCloser) Close() error {
	p.pool.Close()
	return nil
}

// Close releases databases and the log file in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App, start *gamedto.StartInput) error {
	model := uiapp.NewModel(uiapp.Deps{
		Game:        app.GameTUI,
		Wiki:        app.WikiCLI,
		Leaderboard: app.LeaderboardCLI,
		Practice:    app.PracticeCLI,
		Prefs:       app.Prefs,
		Start:       start,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Serve runs the leaderboard HTTP API until ctx is cancelled.
func Serve(ctx context.Context, app *App, addr string) error {
	if addr == "" {
		addr = app.Config.ListenAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.LeaderboardHTTP.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("http api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
