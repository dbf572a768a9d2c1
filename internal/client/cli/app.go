package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/miy4x/shigezane-admin/internal/client/client"
	"github.com/miy4x/shigezane-admin/internal/client/config"
	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/query"
	"github.com/miy4x/shigezane-admin/internal/client/services"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
	"github.com/miy4x/shigezane-admin/internal/logging"
)

const janitorInterval = time.Minute

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	cache     *query.Cache
	uploader  services.Uploader
	auth      services.AuthService
	registry  *services.Registry
	dashboard services.DashboardService
	exporter  services.ExportService
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	state := services.NewSessionState()
	transport := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout,
		client.WithTokenSource(state),
		client.WithLogger(logger),
	)
	api := client.NewAPI(transport)

	cache := query.New(query.Options{
		StaleTime:  c.StaleTime,
		GCTime:     c.GCTime,
		RetryDelay: c.RetryDelay,
		MaxEntries: query.DefaultMaxEntries,
	}, logger)

	a := &App{
		config: c,
		logger: logger,
		db:     db,
		cache:  cache,
		auth:   services.NewAuthService(api, db, state, logger),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	a.uploader = upload.NewPipeline(api, api,
		upload.WithLogger(logger),
		upload.WithConcurrency(c.UploadConcurrency),
		upload.WithStateFunc(a.progress()),
	)
	a.registry = services.NewRegistry(api, cache, a.uploader, logger)
	a.dashboard = services.NewDashboardService(a.registry)
	a.exporter = services.NewExportService(a.registry, logger)
	return a, nil
}

// Run restores a saved session, then serves the prompt until the user
// leaves or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if s, err := a.auth.Restore(ctx); err == nil {
		toastSuccess(a.out, fmt.Sprintf("%s としてログイン中", s.User.Name))
	} else if !errors.Is(err, services.ErrNotLoggedIn) {
		toastError(a.out, err)
	}

	janitorCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.cache.StartJanitor(janitorCtx, janitorInterval)

	a.Root(ctx)
	cancel()
	a.cache.Wait()
}

func (a *App) isLoggedIn() bool {
	_, err := a.auth.Current()
	return err == nil
}

func (a *App) status() string {
	s, err := a.auth.Current()
	if err != nil {
		return "未ログイン"
	}
	return s.User.Email
}

// Root runs the REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	runREPL(ctx, a, a.status, a.reader)
}

var progressText = map[upload.State]string{
	upload.Compressing:         "圧縮中",
	upload.AcquiringCredential: "認証情報を取得中",
	upload.Uploading:           "アップロード中",
	upload.Done:                "完了",
	upload.Failed:              "失敗",
}

// progress reports upload transitions. Gallery uploads report from
// several goroutines.
func (a *App) progress() upload.StateFunc {
	var mu sync.Mutex
	return func(f models.ImageField, s upload.State) {
		text, ok := progressText[s]
		if !ok {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(a.out, gray(fmt.Sprintf("  %s: %s", imageLabel(f), text)))
	}
}
