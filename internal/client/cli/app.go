package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/internova/internova/internal/client/config"
	"github.com/internova/internova/internal/client/kvstore"
	"github.com/internova/internova/internal/client/remote"
	"github.com/internova/internova/internal/client/store"
	"github.com/internova/internova/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App is the interactive Internova CLI. It owns the data-access layer and
// the backend client and tracks connectivity mode for the prompt.
type App struct {
	config *config.Config
	store  *store.Store
	remote remote.Client
	db     *sql.DB
	Mode   Mode
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	kv, db, err := kvstore.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := remote.NewHTTPClient(c.ServerEndpointAddr)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	st := store.New(kv, apiClient, logger, store.WithCacheTTL(c.CacheTTL))

	return &App{
		config: c,
		store:  st,
		remote: apiClient,
		db:     db,
		Mode:   ModeOffline,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.remote.Close()
		_ = a.db.Close()
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.store.CurrentUser()
	return ok
}

// StartOnlineStatusWatcher probes backend reachability on the given interval
// and flips the connectivity mode accordingly. It blocks until ctx is
// cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.remote.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
