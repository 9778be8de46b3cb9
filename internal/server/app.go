// Package server initializes and runs the Taskboard application server.
// It connects the document store, assembles the services and the GraphQL
// schema, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/taskboard/taskboard/internal/logging"
	"github.com/taskboard/taskboard/internal/server/config"
	"github.com/taskboard/taskboard/internal/server/email"
	"github.com/taskboard/taskboard/internal/server/graphql"
	"github.com/taskboard/taskboard/internal/server/services"
	"github.com/taskboard/taskboard/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  storage.Store
	server *graphql.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	uri, err := c.MongoURI()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewMongoStore(ctx, uri, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	mailer := email.NewSMTPMailer(c.EmailHost, c.EmailPort, c.EmailUsername, c.EmailPassword, c.EmailFrom, logger)

	us := services.NewUserService(store, mailer, c)
	ps := services.NewProjectService(store)
	ts := services.NewTaskService(store)

	schema, err := graphql.NewSchema(store, us, ps, ts)
	if err != nil {
		return nil, fmt.Errorf("schema init error: %w", err)
	}

	srv := graphql.NewServer(c.EndpointAddr, schema, c.SecretKey, logger)

	return &App{config: c, logger: logger, store: store, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(context.Background()); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
