package main

import (
	"context"
	"github.com/musoad/iron-quest-sub000/internal/e2etest"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	defaultRequestTimeout = 2 * time.Second
	readHeaderTimeout     = time.Second
	idleTimeout           = time.Minute
)

// newHTTPServer applies the request timeout to reads, writes and the graceful shutdown.
func (app *application) newHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{ //nolint:exhaustruct // the remaining fields keep their defaults.
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		Handler:           handler,
		IdleTimeout:       idleTimeout,
		ReadTimeout:       app.requestTimeout,
		WriteTimeout:      app.requestTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// configureAndStartServer listens on addr and serves until ctx is done, then drains the open requests.
func (app *application) configureAndStartServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := app.newHTTPServer(handler)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrap(err, "listen", slog.String("addr", addr))
	}

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		app.logger.LogAttrs(ctx, slog.LevelInfo, "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.requestTimeout)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			app.logger.LogAttrs(ctx, slog.LevelError, "error shutting down server",
				errors.SlogError(errors.Wrap(shutdownErr, "shutdown server")))
		}
	}()

	app.logger.LogAttrs(ctx, slog.LevelInfo, "starting server",
		slog.String(e2etest.LogAddrKey, listener.Addr().String()),
		slog.Duration("request_timeout", app.requestTimeout))
	if err = srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	<-drained
	return nil
}
