package main

import (
	"crypto/rand"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/contexthelpers"
	"github.com/musoad/iron-quest-sub000/internal/errors"
	"github.com/musoad/iron-quest-sub000/internal/i18n"
	"github.com/musoad/iron-quest-sub000/internal/logging"
	"log/slog"
	"net/http"
	"runtime/trace"
	"strings"
	"time"
)

// recordingWriter remembers the status code and the size of the response for the request log.
type recordingWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *recordingWriter) WriteHeader(status int) {
	if rw.status == 0 {
		rw.status = status
	}
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}

func (rw *recordingWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (rw *recordingWriter) statusCode() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}

// cspDirectives allow nothing but same-origin forms and the nonce-tagged inline style and script.
var cspDirectives = []string{ //nolint:gochecknoglobals // constant list.
	"default-src 'none'",
	"script-src 'nonce-%[1]s'",
	"connect-src 'self'",
	"img-src 'self'",
	"style-src 'nonce-%[1]s'",
	"frame-ancestors 'none'",
	"form-action 'self'",
	"font-src 'none'",
	"object-src 'none'",
	"base-uri 'none'",
}

func secureHeaders(next http.Handler) http.Handler {
	policy := strings.Join(cspDirectives, "; ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce := rand.Text()
		h := w.Header()
		h.Set("Content-Security-Policy", fmt.Sprintf(policy, nonce))
		h.Set("Referrer-Policy", "same-origin")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "deny")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		next.ServeHTTP(w, contexthelpers.SetCSPNonce(r, nonce))
	})
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}

// logAndTraceRequest tags the context with a request id, opens a runtime/trace task when tracing is on and logs the
// outcome. Rejected actions log at warn level, server errors at error level.
func (app *application) logAndTraceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := rand.Text()
		ctx := logging.WithAttrs(r.Context(),
			slog.String("trace_id", requestID),
			slog.String("method", r.Method),
			slog.String("uri", r.URL.RequestURI()))
		if trace.IsEnabled() {
			var task *trace.Task
			ctx, task = trace.NewTask(ctx, "HTTP "+r.Method+" "+r.URL.Path)
			trace.Log(ctx, "trace_id", requestID)
			defer task.End()
		}
		r = r.WithContext(ctx)

		start := time.Now()
		app.logger.LogAttrs(ctx, slog.LevelDebug, "received request")
		rw := &recordingWriter{ResponseWriter: w, status: 0, bytes: 0}
		next.ServeHTTP(rw, r)

		status := rw.statusCode()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		app.logger.LogAttrs(ctx, level, "request completed",
			slog.Int("status_code", status),
			slog.Int("bytes", rw.bytes),
			slog.Duration("duration", time.Since(start)))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if excp := recover(); excp != nil {
				app.serverError(w, r, errors.DecoratePanic(excp))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// languageCookie stores the language picked on the dashboard.
const languageCookie = "language"

// commonContext sets the current path and the request language. The language comes from the cookie, then from the
// Accept-Language header and finally from the configured default.
func (app *application) commonContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = contexthelpers.SetCurrentPath(r, r.URL.Path)
		r = contexthelpers.SetLanguage(r, app.requestLanguage(r))
		next.ServeHTTP(w, r)
	})
}

func (app *application) requestLanguage(r *http.Request) i18n.Language {
	if c, err := r.Cookie(languageCookie); err == nil && i18n.IsSupported(i18n.Language(c.Value)) {
		return i18n.Language(c.Value)
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		first, _, _ := strings.Cut(header, ",")
		first, _, _ = strings.Cut(first, ";")
		if lang, ok := i18n.Match(first); ok {
			return lang
		}
	}
	return app.language
}

// crossOriginProtection rejects cross-origin form posts.
func (app *application) crossOriginProtection(next http.Handler) http.Handler {
	protection := http.NewCrossOriginProtection()
	return protection.Handler(next)
}

// timeout times out the request and cancels the context using http.TimeoutHandler. A trace is captured when the
// handler runs into the deadline.
func (app *application) timeout(next http.Handler) http.Handler {
	httpHandlerTimeout := app.requestTimeout * 9 / 10 //nolint:mnd // leave time to write the response.
	handler := http.TimeoutHandler(next, httpHandlerTimeout, "timed out")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		handler.ServeHTTP(w, r)
		if time.Since(start) >= httpHandlerTimeout {
			app.recorder.Capture(r.Context(), "timeout")
		}
	})
}
