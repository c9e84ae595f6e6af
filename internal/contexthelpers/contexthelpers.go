// Package contexthelpers carries request scoped values of the web server on the request context.
package contexthelpers

import (
	"context"
	"github.com/musoad/iron-quest-sub000/internal/i18n"
	"net/http"
)

type contextKey int

const (
	currentPathKey contextKey = iota
	cspNonceKey
	languageKey
)

func with(r *http.Request, key contextKey, value any) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, value))
}

func get[T any](ctx context.Context, key contextKey, fallback T) T {
	if v, ok := ctx.Value(key).(T); ok {
		return v
	}
	return fallback
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	return with(r, currentPathKey, currentPath)
}

func CurrentPath(ctx context.Context) string {
	return get(ctx, currentPathKey, "")
}

// SetCSPNonce stores the nonce that inline scripts and styles of the response must carry.
func SetCSPNonce(r *http.Request, cspNonce string) *http.Request {
	return with(r, cspNonceKey, cspNonce)
}

func CSPNonce(ctx context.Context) string {
	return get(ctx, cspNonceKey, "")
}

// SetLanguage stores the language the response is rendered in.
func SetLanguage(r *http.Request, language i18n.Language) *http.Request {
	return with(r, languageKey, language)
}

// Language returns the language picked for the request, or the default language.
func Language(ctx context.Context) i18n.Language {
	return get(ctx, languageKey, i18n.DefaultLanguage)
}
