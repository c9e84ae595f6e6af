package main

import (
	"bytes"
	"context"
	"fmt"
	"github.com/musoad/iron-quest-sub000/internal/contexthelpers"
	"github.com/musoad/iron-quest-sub000/internal/i18n"
	"github.com/musoad/iron-quest-sub000/internal/markdown"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"
)

type BaseTemplateData struct {
	Language    i18n.Language
	Languages   []i18n.Language
	CurrentPath string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		Language:    contexthelpers.Language(r.Context()),
		Languages:   i18n.SupportedLanguages(),
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
	}
}

type errorTemplateData struct {
	BaseTemplateData
	Status  int
	Message string
}

func newErrorTemplateData(r *http.Request, status int, message string) errorTemplateData {
	return errorTemplateData{BaseTemplateData: newBaseTemplateData(r), Status: status, Message: message}
}

// formatFloat formats a float to remove trailing zeros and unnecessary precision.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// stars renders a star rating out of three.
func stars(n int) string {
	const maxStars = 3
	out := make([]rune, 0, maxStars)
	for i := range maxStars {
		if i < n {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}

// placeholderFuncs let the templates parse before a request binds the real implementations.
func placeholderFuncs() template.FuncMap {
	unbound := func() string { panic("template function used without a request") }
	return template.FuncMap{
		"nonce": func() template.HTMLAttr { return template.HTMLAttr(unbound()) }, //nolint:gosec // never returns.
		"t":     func(string) string { return unbound() },
		"label": func(string, any) string { return unbound() },
		"md":    func(string) template.HTML { return template.HTML(unbound()) }, //nolint:gosec // never returns.
	}
}

func requestFuncs(ctx context.Context) template.FuncMap {
	nonce := template.HTMLAttr(`nonce="` + contexthelpers.CSPNonce(ctx) + `"`) //nolint:gosec // generated server side.
	lang := contexthelpers.Language(ctx)
	return template.FuncMap{
		"nonce": func() template.HTMLAttr { return nonce },
		"t":     func(key string) string { return i18n.Translate(lang, key) },
		"label": func(namespace string, id any) string { return i18n.Label(lang, namespace, fmt.Sprint(id)) },
		"md":    func(key string) template.HTML { return markdown.Inline(i18n.Translate(lang, key)) },
	}
}

// templateCache maps a directory under templates/pages to its parsed page. Every page defines a template named
// "page" that base.gohtml renders.
type templateCache map[string]*template.Template

func newTemplateCache(fsys fs.FS) (templateCache, error) {
	dirs, err := fs.ReadDir(fsys, "pages")
	if err != nil {
		return nil, fmt.Errorf("read pages: %w", err)
	}
	cache := make(templateCache, len(dirs))
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		name := dir.Name()
		t, err := template.New(name).
			Funcs(template.FuncMap{
				"formatFloat": formatFloat,
				"formatDate":  formatDate,
				"sub":         func(a, b int) int { return a - b },
				"stars":       stars,
			}).
			Funcs(placeholderFuncs()).
			ParseFS(fsys, "base.gohtml", "pages/"+name+"/*.gohtml")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		cache[name] = t
	}
	return cache, nil
}

func (app *application) renderToBuf(ctx context.Context, pageName string, data any) (*bytes.Buffer, error) {
	page, ok := app.pages[pageName]
	if !ok {
		return nil, fmt.Errorf("page %s does not exist", pageName)
	}
	t, err := page.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone page %s: %w", pageName, err)
	}
	buf := new(bytes.Buffer)
	if err = t.Funcs(requestFuncs(ctx)).ExecuteTemplate(buf, "base", data); err != nil {
		return nil, fmt.Errorf("execute page %s: %w", pageName, err)
	}
	return buf, nil
}

// render writes the page to w. A failure to render the error page itself falls back to plain text.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, pageName string, data any) {
	buf, err := app.renderToBuf(r.Context(), pageName, data)
	if err != nil {
		if pageName == "error" {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
