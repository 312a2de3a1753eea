package view

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/spark/core/cache"
)

// contentTemplate is the block name a page must define to be wrapped by a layout.
const contentTemplate = "content"

// templateCacheCapacity bounds the compiled-template cache.
const templateCacheCapacity = 256

// HTML renders html/template files from a root directory with optional
// layout wrapping and an opt-in compiled-template cache. Compiled templates
// are safe for concurrent execution; concurrent first renders of the same
// template may compile it twice, last write wins.
type HTML struct {
	root         string
	layout       string
	cacheDefault bool
	funcs        template.FuncMap
	compiled     *cache.LRUCache[string, *template.Template]
}

// HTMLOption configures the HTML renderer during creation.
type HTMLOption func(*HTML)

// WithLayout sets the layout template file, relative to the root.
// Pages rendered with a layout must define the "content" block.
func WithLayout(name string) HTMLOption {
	return func(h *HTML) {
		h.layout = name
	}
}

// WithCacheDefault sets whether compiled templates are cached when a render
// call does not say otherwise. Production apps turn this on.
func WithCacheDefault(enabled bool) HTMLOption {
	return func(h *HTML) {
		h.cacheDefault = enabled
	}
}

// WithFuncs adds functions available to every template.
func WithFuncs(funcs template.FuncMap) HTMLOption {
	return func(h *HTML) {
		h.funcs = funcs
	}
}

// NewHTML creates a renderer over the given template root.
// Panics if the root does not exist; template location is boot configuration.
func NewHTML(root string, opts ...HTMLOption) *HTML {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		panic("view: template root is not a directory: " + root)
	}

	h := &HTML{
		root:     filepath.Clean(root),
		compiled: cache.NewLRUCache[string, *template.Template](templateCacheCapacity),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Render implements Renderer. Template files resolve controller-scoped
// first ("<controller>/<name>.html"), then shared ("<name>.html").
func (h *HTML) Render(ctx context.Context, name, controllerName string, locals map[string]any, opts Options) (string, error) {
	file, err := h.resolve(name, controllerName)
	if err != nil {
		return "", err
	}

	withLayout := h.layout != ""
	if opts.Layout != nil {
		withLayout = withLayout && *opts.Layout
	}
	useCache := h.cacheDefault
	if opts.Cache != nil {
		useCache = *opts.Cache
	}

	tmpl, err := h.compile(file, withLayout, useCache)
	if err != nil {
		return "", err
	}

	entry := filepath.Base(file)
	if withLayout {
		entry = filepath.Base(filepath.Join(h.root, h.layout))
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, entry, locals); err != nil {
		return "", fmt.Errorf("view: execute %s: %w", name, err)
	}
	return b.String(), nil
}

func (h *HTML) resolve(name, controllerName string) (string, error) {
	candidates := make([]string, 0, 2)
	if controllerName != "" {
		candidates = append(candidates, filepath.Join(h.root, controllerName, name+".html"))
	}
	candidates = append(candidates, filepath.Join(h.root, name+".html"))

	for _, file := range candidates {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			return file, nil
		}
	}
	return "", &TemplateNotFoundError{Template: name, Controller: controllerName}
}

func (h *HTML) compile(file string, withLayout, useCache bool) (*template.Template, error) {
	key := fmt.Sprintf("%s|layout=%t", file, withLayout)
	if useCache {
		if tmpl, ok := h.compiled.Get(key); ok {
			return tmpl, nil
		}
	}

	files := []string{file}
	if withLayout {
		files = []string{filepath.Join(h.root, h.layout), file}
	}

	tmpl := template.New(filepath.Base(files[0]))
	if h.funcs != nil {
		tmpl = tmpl.Funcs(h.funcs)
	}
	tmpl, err := tmpl.ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("view: parse %s: %w", file, err)
	}

	if useCache {
		h.compiled.Put(key, tmpl)
	}
	return tmpl, nil
}
