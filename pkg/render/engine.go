package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS returns the bundled templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

var filtersOnce sync.Once

// engine wraps a pongo2 template set with a parsed-template cache.
type engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func newEngine(files fs.FS) (*engine, error) {
	if files == nil {
		return nil, errors.New("render: templates fs is nil")
	}
	filtersOnce.Do(registerFilters)
	return &engine{
		set:       pongo2.NewSet("intake", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

func (e *engine) execute(name string, data pongo2.Context) ([]byte, error) {
	tmpl, err := e.template(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("render: execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (e *engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}

func registerFilters() {
	if !pongo2.FilterExists("progressbar") {
		_ = pongo2.RegisterFilter("progressbar", filterProgressBar)
	}
	if !pongo2.FilterExists("indent") {
		_ = pongo2.RegisterFilter("indent", filterIndent)
	}
}

// filterProgressBar renders {{ percent|progressbar:width }}.
func filterProgressBar(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	width := defaultBarWidth
	if param != nil && param.IsInteger() && param.Integer() > 0 {
		width = param.Integer()
	}
	return pongo2.AsValue(ProgressBar(in.Integer(), width)), nil
}

// filterIndent prefixes every line after the first with param spaces so
// multi-line descriptions stay aligned under their field.
func filterIndent(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	n := 0
	if param != nil {
		n = param.Integer()
	}
	pad := strings.Repeat(" ", n)
	return pongo2.AsValue(strings.ReplaceAll(in.String(), "\n", "\n"+pad)), nil
}
