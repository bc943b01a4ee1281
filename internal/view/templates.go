package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/isdelr/meetings/web"
)

// Engine renders HTML templates.
type Engine struct {
	pages map[string]*template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title         string
	Authenticated bool
	Email         string
	Errors        []string
	Data          any
}

var pageNames = []string{
	"index.html",
	"signup.html",
	"login.html",
	"meetings.html",
	"meeting_create.html",
	"meeting_edit.html",
	"meeting_delete.html",
	"error.html",
}

// NewEngine parses every page together with the shared layout.
func NewEngine() (*Engine, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tpl, err := template.New(name).ParseFS(web.Templates, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return &Engine{pages: pages}, nil
}

// Render executes a page and writes it with the given status code.
// Nothing is written if the template fails.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	tpl, ok := e.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
