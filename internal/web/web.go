// Package web renders the HTML documents quay serves. The pages carry no
// server-side data: the home page and the admin console fetch /data and
// render client-side, so the documents are static and rendered once at
// startup. The only server-side input is the authentication flag selecting
// the admin page variant.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the pre-rendered page documents.
type Renderer struct {
	home         string
	adminLogin   string
	adminConsole string
}

type pageData struct {
	Title string
}

// New parses and renders all page templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	render := func(name, title string) (string, error) {
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, name, pageData{Title: title}); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", name, err)
		}
		return buf.String(), nil
	}

	r := &Renderer{}
	if r.home, err = render("home.html", "Quay"); err != nil {
		return nil, err
	}
	if r.adminLogin, err = render("admin_login.html", "Quay Admin"); err != nil {
		return nil, err
	}
	if r.adminConsole, err = render("admin_console.html", "Quay Admin"); err != nil {
		return nil, err
	}
	return r, nil
}

// Home returns the public home page document.
func (r *Renderer) Home() string {
	return r.home
}

// Admin returns the admin page document: the management console when
// authenticated, the login form otherwise.
func (r *Renderer) Admin(authenticated bool) string {
	if authenticated {
		return r.adminConsole
	}
	return r.adminLogin
}
