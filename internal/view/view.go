// Package view renders the HTML pages of both services.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/unclebandit/omikuji-web/internal/model"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "templates/*.html"))

var jst = time.FixedZone("JST", 9*60*60)

type TopPage struct {
	DateText string
}

type CustomersPage struct {
	Customers []model.Customer
}

// DateText formats t as it is shown on the form page, in Japan time.
func DateText(t time.Time) string {
	t = t.In(jst)
	return fmt.Sprintf("%d月%d日の運勢", int(t.Month()), t.Day())
}

// Render executes into a buffer first so a template failure never leaves a
// half-written page behind.
func Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
