// Package render turns catalog records into escaped HTML.
// Every record field is bound through html/template, so markup coming from the
// backend is displayed as text and unsafe URLs are neutralised.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/amaumene/cinefront/internal/models"
)

const (
	filledStar = "★"
	emptyStar  = "☆"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Target receives rendered fragments, replacing whatever it held before
type Target interface {
	Replace(fragment template.HTML)
	SetTitle(title string)
}

// Container is an in-memory Target
type Container struct {
	mu       sync.RWMutex
	fragment template.HTML
	title    string
}

// Replace swaps the container content
func (c *Container) Replace(fragment template.HTML) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fragment = fragment
}

// SetTitle sets the page title associated with the content
func (c *Container) SetTitle(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = title
}

// HTML returns the current fragment
func (c *Container) HTML() template.HTML {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fragment
}

// Title returns the current page title
func (c *Container) Title() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.title
}

// Input describes one form input on the page
type Input struct {
	ID    string
	Label string
	Type  string
	Value string
}

// PageData is everything the page template needs
type PageData struct {
	Title       string
	Flash       []string
	Searches    []Input
	HasResults  bool
	Results     template.HTML
	ActorFields []Input
	MovieFields []Input
}

// Renderer executes the embedded templates
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("render").Funcs(template.FuncMap{
		"stars": stars,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Fragment renders records, in order, into an HTML fragment
func (r *Renderer) Fragment(records []models.MovieRecord) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "records", records); err != nil {
		return "", fmt.Errorf("failed to render records: %w", err)
	}
	// Output of the records template is already escaped by html/template
	return template.HTML(buf.String()), nil
}

// Render replaces the content of target with the rendered records
func (r *Renderer) Render(records []models.MovieRecord, target Target) error {
	fragment, err := r.Fragment(records)
	if err != nil {
		return err
	}
	target.Replace(fragment)
	return nil
}

// Page writes a full HTML page
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

func stars(review models.ReviewRecord) string {
	filled, empty := review.Stars()
	return strings.Repeat(filledStar, filled) + strings.Repeat(emptyStar, empty)
}
