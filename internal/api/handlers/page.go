package handlers

import (
	"bytes"
	"net/http"

	"github.com/amaumene/cinefront/internal/controllers"
	"github.com/amaumene/cinefront/internal/models"
	"github.com/amaumene/cinefront/internal/render"
	"github.com/sirupsen/logrus"
)

var fieldLabels = map[string]string{
	models.FieldName:         "Name",
	models.FieldBirthDate:    "Birth date",
	models.FieldBirthCountry: "Birth country",
	models.FieldTitle:        "Title",
	models.FieldReleaseDate:  "Release date",
	models.FieldRuntime:      "Runtime",
	models.FieldDirector:     "Director",
	models.FieldGenre:        "Genre",
	models.FieldCountry:      "Country",
	models.FieldImdbID:       "IMDb ID",
	models.FieldPosterURL:    "Poster URL",
}

var fieldTypes = map[string]string{
	models.FieldBirthDate:   "date",
	models.FieldReleaseDate: "date",
	models.FieldPosterURL:   "url",
}

// flash collects the messages of one request; it is the Notifier of the server
type flash struct {
	messages []string
}

func (f *flash) Notify(message string) {
	f.messages = append(f.messages, message)
}

// PageHandler serves the empty search and creation page
type PageHandler struct {
	renderer *render.Renderer
	logger   *logrus.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(renderer *render.Renderer, logger *logrus.Logger) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		logger:   logger,
	}
}

// ServeHTTP handles the index page
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writePage(w, h.renderer, h.logger, http.StatusOK, newPageData("", ""))
}

// newPageData builds a page with the search inputs and empty creation forms.
// activeField keeps the query in the search input it was typed in.
func newPageData(activeField, query string) render.PageData {
	searches := make([]render.Input, 0, len(controllers.DefaultBindings))
	for _, b := range controllers.DefaultBindings {
		input := render.Input{ID: b.FieldID, Label: b.Tag.Label(), Type: "text"}
		if b.FieldID == activeField {
			input.Value = query
		}
		searches = append(searches, input)
	}

	return render.PageData{
		Searches:    searches,
		ActorFields: formInputs(models.ActorFields, nil),
		MovieFields: formInputs(models.MovieFields, nil),
	}
}

func formInputs(fields []string, values models.FormValues) []render.Input {
	inputs := make([]render.Input, 0, len(fields))
	for _, field := range fields {
		inputType := fieldTypes[field]
		if inputType == "" {
			inputType = "text"
		}
		inputs = append(inputs, render.Input{
			ID:    field,
			Label: fieldLabels[field],
			Type:  inputType,
			Value: values.Value(field),
		})
	}
	return inputs
}

// writePage renders the page into a buffer first so a template error still yields a clean 500
func writePage(w http.ResponseWriter, renderer *render.Renderer, logger *logrus.Logger, status int, data render.PageData) {
	var buf bytes.Buffer
	if err := renderer.Page(&buf, data); err != nil {
		logger.WithError(err).Error("Failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
