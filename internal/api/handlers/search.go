package handlers

import (
	"net/http"

	"github.com/amaumene/cinefront/internal/controllers"
	apperrors "github.com/amaumene/cinefront/internal/errors"
	"github.com/amaumene/cinefront/internal/models"
	"github.com/amaumene/cinefront/internal/render"
	"github.com/sirupsen/logrus"
)

// SearchHandler runs one search per request and renders the result page
type SearchHandler struct {
	fetcher  controllers.Fetcher
	renderer *render.Renderer
	logger   *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(fetcher controllers.Fetcher, renderer *render.Renderer, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger,
	}
}

// ServeHTTP handles GET /search?field=<input id>&q=<value>
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fieldID := r.URL.Query().Get("field")
	query := r.URL.Query().Get("q")

	binding, ok := controllers.BindingFor(fieldID)
	if !ok {
		http.Error(w, "Unknown search field", http.StatusBadRequest)
		return
	}

	// Each request gets its own target so concurrent browsers never share results
	target := &render.Container{}
	notices := &flash{}
	ctrl := controllers.NewSearchController(h.fetcher, h.renderer, target, notices, h.logger)

	result, err := ctrl.Search(r.Context(), binding, query)
	if result.State == models.StateCancelled {
		// The client went away
		return
	}

	data := newPageData(fieldID, query)
	data.Flash = notices.messages
	if err == nil {
		data.Title = target.Title()
		data.HasResults = true
		data.Results = target.HTML()
	}

	writePage(w, h.renderer, h.logger, statusFor(err), data)
}

// statusFor maps an action failure to the status of the page that reports it
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	ce, ok := apperrors.As(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch ce.Type {
	case apperrors.ErrorTypeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrorTypeFetch:
		if ce.Status == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case apperrors.ErrorTypeNetwork, apperrors.ErrorTypeWrite:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
