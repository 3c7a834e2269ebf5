package handlers

import (
	"context"
	"net/http"

	"github.com/amaumene/cinefront/internal/controllers"
	"github.com/amaumene/cinefront/internal/models"
	"github.com/amaumene/cinefront/internal/render"
	"github.com/sirupsen/logrus"
)

const maxFormSize = 64 * 1024

type submitFunc func(ctx context.Context, form controllers.Form, nav controllers.Navigator, notifier controllers.Notifier) (*models.CreatedResource, error)

// redirect is the Navigator of the server: it remembers where to send the browser
type redirect struct {
	href string
}

func (r *redirect) Navigate(href string) {
	r.href = href
}

// CreateHandler handles a creation form post for one resource kind
type CreateHandler struct {
	resource string
	fields   []string
	submit   submitFunc
	renderer *render.Renderer
	logger   *logrus.Logger
}

// NewActorHandler creates the POST /actors handler
func NewActorHandler(ctrl *controllers.CreationController, renderer *render.Renderer, logger *logrus.Logger) *CreateHandler {
	return &CreateHandler{
		resource: "actor",
		fields:   models.ActorFields,
		submit:   ctrl.SubmitActor,
		renderer: renderer,
		logger:   logger,
	}
}

// NewMovieHandler creates the POST /movies handler
func NewMovieHandler(ctrl *controllers.CreationController, renderer *render.Renderer, logger *logrus.Logger) *CreateHandler {
	return &CreateHandler{
		resource: "movie",
		fields:   models.MovieFields,
		submit:   ctrl.SubmitMovie,
		renderer: renderer,
		logger:   logger,
	}
}

// ServeHTTP submits the form. Success answers 303 to the created resource with the
// notice in the body; failure re-renders the page with the message and the values
// the user typed.
func (h *CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := models.FormValues{}
	for _, field := range h.fields {
		form[field] = r.PostForm.Get(field)
	}

	nav := &redirect{}
	notices := &flash{}
	_, err := h.submit(r.Context(), form, nav, notices)
	data := newPageData("", "")
	data.Flash = notices.messages

	if err == nil {
		// The body carries the success notice for clients that do not follow the redirect
		w.Header().Set("Location", nav.href)
		writePage(w, h.renderer, h.logger, http.StatusSeeOther, data)
		return
	}

	if h.resource == "actor" {
		data.ActorFields = formInputs(h.fields, form)
	} else {
		data.MovieFields = formInputs(h.fields, form)
	}

	writePage(w, h.renderer, h.logger, statusFor(err), data)
}
