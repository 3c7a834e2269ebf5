package controllers

import (
	"context"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/amaumene/cinefront/internal/errors"
	"github.com/amaumene/cinefront/internal/metrics"
	"github.com/amaumene/cinefront/internal/models"
	"github.com/sirupsen/logrus"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Creator issues create requests against the catalog backend
type Creator interface {
	Create(ctx context.Context, path string, body interface{}) (*models.CreatedResource, error)
}

// Form is a snapshot of a creation form that can be cleared after success
type Form interface {
	Value(field string) string
	Reset()
}

// Navigator moves the user to another resource
type Navigator interface {
	Navigate(href string)
}

// CreationController submits new actors and movies
type CreationController struct {
	creator Creator
	logger  *logrus.Logger
	now     func() time.Time
}

// NewCreationController creates a new creation controller
func NewCreationController(creator Creator, logger *logrus.Logger) *CreationController {
	return &CreationController{
		creator: creator,
		logger:  logger,
		now:     time.Now,
	}
}

// SubmitActor reads the actor form, derives the age and creates the actor.
// On success the form is reset and the user is sent to the new resource.
func (c *CreationController) SubmitActor(ctx context.Context, form Form, nav Navigator, notifier Notifier) (*models.CreatedResource, error) {
	req, err := c.BuildActorRequest(form)
	if err != nil {
		return nil, c.reject("actor", err, notifier)
	}
	return c.submit(ctx, "actor", "/actors", req, "Actor added successfully!", form, nav, notifier)
}

// SubmitMovie reads the movie form and creates the movie.
// On success the form is reset and the user is sent to the new resource.
func (c *CreationController) SubmitMovie(ctx context.Context, form Form, nav Navigator, notifier Notifier) (*models.CreatedResource, error) {
	req, err := BuildMovieRequest(form)
	if err != nil {
		return nil, c.reject("movie", err, notifier)
	}
	return c.submit(ctx, "movie", "/movies", req, "Movie added successfully!", form, nav, notifier)
}

// BuildActorRequest validates the actor form and computes the age at submission time
func (c *CreationController) BuildActorRequest(form Form) (models.ActorCreationRequest, error) {
	name := strings.TrimSpace(form.Value(models.FieldName))
	if name == "" {
		return models.ActorCreationRequest{}, apperrors.NewValidationError(models.FieldName, "Please enter a name")
	}

	birthDate := strings.TrimSpace(form.Value(models.FieldBirthDate))
	birth, err := time.Parse(models.DateLayout, birthDate)
	if err != nil {
		return models.ActorCreationRequest{}, apperrors.NewValidationError(models.FieldBirthDate, "Please enter a birth date as YYYY-MM-DD")
	}

	now := c.now()
	if birth.After(now) {
		return models.ActorCreationRequest{}, apperrors.NewValidationError(models.FieldBirthDate, "Birth date cannot be in the future")
	}

	return models.ActorCreationRequest{
		Name:         name,
		BirthDate:    birthDate,
		BirthCountry: strings.TrimSpace(form.Value(models.FieldBirthCountry)),
		Age:          models.AgeAt(birth, now),
	}, nil
}

// BuildMovieRequest validates the movie form into the snake_case create contract
func BuildMovieRequest(form Form) (models.MovieCreationRequest, error) {
	req := models.MovieCreationRequest{
		Title:       strings.TrimSpace(form.Value(models.FieldTitle)),
		ReleaseDate: strings.TrimSpace(form.Value(models.FieldReleaseDate)),
		Runtime:     strings.TrimSpace(form.Value(models.FieldRuntime)),
		Director:    strings.TrimSpace(form.Value(models.FieldDirector)),
		Genre:       strings.TrimSpace(form.Value(models.FieldGenre)),
		Country:     strings.TrimSpace(form.Value(models.FieldCountry)),
		ImdbID:      strings.TrimSpace(form.Value(models.FieldImdbID)),
		PosterURL:   strings.TrimSpace(form.Value(models.FieldPosterURL)),
	}

	if req.Title == "" {
		return req, apperrors.NewValidationError(models.FieldTitle, "Please enter a movie title")
	}
	if req.ReleaseDate != "" {
		if _, err := time.Parse(models.DateLayout, req.ReleaseDate); err != nil {
			return req, apperrors.NewValidationError(models.FieldReleaseDate, "Please enter a release date as YYYY-MM-DD")
		}
	}
	if req.ImdbID != "" && !models.IsImdbID(req.ImdbID) {
		return req, apperrors.NewValidationError(models.FieldImdbID, "IMDb id must look like tt0133093")
	}
	// A bare number is minutes
	if digitsOnly.MatchString(req.Runtime) {
		req.Runtime += " min"
	}

	return req, nil
}

func (c *CreationController) submit(ctx context.Context, resource, path string, body interface{}, successMsg string, form Form, nav Navigator, notifier Notifier) (*models.CreatedResource, error) {
	logger := c.logger.WithFields(logrus.Fields{
		"resource": resource,
		"path":     path,
	})
	logger.Info("Submitting new " + resource)

	created, err := c.creator.Create(ctx, path, body)
	if err != nil {
		state := models.StateFailed
		if apperrors.IsType(err, apperrors.ErrorTypeCancelled) {
			state = models.StateCancelled
		} else {
			logFailure(logger, err, "Create failed")
			notifier.Notify(userMessage(err))
		}
		metrics.Submissions.WithLabelValues(resource, string(state)).Inc()
		return nil, err
	}

	metrics.Submissions.WithLabelValues(resource, string(models.StateSucceeded)).Inc()
	logger.WithField("self", created.SelfHref()).Info("Created " + resource)

	notifier.Notify(successMsg)
	form.Reset()
	nav.Navigate(created.SelfHref())
	return created, nil
}

func (c *CreationController) reject(resource string, err error, notifier Notifier) error {
	entry := c.logger.WithField("resource", resource)
	if ce, ok := apperrors.As(err); ok && ce.Field != "" {
		entry = entry.WithField("field", ce.Field)
	}
	entry.WithError(err).Warn("Rejected creation form")
	notifier.Notify(userMessage(err))
	metrics.Submissions.WithLabelValues(resource, string(models.StateFailed)).Inc()
	return err
}
