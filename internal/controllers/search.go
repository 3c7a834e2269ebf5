package controllers

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/amaumene/cinefront/internal/errors"
	"github.com/amaumene/cinefront/internal/metrics"
	"github.com/amaumene/cinefront/internal/models"
	"github.com/amaumene/cinefront/internal/render"
	"github.com/sirupsen/logrus"
)

// Fetcher issues read requests against the catalog backend
type Fetcher interface {
	BaseURL() string
	FetchRecords(ctx context.Context, endpoint string) (models.RawPayload, error)
}

// Notifier shows a blocking message to the user
type Notifier interface {
	Notify(message string)
}

// SearchBinding ties a search input to the criterion it searches by default
type SearchBinding struct {
	FieldID string
	Tag     models.CriterionTag
}

// DefaultBindings are the search inputs shown on the page
var DefaultBindings = []SearchBinding{
	{FieldID: "movie-title", Tag: models.TagTitle},
	{FieldID: "movie-imdb-id", Tag: models.TagImdbID},
	{FieldID: "movie-director", Tag: models.TagDirector},
	{FieldID: "movie-genre", Tag: models.TagGenre},
	{FieldID: "movie-country", Tag: models.TagCountry},
	{FieldID: "movie-year", Tag: models.TagYear},
}

// BindingFor looks up a default binding by input id
func BindingFor(fieldID string) (SearchBinding, bool) {
	for _, b := range DefaultBindings {
		if b.FieldID == fieldID {
			return b, true
		}
	}
	return SearchBinding{}, false
}

// SearchResult describes how a search action ended
type SearchResult struct {
	State     models.State
	Criterion models.SearchCriterion
	Endpoint  string
	Records   int
}

// SearchController runs the classify, fetch, normalize and render pipeline for one
// render target. Only the most recently issued search may write to the target.
type SearchController struct {
	fetcher  Fetcher
	renderer *render.Renderer
	target   render.Target
	notifier Notifier
	logger   *logrus.Logger

	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
	state  models.State // of the latest issued search
}

// NewSearchController creates a new search controller bound to target
func NewSearchController(fetcher Fetcher, renderer *render.Renderer, target render.Target, notifier Notifier, logger *logrus.Logger) *SearchController {
	return &SearchController{
		fetcher:  fetcher,
		renderer: renderer,
		target:   target,
		notifier: notifier,
		logger:   logger,
		state:    models.StateIdle,
	}
}

// State returns the state of the most recently issued search
func (c *SearchController) State() models.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Search classifies raw input from the binding's field, fetches the matching records
// and renders them into the target. Starting a search cancels the one in flight.
func (c *SearchController) Search(ctx context.Context, binding SearchBinding, raw string) (SearchResult, error) {
	criterion, err := models.Classify(raw, binding.Tag)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"field":     binding.FieldID,
			"criterion": binding.Tag,
		}).WithError(err).Warn("Rejected empty search input")
		c.notifier.Notify(userMessage(err))
		metrics.Searches.WithLabelValues(string(binding.Tag), string(models.StateFailed)).Inc()
		return SearchResult{State: models.StateFailed}, err
	}

	result := SearchResult{
		State:     models.StateSubmitting,
		Criterion: criterion,
		Endpoint:  models.BuildResourceURL(criterion, c.fetcher.BaseURL()),
	}
	logger := c.logger.WithFields(logrus.Fields{
		"criterion": criterion.Tag,
		"value":     criterion.Value,
		"endpoint":  result.Endpoint,
	})

	seq, reqCtx, cancel := c.begin(ctx)
	defer c.end(seq, cancel)

	logger.WithField("seq", seq).Info("Searching movies")

	payload, err := c.fetcher.FetchRecords(reqCtx, result.Endpoint)
	if err == nil {
		var records []models.MovieRecord
		records, err = render.Normalize(payload)
		if err != nil {
			err = apperrors.NewCatalogError(apperrors.ErrorTypeFetch, "backend returned an unreadable payload", result.Endpoint, 0, err)
		} else {
			result.Records = len(records)
			err = c.renderLatest(seq, criterion, records)
		}
	}

	switch {
	case err == nil:
		result.State = models.StateSucceeded
		logger.WithField("count", result.Records).Info("Search completed")
	case apperrors.IsType(err, apperrors.ErrorTypeCancelled) || !c.isLatest(seq):
		result.State = models.StateCancelled
		metrics.StaleResponses.Inc()
		logger.WithField("seq", seq).Debug("Discarded superseded search")
		if !apperrors.IsType(err, apperrors.ErrorTypeCancelled) {
			err = apperrors.NewCancelledError(result.Endpoint, err)
		}
	default:
		result.State = models.StateFailed
		logFailure(logger, err, "Search failed")
		c.notifier.Notify(userMessage(err))
	}

	c.settle(seq, result.State)
	metrics.Searches.WithLabelValues(string(criterion.Tag), string(result.State)).Inc()
	return result, err
}

// begin registers a new search, cancelling the previous one
func (c *SearchController) begin(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.latest++
	c.state = models.StateSubmitting
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	return c.latest, reqCtx, cancel
}

func (c *SearchController) end(seq uint64, cancel context.CancelFunc) {
	c.mu.Lock()
	if c.latest == seq {
		c.cancel = nil
	}
	c.mu.Unlock()
	cancel()
}

// settle moves the latest search to its terminal state; superseded searches leave it alone
func (c *SearchController) settle(seq uint64, state models.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq == c.latest && !c.state.Terminal() {
		c.state = state
	}
}

func (c *SearchController) isLatest(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest == seq
}

// renderLatest writes records to the target only if seq is still the newest search
func (c *SearchController) renderLatest(seq uint64, criterion models.SearchCriterion, records []models.MovieRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.latest {
		return apperrors.NewCancelledError("", fmt.Errorf("search %d superseded by %d", seq, c.latest))
	}
	if err := c.renderer.Render(records, c.target); err != nil {
		return err
	}
	c.target.SetTitle(criterion.PageTitle())
	return nil
}
