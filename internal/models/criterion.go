package models

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/amaumene/cinefront/internal/errors"
)

var imdbIDPattern = regexp.MustCompile(`^tt\d+$`)

// SearchCriterion pairs a criterion tag with the raw user value
type SearchCriterion struct {
	Tag   CriterionTag
	Value string
}

// IsImdbID reports whether value looks like an IMDb title id (e.g. "tt0133093").
// Every search flow goes through this check.
func IsImdbID(value string) bool {
	return imdbIDPattern.MatchString(value)
}

// Classify turns the text of a search field into a criterion.
// field is the default tag of the input the text came from.
func Classify(raw string, field CriterionTag) (SearchCriterion, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return SearchCriterion{}, apperrors.NewValidationError(string(field), field.Prompt())
	}

	if IsImdbID(value) {
		return SearchCriterion{Tag: TagImdbID, Value: value}, nil
	}

	return SearchCriterion{Tag: field, Value: value}, nil
}

// PathSegment returns the backend path segment for the tag.
// Panics on an unknown tag: that is a programming error.
func (t CriterionTag) PathSegment() string {
	switch t {
	case TagTitle, TagImdbID, TagDirector, TagGenre, TagCountry, TagYear:
		return string(t)
	}
	panic(fmt.Sprintf("models: unmapped criterion tag %q", string(t)))
}

// Prompt is shown when the field is submitted empty
func (t CriterionTag) Prompt() string {
	switch t {
	case TagTitle:
		return "Please enter a movie title"
	case TagImdbID:
		return "Please enter an IMDb id"
	case TagDirector:
		return "Please enter a director"
	case TagGenre:
		return "Please enter a genre"
	case TagCountry:
		return "Please enter a country"
	case TagYear:
		return "Please enter a year"
	}
	return "Please enter a value"
}

// Label is the human-readable field name
func (t CriterionTag) Label() string {
	switch t {
	case TagImdbID:
		return "IMDb ID"
	case TagTitle, TagDirector, TagGenre, TagCountry, TagYear:
		return strings.ToUpper(string(t)[:1]) + string(t)[1:]
	}
	return string(t)
}

// PageTitle is the title of a result page for this criterion
func (c SearchCriterion) PageTitle() string {
	switch c.Tag {
	case TagDirector:
		return "Movies by " + c.Value
	case TagGenre:
		return c.Value + " movies"
	case TagYear:
		return "Movies from " + c.Value
	case TagCountry:
		return "Movies made in " + c.Value
	}
	return c.Value
}

// BuildResourceURL builds the read endpoint for a criterion
func BuildResourceURL(c SearchCriterion, baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/movies/" + c.Tag.PathSegment() + "/" + url.PathEscape(c.Value)
}
