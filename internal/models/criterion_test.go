package models

import (
	"testing"

	apperrors "github.com/amaumene/cinefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyImdbIDFromAnyField(t *testing.T) {
	for _, field := range AllTags {
		for _, value := range []string{"tt0133093", "tt1", " tt0111161 "} {
			c, err := Classify(value, field)
			require.NoError(t, err)
			assert.Equal(t, TagImdbID, c.Tag, "field %s value %q", field, value)
		}
	}
}

func TestClassifyDefaultsToField(t *testing.T) {
	tests := []struct {
		raw   string
		field CriterionTag
		want  SearchCriterion
	}{
		{"The Matrix", TagTitle, SearchCriterion{TagTitle, "The Matrix"}},
		{"  Lana Wachowski ", TagDirector, SearchCriterion{TagDirector, "Lana Wachowski"}},
		{"Sci-Fi", TagGenre, SearchCriterion{TagGenre, "Sci-Fi"}},
		{"USA", TagCountry, SearchCriterion{TagCountry, "USA"}},
		{"1999", TagYear, SearchCriterion{TagYear, "1999"}},
		{"tt", TagTitle, SearchCriterion{TagTitle, "tt"}},
		{"tt12a", TagTitle, SearchCriterion{TagTitle, "tt12a"}},
		{"TT0133093", TagTitle, SearchCriterion{TagTitle, "TT0133093"}},
	}

	for _, tt := range tests {
		got, err := Classify(tt.raw, tt.field)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestClassifyRejectsEmptyInput(t *testing.T) {
	_, err := Classify("   ", TagDirector)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "Please enter a director")
}

func TestBuildResourceURL(t *testing.T) {
	base := "http://localhost:8080/"

	tests := []struct {
		c    SearchCriterion
		want string
	}{
		{SearchCriterion{TagTitle, "The Matrix"}, "http://localhost:8080/movies/title/The%20Matrix"},
		{SearchCriterion{TagImdbID, "tt0133093"}, "http://localhost:8080/movies/imdb_id/tt0133093"},
		{SearchCriterion{TagDirector, "Jean-Pierre Jeunet"}, "http://localhost:8080/movies/director/Jean-Pierre%20Jeunet"},
		{SearchCriterion{TagGenre, "Sci/Fi"}, "http://localhost:8080/movies/genre/Sci%2FFi"},
		{SearchCriterion{TagCountry, "Côte d'Ivoire"}, "http://localhost:8080/movies/country/C%C3%B4te%20d%27Ivoire"},
		{SearchCriterion{TagYear, "1999?"}, "http://localhost:8080/movies/year/1999%3F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildResourceURL(tt.c, base))
	}
}

func TestPathSegmentIsTotal(t *testing.T) {
	for _, tag := range AllTags {
		assert.NotPanics(t, func() { _ = tag.PathSegment() })
	}
	assert.Panics(t, func() { _ = CriterionTag("rating").PathSegment() })
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Movies by Sofia Coppola", SearchCriterion{TagDirector, "Sofia Coppola"}.PageTitle())
	assert.Equal(t, "Drama movies", SearchCriterion{TagGenre, "Drama"}.PageTitle())
	assert.Equal(t, "Movies from 1994", SearchCriterion{TagYear, "1994"}.PageTitle())
	assert.Equal(t, "Movies made in Japan", SearchCriterion{TagCountry, "Japan"}.PageTitle())
	assert.Equal(t, "Heat", SearchCriterion{TagTitle, "Heat"}.PageTitle())
}
