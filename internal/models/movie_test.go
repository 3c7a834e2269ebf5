package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReviewStars(t *testing.T) {
	tests := []struct {
		rating        int
		filled, empty int
	}{
		{0, 0, 5},
		{3, 3, 2},
		{5, 5, 0},
		{-2, 0, 5},
		{9, 5, 0},
	}

	for _, tt := range tests {
		filled, empty := ReviewRecord{Rating: tt.rating}.Stars()
		assert.Equal(t, tt.filled, filled, "rating %d", tt.rating)
		assert.Equal(t, tt.empty, empty, "rating %d", tt.rating)
	}
}

func TestImdbURL(t *testing.T) {
	assert.Equal(t, "https://www.imdb.com/title/tt0133093", MovieRecord{ImdbID: "tt0133093"}.ImdbURL())
	assert.Empty(t, MovieRecord{}.ImdbURL())
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2024, time.June, 14, 23, 59, 0, 0, time.UTC), 23},
		{time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), 24},
		{time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), 24},
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 23},
		{time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeAt(birth, tt.now), "now %s", tt.now.Format(DateLayout))
	}
}

func TestFormValuesReset(t *testing.T) {
	form := FormValues{FieldName: "Jane Doe", FieldBirthCountry: "USA"}
	form.Reset()

	assert.Empty(t, form)
	assert.Equal(t, "", form.Value(FieldName))
}
