package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/amaumene/cinefront/internal/models"
)

type linkDTO struct {
	Href string `json:"href"`
}

type reviewDTO struct {
	ReviewDate string `json:"review_date"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	IsLiked    bool   `json:"is_liked"`
	Username   string `json:"username"`
}

type movieDTO struct {
	Title       string      `json:"title"`
	Director    string      `json:"director"`
	Genre       string      `json:"genre"`
	Country     string      `json:"country"`
	ReleaseDate string      `json:"release_date"`
	Runtime     string      `json:"runtime"`
	ImdbID      string      `json:"imdb_id"`
	PosterURL   string      `json:"poster_url"`
	Reviews     []reviewDTO `json:"reviews"`
	Links       struct {
		Director linkDTO `json:"director"`
		Genre    linkDTO `json:"genre"`
		Country  linkDTO `json:"country"`
	} `json:"_links"`
}

// envelope detects the HAL collection wrapper and bare records
type envelope struct {
	Embedded *struct {
		MovieList []movieDTO `json:"movieList"`
	} `json:"_embedded"`
	Title *string `json:"title"`
}

// Normalize turns a backend payload into an ordered list of records.
// A HAL collection yields its _embedded.movieList in backend order; a bare record
// yields a single element. An empty HAL collection (no _embedded and no title, or
// _embedded without movieList) yields no records.
func Normalize(payload models.RawPayload) ([]models.MovieRecord, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("payload is not a JSON object")
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	var dtos []movieDTO
	switch {
	case env.Embedded != nil:
		dtos = env.Embedded.MovieList
	case env.Title != nil:
		var single movieDTO
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		dtos = []movieDTO{single}
	}

	records := make([]models.MovieRecord, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, dto.toRecord())
	}
	return records, nil
}

func (d movieDTO) toRecord() models.MovieRecord {
	record := models.MovieRecord{
		Title:       d.Title,
		Director:    models.Link{Label: d.Director, Href: d.Links.Director.Href},
		Genre:       models.Link{Label: d.Genre, Href: d.Links.Genre.Href},
		Country:     models.Link{Label: d.Country, Href: d.Links.Country.Href},
		ReleaseDate: d.ReleaseDate,
		Runtime:     d.Runtime,
		ImdbID:      d.ImdbID,
		PosterURL:   d.PosterURL,
		Reviews:     make([]models.ReviewRecord, 0, len(d.Reviews)),
	}

	for _, r := range d.Reviews {
		record.Reviews = append(record.Reviews, models.ReviewRecord{
			Username:   r.Username,
			ReviewDate: r.ReviewDate,
			// Out-of-range ratings are clamped here, at the data-entry boundary
			Rating:  min(max(r.Rating, 0), models.MaxRating),
			Comment: r.Comment,
			Liked:   r.IsLiked,
		})
	}

	return record
}
