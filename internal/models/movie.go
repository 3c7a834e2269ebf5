package models

import "net/url"

// MaxRating is the upper bound of a review rating; the lower bound is 0
const MaxRating = 5

const imdbTitleBaseURL = "https://www.imdb.com/title/"

// Link is a navigable relationship: a display label and the resource it points to
type Link struct {
	Label string
	Href  string
}

// ReviewRecord is a single user review nested in a movie record
type ReviewRecord struct {
	Username   string // optional
	ReviewDate string
	Rating     int // always within [0, MaxRating] once normalized
	Comment    string
	Liked      bool
}

// Stars returns the number of filled and empty rating glyphs
func (r ReviewRecord) Stars() (filled, empty int) {
	filled = min(max(r.Rating, 0), MaxRating)
	return filled, MaxRating - filled
}

// MovieRecord is a movie as displayed on a result page
type MovieRecord struct {
	Title       string
	Director    Link
	Genre       Link
	Country     Link
	ReleaseDate string
	Runtime     string // optional, already carries its unit suffix
	ImdbID      string
	PosterURL   string
	Reviews     []ReviewRecord
}

// ImdbURL returns the public IMDb page of the movie
func (m MovieRecord) ImdbURL() string {
	if m.ImdbID == "" {
		return ""
	}
	return imdbTitleBaseURL + url.PathEscape(m.ImdbID)
}

// MovieCreationRequest is the POST /movies body
type MovieCreationRequest struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Runtime     string `json:"runtime"`
	Director    string `json:"director"`
	Genre       string `json:"genre"`
	Country     string `json:"country"`
	ImdbID      string `json:"imdb_id"`
	PosterURL   string `json:"poster_url"`
}

// CreatedResource is the response envelope of a create request
type CreatedResource struct {
	Links struct {
		Self struct {
			Href string `json:"href"`
		} `json:"self"`
	} `json:"_links"`
}

// SelfHref returns the canonical URL of the created resource
func (c *CreatedResource) SelfHref() string {
	return c.Links.Self.Href
}
