package models

// CriterionTag classifies a search input and selects the backend endpoint
type CriterionTag string

const (
	TagTitle    CriterionTag = "title"
	TagImdbID   CriterionTag = "imdb_id"
	TagDirector CriterionTag = "director"
	TagGenre    CriterionTag = "genre"
	TagCountry  CriterionTag = "country"
	TagYear     CriterionTag = "year"
)

// AllTags lists every criterion tag in display order
var AllTags = []CriterionTag{TagTitle, TagImdbID, TagDirector, TagGenre, TagCountry, TagYear}

// State represents the lifecycle of a single user action (search or create)
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded" // terminal
	StateFailed     State = "failed"    // terminal
	StateCancelled  State = "cancelled" // terminal, superseded by a newer action
)

// Terminal reports whether no further transition can happen
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

// RawPayload is an undecoded JSON response body from the catalog backend
type RawPayload []byte
