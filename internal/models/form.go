package models

// Form field identifiers shared by the HTML forms, the CLI flags and the submitters
const (
	FieldName         = "name"
	FieldBirthDate    = "birth_date"
	FieldBirthCountry = "birth_country"

	FieldTitle       = "title"
	FieldReleaseDate = "release_date"
	FieldRuntime     = "runtime"
	FieldDirector    = "director"
	FieldGenre       = "genre"
	FieldCountry     = "country"
	FieldImdbID      = "imdb_id"
	FieldPosterURL   = "poster_url"
)

// ActorFields lists the actor form inputs in display order
var ActorFields = []string{FieldName, FieldBirthDate, FieldBirthCountry}

// MovieFields lists the movie form inputs in display order
var MovieFields = []string{
	FieldTitle, FieldReleaseDate, FieldRuntime, FieldDirector,
	FieldGenre, FieldCountry, FieldImdbID, FieldPosterURL,
}

// FormValues is an in-memory form snapshot
type FormValues map[string]string

// Value returns the raw value of a field
func (f FormValues) Value(field string) string {
	return f[field]
}

// Reset clears every field
func (f FormValues) Reset() {
	for k := range f {
		delete(f, k)
	}
}
