package models

import "time"

// DateLayout is the wire format of every date field
const DateLayout = "2006-01-02"

// ActorCreationRequest is the POST /actors body
type ActorCreationRequest struct {
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date"`
	BirthCountry string `json:"birth_country"`
	Age          int    `json:"age"` // derived at submission time
}

// AgeAt returns the number of full years elapsed between birth and now
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
