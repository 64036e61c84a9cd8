package domain

import (
	"strings"
	"time"
)

// Gender values accepted on a health profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// HealthProfile holds the per-user body metrics and preference tags.
// There is at most one profile per user.
type HealthProfile struct {
	ID                 string    `json:"-"                   db:"id"`
	UserID             string    `json:"-"                   db:"user_id"`
	Age                int       `json:"age"                 db:"age"`
	Gender             string    `json:"gender"              db:"gender"`
	Weight             float64   `json:"weight"              db:"weight"` // kg
	Height             float64   `json:"height"              db:"height"` // cm
	DietaryPreferences []string  `json:"dietary_preferences" db:"dietary_preferences"`
	ExistingConditions []string  `json:"existing_conditions" db:"existing_conditions"`
	CreatedAt          time.Time `json:"created_at"          db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"          db:"updated_at"`
}

// HealthProfileInput is the client-submitted part of a profile.
type HealthProfileInput struct {
	Age                int      `json:"age"`
	Gender             string   `json:"gender"`
	Weight             float64  `json:"weight"`
	Height             float64  `json:"height"`
	DietaryPreferences []string `json:"dietary_preferences"`
	ExistingConditions []string `json:"existing_conditions"`
}

// CleanTags trims tags and drops empty ones.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
