package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is one recurring weekly slot in the mentor's timezone.
// Start and End are "HH:MM" wall-clock times; End is exclusive.
type AvailabilityWindow struct {
	Weekday string `json:"weekday"` // "monday" .. "sunday"
	Start   string `json:"start"`   // "09:00"
	End     string `json:"end"`     // "17:00"
}

// Availability is the mentor's declared weekly schedule, persisted as a
// JSONB column. An empty list means the mentor is not bookable.
type Availability []AvailabilityWindow

func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		a = Availability{}
	}
	return json.Marshal(a)
}

func (a *Availability) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = Availability{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into Availability", src)
	}
}

type Mentor struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`

	Name              string   `db:"name"`
	Title             string   `db:"title"`
	CurrentCompany    string   `db:"current_company"`
	PreviousCompanies []string `db:"previous_companies"`
	Avatar            string   `db:"avatar"`
	Bio               string   `db:"bio"`

	Specialties []string `db:"specialties"`
	Skills      []string `db:"skills"`
	Languages   []string `db:"languages"`

	Experience int `db:"experience"` // years

	// Rating and ReviewCount are derived from reviews and recomputed
	// transactionally on every review insert. Never mutated directly.
	Rating      float64 `db:"rating"`
	ReviewCount int     `db:"review_count"`

	HourlyRate   float64 `db:"hourly_rate"`
	ResponseTime string  `db:"response_time"`

	Timezone     string       `db:"timezone"`
	Availability Availability `db:"availability"`
	IsActive     bool         `db:"is_active"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
