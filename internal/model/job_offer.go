package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tags is stored as a JSONB column; Valuer/Scanner keep sqlx happy.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(t)
}

func (t *Tags) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	case nil:
		*t = nil
		return nil
	default:
		return errors.New("unsupported type for tags column")
	}
}

type JobOffer struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AuthorID    uuid.UUID `db:"author_id" json:"authorId"`
	Title       string    `db:"title" json:"title"`
	Position    string    `db:"position" json:"position"`
	Firm        string    `db:"firm" json:"firm"`
	Dimensions  string    `db:"dimensions" json:"dimensions"`
	Description string    `db:"description" json:"description"`
	City        string    `db:"city" json:"city"`
	Street      string    `db:"street" json:"street"`
	Number      string    `db:"number" json:"number"`
	Tags        Tags      `db:"tags" json:"tags"`
	LogoPath    *string   `db:"logo_path" json:"logo_path,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"date"`
}
