// AngelaMos | 2026
// entity.go

package course

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Course is the lifecycle-managed catalog entity. EnrolledStudents is the
// course-side view of enrollment; the user-side view lives on each user row,
// and the enrollment transaction keeps the two moving together.
type Course struct {
	ID               string         `db:"id"                json:"id"`
	Title            string         `db:"title"             json:"title"`
	Description      string         `db:"description"       json:"description"`
	Thumbnail        string         `db:"thumbnail"         json:"thumbnail"`
	Price            float64        `db:"price"             json:"price"`
	Discount         float64        `db:"discount"          json:"discount"`
	Sections         Sections       `db:"sections"          json:"sections"`
	InstructorID     string         `db:"instructor_id"     json:"instructorId"`
	IsPublished      bool           `db:"is_published"      json:"isPublished"`
	EnrolledStudents pq.StringArray `db:"enrolled_students" json:"enrolledStudents"`
	CreatedAt        time.Time      `db:"created_at"        json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at"        json:"updatedAt"`
}

func (c *Course) DiscountedPrice() float64 {
	return c.Price - (c.Price * c.Discount / 100)
}

// Sections is the ordered course outline, stored as a JSONB column.
type Sections []Section

type Section struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Lectures []Lecture `json:"lectures"`
}

type Lecture struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Order         int    `json:"order"`
	DurationMins  int    `json:"durationMins"`
	URL           string `json:"url"`
	IsPreviewFree bool   `json:"isPreviewFree"`
}

func (s Sections) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *Sections) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = Sections{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported sections type %T", src)
	}
}
