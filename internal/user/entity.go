// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/lib/pq"
)

// User mirrors an identity-provider account. ID is the provider's
// subject identifier, not a locally generated key; the provider owns
// the account, this row follows it.
type User struct {
	ID              string         `db:"id"               json:"id"`
	Name            string         `db:"name"             json:"name"`
	Email           string         `db:"email"            json:"email"`
	ImageURL        string         `db:"image_url"        json:"imageUrl"`
	Role            string         `db:"role"             json:"role"`
	EnrolledCourses pq.StringArray `db:"enrolled_courses" json:"enrolledCourses"`
	CreatedAt       time.Time      `db:"created_at"       json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at"       json:"updatedAt"`
}
