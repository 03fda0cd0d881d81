// AngelaMos | 2026
// entity.go

package progress

import (
	"time"

	"github.com/lib/pq"
)

// Progress tracks one user's position in one course. CourseID is a plain
// string key; when a course is deleted the sweep drops these rows rather
// than leaving them to dangle.
type Progress struct {
	UserID            string         `db:"user_id"            json:"userId"`
	CourseID          string         `db:"course_id"          json:"courseId"`
	CompletedLectures pq.StringArray `db:"completed_lectures" json:"completedLectures"`
	Completed         bool           `db:"completed"          json:"completed"`
	CreatedAt         time.Time      `db:"created_at"         json:"createdAt"`
	UpdatedAt         time.Time      `db:"updated_at"         json:"updatedAt"`
}
