// AngelaMos | 2026
// entity.go

package purchase

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Purchase is the append-only financial record. CourseID is a plain string
// with no foreign key: a purchase must survive the deletion of the course it
// paid for.
type Purchase struct {
	ID        string    `db:"id"         json:"id"`
	UserID    string    `db:"user_id"    json:"userId"`
	CourseID  string    `db:"course_id"  json:"courseId"`
	Amount    float64   `db:"amount"     json:"amount"`
	Status    string    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count"  json:"count"`
}

// EnrolledStudent is one completed purchase of one of an instructor's
// courses, joined with the buyer's mirrored profile. The instructor
// roster view is built from these rows.
type EnrolledStudent struct {
	StudentName  string    `db:"student_name"  json:"studentName"`
	StudentImage string    `db:"student_image" json:"studentImage"`
	CourseTitle  string    `db:"course_title"  json:"courseTitle"`
	PurchasedAt  time.Time `db:"purchased_at"  json:"purchasedAt"`
}
