// AngelaMos | 2026
// dto.go

package purchase

import "github.com/carterperez-dev/coursekit/internal/course"

// EnrollRequest is the operator-driven enrollment input. Amount is optional;
// when omitted the course's discounted price is charged, and it takes the
// same tolerant numeric form the course endpoints accept.
type EnrollRequest struct {
	UserID   string        `json:"userId"`
	CourseID string        `json:"courseId"`
	Amount   course.Number `json:"amount"`
}
