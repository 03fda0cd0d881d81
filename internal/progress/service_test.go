// AngelaMos | 2026
// service_test.go

package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/coursekit/internal/core"
)

type fakeEnrollments struct {
	enrolled map[[2]string]bool
}

func (f *fakeEnrollments) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	return f.enrolled[[2]string{userID, courseID}], nil
}

func TestGetRequiresEnrollment(t *testing.T) {
	svc := NewService(nil, &fakeEnrollments{enrolled: map[[2]string]bool{}})

	_, err := svc.Get(context.Background(), "usr_1", "c1")
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestMarkLectureRequiresEnrollment(t *testing.T) {
	svc := NewService(nil, &fakeEnrollments{enrolled: map[[2]string]bool{}})

	_, err := svc.MarkLecture(context.Background(), "usr_1", "c1", "lec_1")
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestMarkLectureRequiresLectureID(t *testing.T) {
	svc := NewService(nil, &fakeEnrollments{enrolled: map[[2]string]bool{
		{"usr_1", "c1"}: true,
	}})

	_, err := svc.MarkLecture(context.Background(), "usr_1", "c1", "")
	assert.ErrorIs(t, err, core.ErrValidation)
}
