// AngelaMos | 2026
// service.go

package progress

import (
	"context"
	"errors"

	"github.com/carterperez-dev/coursekit/internal/core"
)

// EnrollmentChecker answers whether a user is currently enrolled in a
// course. Progress is only readable and writable by enrolled users.
type EnrollmentChecker interface {
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
}

type Service struct {
	store       *Repository
	enrollments EnrollmentChecker
}

func NewService(store *Repository, enrollments EnrollmentChecker) *Service {
	return &Service{
		store:       store,
		enrollments: enrollments,
	}
}

// Get returns the caller's progress in a course. A missing row for an
// enrolled user means nothing completed yet, not an error.
func (s *Service) Get(
	ctx context.Context,
	userID, courseID string,
) (*Progress, error) {
	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}

	p, err := s.store.Get(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return &Progress{
				UserID:            userID,
				CourseID:          courseID,
				CompletedLectures: []string{},
			}, nil
		}
		return nil, err
	}

	return p, nil
}

func (s *Service) MarkLecture(
	ctx context.Context,
	userID, courseID, lectureID string,
) (*Progress, error) {
	if lectureID == "" {
		return nil, core.ValidationError("lectureId is required")
	}

	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}

	return s.store.MarkLecture(ctx, userID, courseID, lectureID)
}

func (s *Service) Complete(ctx context.Context, userID, courseID string) error {
	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return err
	}

	return s.store.SetCompleted(ctx, userID, courseID, true)
}

func (s *Service) requireEnrollment(
	ctx context.Context,
	userID, courseID string,
) error {
	enrolled, err := s.enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return core.ForbiddenError("you are not enrolled in this course")
	}

	return nil
}
