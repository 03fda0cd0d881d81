// AngelaMos | 2026
// sweeper.go

package sweep

import (
	"context"
	"fmt"
	"log/slog"
)

// EnrollmentStore strips a course from every user's enrollment list.
type EnrollmentStore interface {
	RemoveCourseFromAll(ctx context.Context, courseID string) (int64, error)
}

// ProgressStore drops all progress recorded against a course.
type ProgressStore interface {
	DeleteByCourse(ctx context.Context, courseID string) (int64, error)
}

// Sweeper purges the references a course leaves behind in users and
// progress. It never touches purchases; those are the financial record and
// outlive any course. Both passes match zero rows on a repeat run, so the
// sweep is idempotent and safe to retry after a partial failure.
type Sweeper struct {
	enrollments EnrollmentStore
	progress    ProgressStore
	logger      *slog.Logger
}

func NewSweeper(
	enrollments EnrollmentStore,
	progress ProgressStore,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		enrollments: enrollments,
		progress:    progress,
		logger:      logger,
	}
}

// Sweep removes every reference to courseID outside the courses table. The
// two passes are independent; neither reads state the other writes, so
// their order carries no meaning.
func (s *Sweeper) Sweep(ctx context.Context, courseID string) error {
	enrollmentsCleared, err := s.enrollments.RemoveCourseFromAll(ctx, courseID)
	if err != nil {
		return fmt.Errorf("sweep enrollments for course %s: %w", courseID, err)
	}

	progressDeleted, err := s.progress.DeleteByCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("sweep progress for course %s: %w", courseID, err)
	}

	s.logger.Info("course references swept",
		"course_id", courseID,
		"enrollments_cleared", enrollmentsCleared,
		"progress_deleted", progressDeleted,
	)

	return nil
}
