// AngelaMos | 2026
// service.go

package purchase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/coursekit/internal/core"
	"github.com/carterperez-dev/coursekit/internal/course"
)

type Store interface {
	Create(ctx context.Context, tx core.DBTX, p *Purchase) error
	List(ctx context.Context, page, pageSize int) ([]Purchase, int, error)
	EnrolledStudentsByInstructor(ctx context.Context, instructorID string) ([]EnrolledStudent, error)
}

// CourseCatalog resolves the course being purchased and appends the buyer to
// its roster inside the enrollment transaction.
type CourseCatalog interface {
	GetByID(ctx context.Context, id string) (*course.Course, error)
	AppendStudent(ctx context.Context, tx core.DBTX, courseID, userID string) error
}

// EnrollmentWriter appends the course to the buyer's enrollment list inside
// the enrollment transaction.
type EnrollmentWriter interface {
	AppendEnrollment(ctx context.Context, tx core.DBTX, userID, courseID string) error
}

type UserChecker interface {
	GetRole(ctx context.Context, externalID string) (string, error)
}

type Service struct {
	db      *core.Database
	store   Store
	courses CourseCatalog
	users   EnrollmentWriter
	checker UserChecker
	logger  *slog.Logger
}

func NewService(
	db *core.Database,
	store Store,
	courses CourseCatalog,
	users EnrollmentWriter,
	checker UserChecker,
	logger *slog.Logger,
) *Service {
	return &Service{
		db:      db,
		store:   store,
		courses: courses,
		users:   users,
		checker: checker,
		logger:  logger,
	}
}

// CompleteEnrollment records a completed purchase and both sides of the
// enrollment in one transaction. Either the purchase row, the user's
// enrollment list, and the course roster all move, or none of them do.
func (s *Service) CompleteEnrollment(
	ctx context.Context,
	req EnrollRequest,
) (*Purchase, error) {
	if err := validateEnroll(req); err != nil {
		return nil, err
	}

	if _, err := s.checker.GetRole(ctx, req.UserID); err != nil {
		return nil, err
	}

	c, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	amount := c.DiscountedPrice()
	if req.Amount.Present() {
		amount = req.Amount.Float64()
	}

	p := &Purchase{
		ID:       uuid.NewString(),
		UserID:   req.UserID,
		CourseID: req.CourseID,
		Amount:   amount,
		Status:   StatusCompleted,
	}

	err = core.InTx(ctx, s.db.DB, func(tx *sqlx.Tx) error {
		if err := s.store.Create(ctx, tx, p); err != nil {
			return err
		}
		if err := s.users.AppendEnrollment(ctx, tx, req.UserID, req.CourseID); err != nil {
			return err
		}
		return s.courses.AppendStudent(ctx, tx, req.CourseID, req.UserID)
	})
	if err != nil {
		return nil, fmt.Errorf("complete enrollment: %w", err)
	}

	s.logger.Info("enrollment completed",
		"purchase_id", p.ID,
		"user_id", req.UserID,
		"course_id", req.CourseID,
		"amount", amount,
	)

	return p, nil
}

func (s *Service) List(
	ctx context.Context,
	page, pageSize int,
) ([]Purchase, int, error) {
	return s.store.List(ctx, page, pageSize)
}

// EnrolledStudents returns the instructor's roster view: who bought which
// of their courses, and when.
func (s *Service) EnrolledStudents(
	ctx context.Context,
	instructorID string,
) ([]EnrolledStudent, error) {
	return s.store.EnrolledStudentsByInstructor(ctx, instructorID)
}

func validateEnroll(req EnrollRequest) error {
	if req.UserID == "" {
		return core.ValidationError("userId is required")
	}
	if req.CourseID == "" {
		return core.ValidationError("courseId is required")
	}
	if req.Amount.Present() {
		if !req.Amount.Valid() {
			return core.ValidationError("amount must be a number")
		}
		if req.Amount.Float64() < 0 {
			return core.ValidationError("amount must be at least 0")
		}
	}

	return nil
}
