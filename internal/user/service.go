// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/coursekit/internal/course"
	"github.com/carterperez-dev/coursekit/internal/identity"
)

// Store is the subset of the repository the service reads through. Role
// writes do not appear here; those flow through the identity mirror only.
type Store interface {
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, page, pageSize int) ([]User, int, error)
	EnrolledCourseIDs(ctx context.Context, userID string) ([]string, error)
}

type CourseCatalog interface {
	ListByIDs(ctx context.Context, ids []string) ([]course.Course, error)
}

type Service struct {
	store   Store
	catalog CourseCatalog
	mirror  *identity.Mirror
	logger  *slog.Logger
}

func NewService(
	store Store,
	catalog CourseCatalog,
	mirror *identity.Mirror,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		mirror:  mirror,
		logger:  logger,
	}
}

func (s *Service) Me(ctx context.Context, userID string) (*UserResponse, error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)
	return &resp, nil
}

func (s *Service) MyCourses(
	ctx context.Context,
	userID string,
) ([]course.CourseResponse, error) {
	ids, err := s.store.EnrolledCourseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []course.CourseResponse{}, nil
	}

	courses, err := s.catalog.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load enrolled courses: %w", err)
	}

	out := make([]course.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, course.ToCourseResponse(&courses[i]))
	}

	return out, nil
}

// SetRole changes a user's role through the identity mirror. The mirror
// rejects admin as a target, so this path can never mint a second admin.
func (s *Service) SetRole(ctx context.Context, req SetRoleRequest) error {
	if err := s.mirror.SyncRole(ctx, req.UserID, req.Role); err != nil {
		return err
	}

	s.logger.Info("role updated",
		"user_id", req.UserID,
		"role", req.Role,
	)

	return nil
}

// BecomeInstructor is the self-service upgrade path. It runs through the
// same mirror write as the admin-driven role change.
func (s *Service) BecomeInstructor(ctx context.Context, callerID string) error {
	if err := s.mirror.SyncRole(ctx, callerID, identity.RoleInstructor); err != nil {
		return err
	}

	s.logger.Info("instructor upgrade", "user_id", callerID)
	return nil
}

func (s *Service) Bootstrap(ctx context.Context, callerID string) error {
	if err := s.mirror.BootstrapAdmin(ctx, callerID); err != nil {
		return err
	}

	s.logger.Info("admin bootstrap complete", "user_id", callerID)
	return nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	page, pageSize int,
) ([]UserResponse, int, error) {
	users, total, err := s.store.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}

	return out, total, nil
}
