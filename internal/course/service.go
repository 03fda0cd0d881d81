// AngelaMos | 2026
// service.go

package course

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/coursekit/internal/core"
)

type Store interface {
	Create(ctx context.Context, c *Course) error
	GetByID(ctx context.Context, id string) (*Course, error)
	Update(ctx context.Context, c *Course) error
	SetPublished(ctx context.Context, id string, published bool) error
	ListPublished(ctx context.Context, page, pageSize int) ([]Course, int, error)
	ListAll(ctx context.Context, page, pageSize int) ([]Course, int, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]Course, error)
	DeleteGuarded(ctx context.Context, id, instructorID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// Sweeper purges the references a deleted course leaves behind in other
// tables. The admin path sweeps before the course row goes; the guarded
// instructor path sweeps after, once the delete is known to have happened.
type Sweeper interface {
	Sweep(ctx context.Context, courseID string) error
}

type PurchaseChecker interface {
	ExistsByCourse(ctx context.Context, courseID string) (bool, error)
}

// Actor is the resolved caller of a lifecycle operation: its identity plus
// whether it classified as the admin.
type Actor struct {
	ID    string
	Admin bool
}

type Service struct {
	store     Store
	sweeper   Sweeper
	purchases PurchaseChecker
	logger    *slog.Logger
}

func NewService(
	store Store,
	sweeper Sweeper,
	purchases PurchaseChecker,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:     store,
		sweeper:   sweeper,
		purchases: purchases,
		logger:    logger,
	}
}

// Create validates field by field and reports the first failure. New courses
// always start unpublished and belong to the caller; neither is an input.
func (s *Service) Create(
	ctx context.Context,
	actor Actor,
	req CreateCourseRequest,
) (*CourseResponse, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	discount := 0.0
	if req.Discount.Present() {
		discount = req.Discount.Float64()
	}

	sections := req.Sections
	if sections == nil {
		sections = Sections{}
	}

	c := &Course{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Thumbnail:    strings.TrimSpace(req.Thumbnail),
		Price:        req.Price.Float64(),
		Discount:     discount,
		Sections:     sections,
		InstructorID: actor.ID,
		IsPublished:  false,
	}

	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("course created",
		"course_id", c.ID,
		"instructor_id", actor.ID,
	)

	resp := ToCourseResponse(c)
	return &resp, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor Actor,
	id string,
	req UpdateCourseRequest,
) (*CourseResponse, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.InstructorID != actor.ID && !actor.Admin {
		return nil, core.ForbiddenError("you do not own this course")
	}

	if err := applyUpdate(c, req); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCourseResponse(c)
	return &resp, nil
}

// TogglePublish flips catalog visibility. Publication is an admin decision,
// not an instructor one; the route gate enforces that.
func (s *Service) TogglePublish(
	ctx context.Context,
	id string,
) (*PublishResponse, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := !c.IsPublished
	if err := s.store.SetPublished(ctx, id, next); err != nil {
		return nil, err
	}

	s.logger.Info("course publish toggled",
		"course_id", id,
		"is_published", next,
	)

	return &PublishResponse{ID: id, IsPublished: next}, nil
}

// DeleteByInstructor removes an owned course only while nothing depends on
// it. The preconditions are read first for precise error messages, then
// re-checked atomically inside the delete statement.
func (s *Service) DeleteByInstructor(
	ctx context.Context,
	actor Actor,
	id string,
) error {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if c.InstructorID != actor.ID {
		return core.ForbiddenError("you do not own this course")
	}

	if len(c.EnrolledStudents) > 0 {
		return core.DeletionBlockedError(
			"course has enrolled students and cannot be deleted",
		)
	}

	hasPurchases, err := s.purchases.ExistsByCourse(ctx, id)
	if err != nil {
		return err
	}
	if hasPurchases {
		return core.DeletionBlockedError(
			"course has purchase history and cannot be deleted",
		)
	}

	deleted, err := s.store.DeleteGuarded(ctx, id, actor.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return core.DeletionBlockedError(
			"course gained enrollments during deletion",
		)
	}

	// Sweep only once the delete is committed. A refused delete must leave
	// the enrollment lists exactly as they were; the guards already proved
	// there is nothing to unwind, so the sweep here clears stragglers only.
	if err := s.sweeper.Sweep(ctx, id); err != nil {
		return err
	}

	s.logger.Info("course deleted by instructor",
		"course_id", id,
		"instructor_id", actor.ID,
	)

	return nil
}

// DeleteByAdmin removes a course unconditionally. References are swept
// first and the course row goes last, so an interrupted run leaves a
// course with dangling references rather than references with no course.
// Purchase records always survive.
func (s *Service) DeleteByAdmin(ctx context.Context, id string) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.sweeper.Sweep(ctx, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("course deleted by admin", "course_id", id)
	return nil
}

// Get serves the public catalog route: a course is visible only once it is
// published, and drafts read as missing. Owners fetch their drafts through
// GetMine on the authenticated instructor route.
func (s *Service) Get(
	ctx context.Context,
	actor Actor,
	id string,
) (*CourseResponse, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !c.IsPublished && c.InstructorID != actor.ID && !actor.Admin {
		return nil, core.NotFoundError("course")
	}

	resp := ToCourseResponse(c)
	return &resp, nil
}

// GetMine returns a single owned course, drafts included. A course owned
// by someone else reads as missing rather than forbidden, so the route
// does not confirm which IDs exist.
func (s *Service) GetMine(
	ctx context.Context,
	actor Actor,
	id string,
) (*CourseResponse, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.InstructorID != actor.ID && !actor.Admin {
		return nil, core.NotFoundError("course")
	}

	resp := ToCourseResponse(c)
	return &resp, nil
}

func (s *Service) ListPublished(
	ctx context.Context,
	page, pageSize int,
) ([]CourseResponse, int, error) {
	courses, total, err := s.store.ListPublished(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(courses), total, nil
}

func (s *Service) ListAll(
	ctx context.Context,
	page, pageSize int,
) ([]CourseResponse, int, error) {
	courses, total, err := s.store.ListAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(courses), total, nil
}

func (s *Service) ListMine(
	ctx context.Context,
	actor Actor,
) ([]CourseResponse, error) {
	courses, err := s.store.ListByInstructor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return toResponses(courses), nil
}

func toResponses(courses []Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, ToCourseResponse(&courses[i]))
	}
	return out
}

func validateCreate(req CreateCourseRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return core.ValidationError("title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return core.ValidationError("description is required")
	}
	if strings.TrimSpace(req.Thumbnail) == "" {
		return core.ValidationError("thumbnail is required")
	}

	if !req.Price.Present() {
		return core.ValidationError("price is required")
	}
	if !req.Price.Valid() {
		return core.ValidationError("price must be a number")
	}
	if req.Price.Float64() < 0 {
		return core.ValidationError("price must be at least 0")
	}

	if req.Discount.Present() {
		if !req.Discount.Valid() {
			return core.ValidationError("discount must be a number")
		}
		d := req.Discount.Float64()
		if d < 0 || d > 100 {
			return core.ValidationError("discount must be between 0 and 100")
		}
	}

	return nil
}

func applyUpdate(c *Course, req UpdateCourseRequest) error {
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return core.ValidationError("title cannot be empty")
		}
		c.Title = strings.TrimSpace(*req.Title)
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return core.ValidationError("description cannot be empty")
		}
		c.Description = strings.TrimSpace(*req.Description)
	}

	if req.Thumbnail != nil {
		if strings.TrimSpace(*req.Thumbnail) == "" {
			return core.ValidationError("thumbnail cannot be empty")
		}
		c.Thumbnail = strings.TrimSpace(*req.Thumbnail)
	}

	if req.Price.Present() {
		if !req.Price.Valid() {
			return core.ValidationError("price must be a number")
		}
		if req.Price.Float64() < 0 {
			return core.ValidationError("price must be at least 0")
		}
		c.Price = req.Price.Float64()
	}

	if req.Discount.Present() {
		if !req.Discount.Valid() {
			return core.ValidationError("discount must be a number")
		}
		d := req.Discount.Float64()
		if d < 0 || d > 100 {
			return core.ValidationError("discount must be between 0 and 100")
		}
		c.Discount = d
	}

	// nil means the field was absent; an explicit empty array clears the
	// outline, which is legal for a draft.
	if req.Sections != nil {
		c.Sections = req.Sections
	}

	return nil
}
