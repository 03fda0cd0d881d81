// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"log/slog"

	"github.com/carterperez-dev/coursekit/internal/course"
	"github.com/carterperez-dev/coursekit/internal/identity"
	"github.com/carterperez-dev/coursekit/internal/purchase"
)

type UserCounter interface {
	CountByRole(ctx context.Context, role string) (int, error)
}

type CourseCounter interface {
	CountAll(ctx context.Context) (int, error)
	CountPublished(ctx context.Context) (int, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]course.Course, error)
}

type PurchaseStats interface {
	StatusCounts(ctx context.Context) ([]purchase.StatusCount, error)
	CompletedRevenue(ctx context.Context) (float64, error)
	InstructorEarnings(ctx context.Context, instructorID string) (float64, error)
}

// Service assembles read-only rollups. Each metric is computed
// independently: one failing source marks its metric as failed and the rest
// of the dashboard still renders, rather than one bad query blanking
// everything.
type Service struct {
	users     UserCounter
	courses   CourseCounter
	purchases PurchaseStats
	logger    *slog.Logger
}

func NewService(
	users UserCounter,
	courses CourseCounter,
	purchases PurchaseStats,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:     users,
		courses:   courses,
		purchases: purchases,
		logger:    logger,
	}
}

func (s *Service) AdminDashboard(ctx context.Context) *AdminDashboard {
	d := &AdminDashboard{FailedMetrics: []string{}}

	d.TotalStudents = s.intMetric(ctx, d, "totalStudents", func() (int, error) {
		return s.users.CountByRole(ctx, identity.RoleStudent)
	})
	d.TotalInstructors = s.intMetric(ctx, d, "totalInstructors", func() (int, error) {
		return s.users.CountByRole(ctx, identity.RoleInstructor)
	})
	d.TotalCourses = s.intMetric(ctx, d, "totalCourses", func() (int, error) {
		return s.courses.CountAll(ctx)
	})
	d.PublishedCourses = s.intMetric(ctx, d, "publishedCourses", func() (int, error) {
		return s.courses.CountPublished(ctx)
	})

	if d.TotalCourses != nil && d.PublishedCourses != nil {
		drafts := *d.TotalCourses - *d.PublishedCourses
		d.DraftCourses = &drafts
	} else {
		d.fail("draftCourses")
	}

	if counts, err := s.purchases.StatusCounts(ctx); err != nil {
		s.logMetricFailure("purchaseCounts", err)
		d.fail("purchaseCounts")
	} else {
		d.PurchaseCounts = counts
	}

	if revenue, err := s.purchases.CompletedRevenue(ctx); err != nil {
		s.logMetricFailure("completedRevenue", err)
		d.fail("completedRevenue")
	} else {
		d.CompletedRevenue = &revenue
	}

	return d
}

func (s *Service) InstructorDashboard(
	ctx context.Context,
	instructorID string,
) *InstructorDashboard {
	d := &InstructorDashboard{FailedMetrics: []string{}}

	if earnings, err := s.purchases.InstructorEarnings(ctx, instructorID); err != nil {
		s.logMetricFailure("earnings", err)
		d.FailedMetrics = append(d.FailedMetrics, "earnings")
	} else {
		d.Earnings = &earnings
	}

	courses, err := s.courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		s.logMetricFailure("courses", err)
		d.FailedMetrics = append(d.FailedMetrics, "courseCount", "enrolledStudents")
		return d
	}

	count := len(courses)
	d.CourseCount = &count

	students := 0
	for i := range courses {
		students += len(courses[i].EnrolledStudents)
	}
	d.EnrolledStudents = &students

	return d
}

func (s *Service) intMetric(
	ctx context.Context,
	d *AdminDashboard,
	name string,
	fn func() (int, error),
) *int {
	v, err := fn()
	if err != nil {
		s.logMetricFailure(name, err)
		d.fail(name)
		return nil
	}

	return &v
}

func (s *Service) logMetricFailure(name string, err error) {
	s.logger.Error("dashboard metric failed",
		"metric", name,
		"error", err,
	)
}
