// AngelaMos | 2026
// service_test.go

package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/coursekit/internal/course"
	"github.com/carterperez-dev/coursekit/internal/purchase"
)

type fakeUsers struct {
	byRole map[string]int
	err    error
}

func (f *fakeUsers) CountByRole(ctx context.Context, role string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.byRole[role], nil
}

type fakeCourses struct {
	total        int
	published    int
	byInstructor map[string][]course.Course
	err          error
}

func (f *fakeCourses) CountAll(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}

func (f *fakeCourses) CountPublished(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.published, nil
}

func (f *fakeCourses) ListByInstructor(ctx context.Context, instructorID string) ([]course.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byInstructor[instructorID], nil
}

type fakePurchaseStats struct {
	counts   []purchase.StatusCount
	revenue  float64
	earnings map[string]float64
	err      error
}

func (f *fakePurchaseStats) StatusCounts(ctx context.Context) ([]purchase.StatusCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

func (f *fakePurchaseStats) CompletedRevenue(ctx context.Context) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.revenue, nil
}

func (f *fakePurchaseStats) InstructorEarnings(ctx context.Context, instructorID string) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.earnings[instructorID], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdminDashboardAllMetrics(t *testing.T) {
	svc := NewService(
		&fakeUsers{byRole: map[string]int{"student": 40, "instructor": 5}},
		&fakeCourses{total: 12, published: 9},
		&fakePurchaseStats{
			counts: []purchase.StatusCount{
				{Status: "completed", Count: 30},
				{Status: "pending", Count: 2},
			},
			revenue: 1499.50,
		},
		testLogger(),
	)

	d := svc.AdminDashboard(context.Background())

	require.NotNil(t, d.TotalStudents)
	assert.Equal(t, 40, *d.TotalStudents)
	require.NotNil(t, d.TotalInstructors)
	assert.Equal(t, 5, *d.TotalInstructors)
	require.NotNil(t, d.TotalCourses)
	assert.Equal(t, 12, *d.TotalCourses)
	require.NotNil(t, d.DraftCourses)
	assert.Equal(t, 3, *d.DraftCourses)
	require.NotNil(t, d.CompletedRevenue)
	assert.Equal(t, 1499.50, *d.CompletedRevenue)
	assert.Len(t, d.PurchaseCounts, 2)
	assert.Empty(t, d.FailedMetrics)
}

func TestAdminDashboardIsolatesFailures(t *testing.T) {
	svc := NewService(
		&fakeUsers{err: errors.New("users table gone")},
		&fakeCourses{total: 12, published: 9},
		&fakePurchaseStats{revenue: 100},
		testLogger(),
	)

	d := svc.AdminDashboard(context.Background())

	assert.Nil(t, d.TotalStudents)
	assert.Nil(t, d.TotalInstructors)
	assert.Contains(t, d.FailedMetrics, "totalStudents")
	assert.Contains(t, d.FailedMetrics, "totalInstructors")

	// the healthy sources still render
	require.NotNil(t, d.TotalCourses)
	assert.Equal(t, 12, *d.TotalCourses)
	require.NotNil(t, d.CompletedRevenue)
	assert.Equal(t, 100.0, *d.CompletedRevenue)
}

func TestAdminDashboardDraftsRequireBothCounts(t *testing.T) {
	svc := NewService(
		&fakeUsers{byRole: map[string]int{}},
		&fakeCourses{err: errors.New("courses gone")},
		&fakePurchaseStats{},
		testLogger(),
	)

	d := svc.AdminDashboard(context.Background())

	assert.Nil(t, d.DraftCourses)
	assert.Contains(t, d.FailedMetrics, "draftCourses")
}

func TestInstructorDashboard(t *testing.T) {
	svc := NewService(
		&fakeUsers{},
		&fakeCourses{byInstructor: map[string][]course.Course{
			"usr_inst": {
				{ID: "c1", EnrolledStudents: []string{"a", "b"}},
				{ID: "c2", EnrolledStudents: []string{"c"}},
			},
		}},
		&fakePurchaseStats{earnings: map[string]float64{"usr_inst": 250}},
		testLogger(),
	)

	d := svc.InstructorDashboard(context.Background(), "usr_inst")

	require.NotNil(t, d.Earnings)
	assert.Equal(t, 250.0, *d.Earnings)
	require.NotNil(t, d.CourseCount)
	assert.Equal(t, 2, *d.CourseCount)
	require.NotNil(t, d.EnrolledStudents)
	assert.Equal(t, 3, *d.EnrolledStudents)
	assert.Empty(t, d.FailedMetrics)
}

func TestInstructorDashboardCourseFailure(t *testing.T) {
	svc := NewService(
		&fakeUsers{},
		&fakeCourses{err: errors.New("courses gone")},
		&fakePurchaseStats{earnings: map[string]float64{"usr_inst": 250}},
		testLogger(),
	)

	d := svc.InstructorDashboard(context.Background(), "usr_inst")

	require.NotNil(t, d.Earnings)
	assert.Nil(t, d.CourseCount)
	assert.Contains(t, d.FailedMetrics, "courseCount")
	assert.Contains(t, d.FailedMetrics, "enrolledStudents")
}
