// AngelaMos | 2026
// sweeper_test.go

package sweep

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnrollments struct {
	// userID -> enrolled course ids
	enrolled map[string][]string
	err      error
}

func (f *fakeEnrollments) RemoveCourseFromAll(ctx context.Context, courseID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}

	var removed int64
	for userID, courses := range f.enrolled {
		kept := courses[:0]
		for _, id := range courses {
			if id == courseID {
				removed++
				continue
			}
			kept = append(kept, id)
		}
		f.enrolled[userID] = kept
	}

	return removed, nil
}

type fakeProgress struct {
	// (userID, courseID) rows
	rows map[[2]string]bool
	err  error
}

func (f *fakeProgress) DeleteByCourse(ctx context.Context, courseID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}

	var deleted int64
	for key := range f.rows {
		if key[1] == courseID {
			delete(f.rows, key)
			deleted++
		}
	}

	return deleted, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweepRemovesAllReferences(t *testing.T) {
	enrollments := &fakeEnrollments{enrolled: map[string][]string{
		"usr_a": {"c1", "c2"},
		"usr_b": {"c1"},
		"usr_c": {"c2"},
	}}
	progress := &fakeProgress{rows: map[[2]string]bool{
		{"usr_a", "c1"}: true,
		{"usr_b", "c1"}: true,
		{"usr_c", "c2"}: true,
	}}

	s := NewSweeper(enrollments, progress, testLogger())
	require.NoError(t, s.Sweep(context.Background(), "c1"))

	assert.Equal(t, []string{"c2"}, enrollments.enrolled["usr_a"])
	assert.Empty(t, enrollments.enrolled["usr_b"])
	assert.Equal(t, []string{"c2"}, enrollments.enrolled["usr_c"])

	assert.Len(t, progress.rows, 1)
	assert.True(t, progress.rows[[2]string{"usr_c", "c2"}])
}

func TestSweepIsIdempotent(t *testing.T) {
	enrollments := &fakeEnrollments{enrolled: map[string][]string{
		"usr_a": {"c1"},
	}}
	progress := &fakeProgress{rows: map[[2]string]bool{
		{"usr_a", "c1"}: true,
	}}

	s := NewSweeper(enrollments, progress, testLogger())
	require.NoError(t, s.Sweep(context.Background(), "c1"))
	require.NoError(t, s.Sweep(context.Background(), "c1"))

	assert.Empty(t, enrollments.enrolled["usr_a"])
	assert.Empty(t, progress.rows)
}

func TestSweepUnknownCourseIsNoop(t *testing.T) {
	enrollments := &fakeEnrollments{enrolled: map[string][]string{
		"usr_a": {"c1"},
	}}
	progress := &fakeProgress{rows: map[[2]string]bool{
		{"usr_a", "c1"}: true,
	}}

	s := NewSweeper(enrollments, progress, testLogger())
	require.NoError(t, s.Sweep(context.Background(), "ghost"))

	assert.Equal(t, []string{"c1"}, enrollments.enrolled["usr_a"])
	assert.Len(t, progress.rows, 1)
}

func TestSweepPropagatesEnrollmentFailure(t *testing.T) {
	enrollments := &fakeEnrollments{err: errors.New("db down")}
	progress := &fakeProgress{rows: map[[2]string]bool{}}

	s := NewSweeper(enrollments, progress, testLogger())
	err := s.Sweep(context.Background(), "c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep enrollments")
}

func TestSweepPropagatesProgressFailure(t *testing.T) {
	enrollments := &fakeEnrollments{enrolled: map[string][]string{}}
	progress := &fakeProgress{err: errors.New("db down")}

	s := NewSweeper(enrollments, progress, testLogger())
	err := s.Sweep(context.Background(), "c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sweep progress")
}
