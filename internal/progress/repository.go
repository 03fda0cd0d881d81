// AngelaMos | 2026
// repository.go

package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/coursekit/internal/core"
)

type Repository struct {
	db *core.Database
}

func NewRepository(db *core.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(
	ctx context.Context,
	userID, courseID string,
) (*Progress, error) {
	var p Progress
	err := r.db.DB.GetContext(ctx, &p, `
		SELECT user_id, course_id, completed_lectures, completed,
		       created_at, updated_at
		FROM course_progress
		WHERE user_id = $1 AND course_id = $2`,
		userID, courseID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NotFoundError("progress")
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return &p, nil
}

// MarkLecture records a lecture as completed, creating the progress row on
// first touch. Re-marking a lecture is a no-op, not an error.
func (r *Repository) MarkLecture(
	ctx context.Context,
	userID, courseID, lectureID string,
) (*Progress, error) {
	var p Progress
	err := r.db.DB.GetContext(ctx, &p, `
		INSERT INTO course_progress (user_id, course_id, completed_lectures)
		VALUES ($1, $2, ARRAY[$3])
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			completed_lectures = CASE
				WHEN $3 = ANY(course_progress.completed_lectures)
					THEN course_progress.completed_lectures
				ELSE array_append(course_progress.completed_lectures, $3)
			END,
			updated_at = NOW()
		RETURNING user_id, course_id, completed_lectures, completed,
		          created_at, updated_at`,
		userID, courseID, lectureID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark lecture: %w", err)
	}

	return &p, nil
}

func (r *Repository) SetCompleted(
	ctx context.Context,
	userID, courseID string,
	completed bool,
) error {
	result, err := r.db.DB.ExecContext(ctx, `
		UPDATE course_progress
		SET completed = $1, updated_at = NOW()
		WHERE user_id = $2 AND course_id = $3`,
		completed, userID, courseID,
	)
	if err != nil {
		return fmt.Errorf("set completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set completed rows: %w", err)
	}
	if rows == 0 {
		return core.NotFoundError("progress")
	}

	return nil
}

// DeleteByCourse backs the sweep. Zero rows deleted is a normal outcome.
func (r *Repository) DeleteByCourse(
	ctx context.Context,
	courseID string,
) (int64, error) {
	result, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM course_progress WHERE course_id = $1`,
		courseID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete progress by course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete progress rows: %w", err)
	}

	return rows, nil
}
