// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/carterperez-dev/coursekit/internal/core"
)

const pgUniqueViolation = "23505"

type Repository struct {
	db *core.Database
}

func NewRepository(db *core.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.DB.GetContext(ctx, &u, `
		SELECT id, name, email, image_url, role, enrolled_courses,
		       created_at, updated_at
		FROM users
		WHERE id = $1`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NotFoundError("user")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}

// GetRole reads the mirrored role column. Display and query use only; the
// provider's claim is the authorization source of truth.
func (r *Repository) GetRole(ctx context.Context, externalID string) (string, error) {
	var role string
	err := r.db.DB.GetContext(ctx, &role,
		`SELECT role FROM users WHERE id = $1`,
		externalID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", core.NotFoundError("user")
		}
		return "", fmt.Errorf("get role: %w", err)
	}

	return role, nil
}

func (r *Repository) UpdateRole(ctx context.Context, externalID, role string) error {
	result, err := r.db.DB.ExecContext(ctx, `
		UPDATE users
		SET role = $1, updated_at = NOW()
		WHERE id = $2`,
		role, externalID,
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update role rows: %w", err)
	}
	if rows == 0 {
		return core.NotFoundError("user")
	}

	return nil
}

// UpsertMirror creates or refreshes the local account row from a provider
// webhook. The provider is authoritative for name, email, and avatar; role
// and enrollments are owned locally and left untouched on conflict.
func (r *Repository) UpsertMirror(
	ctx context.Context,
	externalID, name, email, imageURL string,
) error {
	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, email, image_url, role, enrolled_courses)
		VALUES ($1, $2, $3, $4, 'student', '{}')
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			image_url = EXCLUDED.image_url,
			updated_at = NOW()`,
		externalID, name, email, imageURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.DuplicateError("email")
		}
		return fmt.Errorf("upsert user mirror: %w", err)
	}

	return nil
}

func (r *Repository) DeleteMirror(ctx context.Context, externalID string) error {
	result, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1`,
		externalID,
	)
	if err != nil {
		return fmt.Errorf("delete user mirror: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user mirror rows: %w", err)
	}
	if rows == 0 {
		return core.NotFoundError("user")
	}

	return nil
}

func (r *Repository) List(
	ctx context.Context,
	page, pageSize int,
) ([]User, int, error) {
	var total int
	if err := r.db.DB.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM users`,
	); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	offset := (page - 1) * pageSize

	users := []User{}
	err := r.db.DB.SelectContext(ctx, &users, `
		SELECT id, name, email, image_url, role, enrolled_courses,
		       created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		pageSize, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *Repository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.db.DB.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM users WHERE role = $1`,
		role,
	)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}

	return count, nil
}

// AppendEnrollment adds courseID to the user's enrollment list inside the
// caller's transaction. The duplicate check is in the predicate so a replayed
// enrollment does not double-append.
func (r *Repository) AppendEnrollment(
	ctx context.Context,
	tx core.DBTX,
	userID, courseID string,
) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE users
		SET enrolled_courses = array_append(enrolled_courses, $1),
		    updated_at = NOW()
		WHERE id = $2 AND NOT ($1 = ANY(enrolled_courses))`,
		courseID, userID,
	)
	if err != nil {
		return fmt.Errorf("append enrollment: %w", err)
	}

	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("append enrollment rows: %w", err)
	}

	return nil
}

// RemoveCourseFromAll strips courseID from every user's enrollment list.
// Users never enrolled in the course match zero rows, which keeps the
// operation idempotent.
func (r *Repository) RemoveCourseFromAll(ctx context.Context, courseID string) (int64, error) {
	result, err := r.db.DB.ExecContext(ctx, `
		UPDATE users
		SET enrolled_courses = array_remove(enrolled_courses, $1),
		    updated_at = NOW()
		WHERE $1 = ANY(enrolled_courses)`,
		courseID,
	)
	if err != nil {
		return 0, fmt.Errorf("remove course from enrollments: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("remove course rows: %w", err)
	}

	return rows, nil
}

func (r *Repository) IsEnrolled(
	ctx context.Context,
	userID, courseID string,
) (bool, error) {
	var enrolled bool
	err := r.db.DB.GetContext(ctx, &enrolled, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE id = $1 AND $2 = ANY(enrolled_courses)
		)`,
		userID, courseID,
	)
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}

	return enrolled, nil
}

func (r *Repository) EnrolledCourseIDs(
	ctx context.Context,
	userID string,
) ([]string, error) {
	var courses pq.StringArray
	err := r.db.DB.GetContext(ctx, &courses,
		`SELECT enrolled_courses FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NotFoundError("user")
		}
		return nil, fmt.Errorf("get enrolled courses: %w", err)
	}

	return []string(courses), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
