// AngelaMos | 2026
// repository.go

package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/carterperez-dev/coursekit/internal/core"
)

type Repository struct {
	db *core.Database
}

func NewRepository(db *core.Database) *Repository {
	return &Repository{db: db}
}

const courseColumns = `
	id, title, description, thumbnail, price, discount, sections,
	instructor_id, is_published, enrolled_students, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, c *Course) error {
	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO courses (
			id, title, description, thumbnail, price, discount, sections,
			instructor_id, is_published, enrolled_students
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, '{}')`,
		c.ID, c.Title, c.Description, c.Thumbnail, c.Price, c.Discount,
		c.Sections, c.InstructorID, c.IsPublished,
	)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Course, error) {
	var c Course
	err := r.db.DB.GetContext(ctx, &c,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NotFoundError("course")
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &c, nil
}

func (r *Repository) Update(ctx context.Context, c *Course) error {
	result, err := r.db.DB.ExecContext(ctx, `
		UPDATE courses
		SET title = $1, description = $2, thumbnail = $3,
		    price = $4, discount = $5, sections = $6, updated_at = NOW()
		WHERE id = $7`,
		c.Title, c.Description, c.Thumbnail, c.Price, c.Discount,
		c.Sections, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update course rows: %w", err)
	}
	if rows == 0 {
		return core.NotFoundError("course")
	}

	return nil
}

// SetPublished flips visibility and reports the new state.
func (r *Repository) SetPublished(
	ctx context.Context,
	id string,
	published bool,
) error {
	result, err := r.db.DB.ExecContext(ctx, `
		UPDATE courses
		SET is_published = $1, updated_at = NOW()
		WHERE id = $2`,
		published, id,
	)
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set published rows: %w", err)
	}
	if rows == 0 {
		return core.NotFoundError("course")
	}

	return nil
}

func (r *Repository) ListPublished(
	ctx context.Context,
	page, pageSize int,
) ([]Course, int, error) {
	var total int
	if err := r.db.DB.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM courses WHERE is_published = TRUE`,
	); err != nil {
		return nil, 0, fmt.Errorf("count published courses: %w", err)
	}

	offset := (page - 1) * pageSize

	courses := []Course{}
	err := r.db.DB.SelectContext(ctx, &courses,
		`SELECT `+courseColumns+`
		FROM courses
		WHERE is_published = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		pageSize, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list published courses: %w", err)
	}

	return courses, total, nil
}

func (r *Repository) ListAll(
	ctx context.Context,
	page, pageSize int,
) ([]Course, int, error) {
	var total int
	if err := r.db.DB.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM courses`,
	); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	offset := (page - 1) * pageSize

	courses := []Course{}
	err := r.db.DB.SelectContext(ctx, &courses,
		`SELECT `+courseColumns+`
		FROM courses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		pageSize, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	return courses, total, nil
}

func (r *Repository) ListByInstructor(
	ctx context.Context,
	instructorID string,
) ([]Course, error) {
	courses := []Course{}
	err := r.db.DB.SelectContext(ctx, &courses,
		`SELECT `+courseColumns+`
		FROM courses
		WHERE instructor_id = $1
		ORDER BY created_at DESC`,
		instructorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list instructor courses: %w", err)
	}

	return courses, nil
}

func (r *Repository) ListByIDs(
	ctx context.Context,
	ids []string,
) ([]Course, error) {
	if len(ids) == 0 {
		return []Course{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+courseColumns+` FROM courses WHERE id IN (?)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("build courses query: %w", err)
	}

	courses := []Course{}
	err = r.db.DB.SelectContext(ctx, &courses, r.db.DB.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list courses by ids: %w", err)
	}

	return courses, nil
}

// DeleteGuarded removes the course only when the guards still hold at delete
// time: owned by instructorID, no enrolled students, no purchase history.
// Re-checking inside the statement closes the window between the service's
// precondition reads and the delete itself.
func (r *Repository) DeleteGuarded(
	ctx context.Context,
	id, instructorID string,
) (bool, error) {
	result, err := r.db.DB.ExecContext(ctx, `
		DELETE FROM courses
		WHERE id = $1
		  AND instructor_id = $2
		  AND cardinality(enrolled_students) = 0
		  AND NOT EXISTS (
			SELECT 1 FROM purchases WHERE purchases.course_id = courses.id
		  )`,
		id, instructorID,
	)
	if err != nil {
		return false, fmt.Errorf("guarded delete course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("guarded delete rows: %w", err)
	}

	return rows > 0, nil
}

// Delete is the unconditional removal used by the admin path. Purchase rows
// referencing the course are deliberately not touched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM courses WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course rows: %w", err)
	}
	if rows == 0 {
		return core.NotFoundError("course")
	}

	return nil
}

// AppendStudent adds userID to the course's roster inside the caller's
// transaction, skipping the append when already present.
func (r *Repository) AppendStudent(
	ctx context.Context,
	tx core.DBTX,
	courseID, userID string,
) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE courses
		SET enrolled_students = array_append(enrolled_students, $1),
		    updated_at = NOW()
		WHERE id = $2 AND NOT ($1 = ANY(enrolled_students))`,
		userID, courseID,
	)
	if err != nil {
		return fmt.Errorf("append student: %w", err)
	}

	return nil
}

func (r *Repository) EnrolledStudentIDs(
	ctx context.Context,
	courseID string,
) ([]string, error) {
	var students pq.StringArray
	err := r.db.DB.GetContext(ctx, &students,
		`SELECT enrolled_students FROM courses WHERE id = $1`,
		courseID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NotFoundError("course")
		}
		return nil, fmt.Errorf("get enrolled students: %w", err)
	}

	return []string(students), nil
}

func (r *Repository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.DB.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM courses`,
	); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}

	return count, nil
}

func (r *Repository) CountPublished(ctx context.Context) (int, error) {
	var count int
	if err := r.db.DB.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM courses WHERE is_published = TRUE`,
	); err != nil {
		return 0, fmt.Errorf("count published courses: %w", err)
	}

	return count, nil
}
