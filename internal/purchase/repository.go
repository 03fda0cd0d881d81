// AngelaMos | 2026
// repository.go

package purchase

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/coursekit/internal/core"
)

type Repository struct {
	db *core.Database
}

func NewRepository(db *core.Database) *Repository {
	return &Repository{db: db}
}

// Create inserts a purchase row inside the caller's transaction. There is no
// corresponding update or delete method; the table is append-only.
func (r *Repository) Create(
	ctx context.Context,
	tx core.DBTX,
	p *Purchase,
) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO purchases (id, user_id, course_id, amount, status)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.UserID, p.CourseID, p.Amount, p.Status,
	)
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}

	return nil
}

// ExistsByCourse backs the deletion guard: any purchase row at all, whatever
// its status, blocks an instructor delete.
func (r *Repository) ExistsByCourse(
	ctx context.Context,
	courseID string,
) (bool, error) {
	var exists bool
	err := r.db.DB.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM purchases WHERE course_id = $1)`,
		courseID,
	)
	if err != nil {
		return false, fmt.Errorf("check purchases for course: %w", err)
	}

	return exists, nil
}

func (r *Repository) List(
	ctx context.Context,
	page, pageSize int,
) ([]Purchase, int, error) {
	var total int
	if err := r.db.DB.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM purchases`,
	); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}

	offset := (page - 1) * pageSize

	purchases := []Purchase{}
	err := r.db.DB.SelectContext(ctx, &purchases, `
		SELECT id, user_id, course_id, amount, status, created_at
		FROM purchases
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		pageSize, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}

	return purchases, total, nil
}

func (r *Repository) StatusCounts(ctx context.Context) ([]StatusCount, error) {
	counts := []StatusCount{}
	err := r.db.DB.SelectContext(ctx, &counts, `
		SELECT status, COUNT(*) AS count
		FROM purchases
		GROUP BY status
		ORDER BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("purchase status counts: %w", err)
	}

	return counts, nil
}

func (r *Repository) CompletedRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.DB.GetContext(ctx, &revenue, `
		SELECT COALESCE(SUM(amount), 0)
		FROM purchases
		WHERE status = $1`,
		StatusCompleted,
	)
	if err != nil {
		return 0, fmt.Errorf("completed revenue: %w", err)
	}

	return revenue, nil
}

// EnrolledStudentsByInstructor lists every completed purchase of the
// instructor's surviving courses, newest first, with the buyer's profile
// joined in. Buyers whose mirror row is gone drop out of the view; the
// purchase rows themselves remain.
func (r *Repository) EnrolledStudentsByInstructor(
	ctx context.Context,
	instructorID string,
) ([]EnrolledStudent, error) {
	students := []EnrolledStudent{}
	err := r.db.DB.SelectContext(ctx, &students, `
		SELECT
			u.name      AS student_name,
			u.image_url AS student_image,
			c.title     AS course_title,
			p.created_at AS purchased_at
		FROM purchases p
		JOIN courses c ON c.id = p.course_id
		JOIN users u ON u.id = p.user_id
		WHERE c.instructor_id = $1 AND p.status = $2
		ORDER BY p.created_at DESC`,
		instructorID, StatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("enrolled students for instructor: %w", err)
	}

	return students, nil
}

// InstructorEarnings sums completed purchases against the instructor's
// surviving courses. Purchases whose course has been deleted keep the
// platform revenue but no longer attribute to anyone.
func (r *Repository) InstructorEarnings(
	ctx context.Context,
	instructorID string,
) (float64, error) {
	var earnings float64
	err := r.db.DB.GetContext(ctx, &earnings, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM purchases p
		JOIN courses c ON c.id = p.course_id
		WHERE c.instructor_id = $1 AND p.status = $2`,
		instructorID, StatusCompleted,
	)
	if err != nil {
		return 0, fmt.Errorf("instructor earnings: %w", err)
	}

	return earnings, nil
}
