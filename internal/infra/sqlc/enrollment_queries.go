package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func scanEnrollment(row rowScanner) (Enrollments, error) {
	var i Enrollments
	err := row.Scan(
		&i.StudentID,
		&i.CourseID,
		&i.IsActive,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

type GetEnrollmentParams struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
}

const getEnrollment = `-- name: GetEnrollment :one
SELECT student_id, course_id, is_active, expires_at, created_at, updated_at
FROM enrollments
WHERE student_id = $1 AND course_id = $2
`

func (q *Queries) GetEnrollment(ctx context.Context, db DBTX, arg GetEnrollmentParams) (Enrollments, error) {
	return scanEnrollment(db.QueryRow(ctx, getEnrollment, arg.StudentID, arg.CourseID))
}

const getEnrollmentForUpdate = `-- name: GetEnrollmentForUpdate :one
SELECT student_id, course_id, is_active, expires_at, created_at, updated_at
FROM enrollments
WHERE student_id = $1 AND course_id = $2
FOR UPDATE
`

func (q *Queries) GetEnrollmentForUpdate(ctx context.Context, db DBTX, arg GetEnrollmentParams) (Enrollments, error) {
	return scanEnrollment(db.QueryRow(ctx, getEnrollmentForUpdate, arg.StudentID, arg.CourseID))
}

// GREATEST keeps expires_at monotonic even if two grants race past the row lock.
const upsertEnrollment = `-- name: UpsertEnrollment :one
INSERT INTO enrollments (student_id, course_id, is_active, expires_at, created_at, updated_at)
VALUES ($1, $2, TRUE, $3, $4, $4)
ON CONFLICT (student_id, course_id) DO UPDATE
SET is_active  = TRUE,
    expires_at = GREATEST(enrollments.expires_at, EXCLUDED.expires_at),
    updated_at = EXCLUDED.updated_at
RETURNING student_id, course_id, is_active, expires_at, created_at, updated_at
`

type UpsertEnrollmentParams struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
	ExpiresAt pgtype.Timestamptz
	Now       pgtype.Timestamptz
}

func (q *Queries) UpsertEnrollment(ctx context.Context, db DBTX, arg UpsertEnrollmentParams) (Enrollments, error) {
	return scanEnrollment(db.QueryRow(ctx, upsertEnrollment, arg.StudentID, arg.CourseID, arg.ExpiresAt, arg.Now))
}

const listEnrollmentsByStudent = `-- name: ListEnrollmentsByStudent :many
SELECT e.student_id, e.course_id, e.is_active, e.expires_at, e.created_at, e.updated_at, c.title
FROM enrollments e
JOIN courses c ON c.id = e.course_id
WHERE e.student_id = $1
ORDER BY e.expires_at DESC, e.course_id
`

type ListEnrollmentsByStudentRow struct {
	Enrollments
	CourseTitle string
}

func (q *Queries) ListEnrollmentsByStudent(ctx context.Context, db DBTX, studentID uuid.UUID) ([]ListEnrollmentsByStudentRow, error) {
	rows, err := db.Query(ctx, listEnrollmentsByStudent, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListEnrollmentsByStudentRow{}
	for rows.Next() {
		var i ListEnrollmentsByStudentRow
		if err := rows.Scan(
			&i.StudentID,
			&i.CourseID,
			&i.IsActive,
			&i.ExpiresAt,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.CourseTitle,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const seedOrderProvisioning = `-- name: SeedOrderProvisioning :exec
INSERT INTO order_provisioning (order_id, course_id, status, updated_at)
VALUES ($1, $2, 'pending', $3)
ON CONFLICT (order_id, course_id) DO NOTHING
`

type SeedOrderProvisioningParams struct {
	OrderID   uuid.UUID
	CourseID  uuid.UUID
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) SeedOrderProvisioning(ctx context.Context, db DBTX, arg SeedOrderProvisioningParams) error {
	_, err := db.Exec(ctx, seedOrderProvisioning, arg.OrderID, arg.CourseID, arg.UpdatedAt)
	return err
}

const listOrderProvisioning = `-- name: ListOrderProvisioning :many
SELECT p.order_id, p.course_id, p.status, p.attempts, p.expires_at, p.last_error, p.updated_at
FROM order_provisioning p
JOIN order_items oi ON oi.order_id = p.order_id AND oi.course_id = p.course_id
WHERE p.order_id = $1
ORDER BY oi.position
`

func (q *Queries) ListOrderProvisioning(ctx context.Context, db DBTX, orderID uuid.UUID) ([]OrderProvisioning, error) {
	rows, err := db.Query(ctx, listOrderProvisioning, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderProvisioning{}
	for rows.Next() {
		var i OrderProvisioning
		if err := rows.Scan(
			&i.OrderID,
			&i.CourseID,
			&i.Status,
			&i.Attempts,
			&i.ExpiresAt,
			&i.LastError,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateOrderProvisioning = `-- name: UpdateOrderProvisioning :exec
UPDATE order_provisioning
SET status     = $3,
    attempts   = attempts + 1,
    expires_at = $4,
    last_error = $5,
    updated_at = $6
WHERE order_id = $1 AND course_id = $2
`

type UpdateOrderProvisioningParams struct {
	OrderID   uuid.UUID
	CourseID  uuid.UUID
	Status    string
	ExpiresAt pgtype.Timestamptz
	LastError pgtype.Text
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateOrderProvisioning(ctx context.Context, db DBTX, arg UpdateOrderProvisioningParams) error {
	_, err := db.Exec(ctx, updateOrderProvisioning,
		arg.OrderID,
		arg.CourseID,
		arg.Status,
		arg.ExpiresAt,
		arg.LastError,
		arg.UpdatedAt,
	)
	return err
}
