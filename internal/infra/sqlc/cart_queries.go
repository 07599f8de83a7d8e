package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getCourse = `-- name: GetCourse :one
SELECT id, title, price_minor, is_published, created_at, updated_at
FROM courses
WHERE id = $1
`

func (q *Queries) GetCourse(ctx context.Context, db DBTX, id uuid.UUID) (Courses, error) {
	row := db.QueryRow(ctx, getCourse, id)
	var i Courses
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.PriceMinor,
		&i.IsPublished,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createCourse = `-- name: CreateCourse :exec
INSERT INTO courses (id, title, price_minor, is_published)
VALUES ($1, $2, $3, $4)
`

type CreateCourseParams struct {
	ID          uuid.UUID
	Title       string
	PriceMinor  int64
	IsPublished bool
}

func (q *Queries) CreateCourse(ctx context.Context, db DBTX, arg CreateCourseParams) error {
	_, err := db.Exec(ctx, createCourse, arg.ID, arg.Title, arg.PriceMinor, arg.IsPublished)
	return err
}

const listCartItemsByUser = `-- name: ListCartItemsByUser :many
SELECT id, user_id, course_id, course_name, course_price_minor, created_at
FROM cart_items
WHERE user_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListCartItemsByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]CartItems, error) {
	rows, err := db.Query(ctx, listCartItemsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CartItems{}
	for rows.Next() {
		var i CartItems
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.CourseID,
			&i.CourseName,
			&i.CoursePriceMinor,
			&i.CreatedAt,
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

const createCartItem = `-- name: CreateCartItem :one
INSERT INTO cart_items (id, user_id, course_id, course_name, course_price_minor, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, user_id, course_id, course_name, course_price_minor, created_at
`

type CreateCartItemParams struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CourseID         uuid.UUID
	CourseName       string
	CoursePriceMinor int64
	CreatedAt        pgtype.Timestamptz
}

func (q *Queries) CreateCartItem(ctx context.Context, db DBTX, arg CreateCartItemParams) (CartItems, error) {
	row := db.QueryRow(ctx, createCartItem,
		arg.ID,
		arg.UserID,
		arg.CourseID,
		arg.CourseName,
		arg.CoursePriceMinor,
		arg.CreatedAt,
	)
	var i CartItems
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.CourseID,
		&i.CourseName,
		&i.CoursePriceMinor,
		&i.CreatedAt,
	)
	return i, err
}

const deleteCartItem = `-- name: DeleteCartItem :execrows
DELETE FROM cart_items
WHERE id = $1 AND user_id = $2
`

type DeleteCartItemParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) DeleteCartItem(ctx context.Context, db DBTX, arg DeleteCartItemParams) (int64, error) {
	result, err := db.Exec(ctx, deleteCartItem, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteCartItemsByCourses = `-- name: DeleteCartItemsByCourses :execrows
DELETE FROM cart_items
WHERE user_id = $1 AND course_id = ANY($2::uuid[])
`

type DeleteCartItemsByCoursesParams struct {
	UserID    uuid.UUID
	CourseIds []uuid.UUID
}

func (q *Queries) DeleteCartItemsByCourses(ctx context.Context, db DBTX, arg DeleteCartItemsByCoursesParams) (int64, error) {
	result, err := db.Exec(ctx, deleteCartItemsByCourses, arg.UserID, arg.CourseIds)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getDiscountCode = `-- name: GetDiscountCode :one
SELECT code, discount_percent, discount_amount_minor, is_active
FROM discount_codes
WHERE code = $1
`

func (q *Queries) GetDiscountCode(ctx context.Context, db DBTX, code string) (DiscountCodes, error) {
	row := db.QueryRow(ctx, getDiscountCode, code)
	var i DiscountCodes
	err := row.Scan(
		&i.Code,
		&i.DiscountPercent,
		&i.DiscountAmountMinor,
		&i.IsActive,
	)
	return i, err
}

const createDiscountCode = `-- name: CreateDiscountCode :exec
INSERT INTO discount_codes (code, discount_percent, discount_amount_minor, is_active)
VALUES ($1, $2, $3, $4)
`

type CreateDiscountCodeParams struct {
	Code                string
	DiscountPercent     pgtype.Numeric
	DiscountAmountMinor pgtype.Int8
	IsActive            bool
}

func (q *Queries) CreateDiscountCode(ctx context.Context, db DBTX, arg CreateDiscountCodeParams) error {
	_, err := db.Exec(ctx, createDiscountCode,
		arg.Code,
		arg.DiscountPercent,
		arg.DiscountAmountMinor,
		arg.IsActive,
	)
	return err
}
