//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"learnhub-checkout/internal/domain/cart"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriteQueries struct {
	mock.Mock
}

func (m *MockWriteQueries) CreateCartItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCartItemParams) (sqlc.CartItems, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.CartItems), args.Error(1)
}

func (m *MockWriteQueries) DeleteCartItem(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteCartItemParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) DeleteCartItemsByCourses(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteCartItemsByCoursesParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) GetEnrollmentForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.GetEnrollmentParams) (sqlc.Enrollments, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.Enrollments), args.Error(1)
}

func (m *MockWriteQueries) UpsertEnrollment(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertEnrollmentParams) (sqlc.Enrollments, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.Enrollments), args.Error(1)
}

func (m *MockWriteQueries) TryInsertIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertIdempotencyKeyParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) UpdateIdempotencyKeyCompleted(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateIdempotencyKeyCompletedParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockWriteQueries) DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlc.DBTX) (int64, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) InsertPaymentEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertPaymentEventParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) SeedOrderProvisioning(ctx context.Context, db sqlc.DBTX, arg sqlc.SeedOrderProvisioningParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockWriteQueries) ListOrderProvisioning(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.OrderProvisioning, error) {
	args := m.Called(ctx, db, orderID)
	return args.Get(0).([]sqlc.OrderProvisioning), args.Error(1)
}

func (m *MockWriteQueries) UpdateOrderProvisioning(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderProvisioningParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

// sqlc.DBTX implementation so the mock can stand in for the transaction
func (m *MockWriteQueries) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockWriteQueries) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockWriteQueries) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

func TestCartRepository_Add(t *testing.T) {
	item, err := cart.NewItem(uuid.New(), uuid.New(), "Go in Practice", 2000, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name     string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{
			name:     "duplicate course in cart",
			mockErr:  &pgconn.PgError{Code: "23505"},
			wantKind: infra.KindDuplicateKey,
		},
		{
			name:     "unknown course",
			mockErr:  &pgconn.PgError{Code: "23503"},
			wantKind: infra.KindForeignKeyViolated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockWriteQueries)
			q.On("CreateCartItem", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateCartItemParams) bool {
				return p.CourseID == item.CourseID() && p.CoursePriceMinor == 2000
			})).Return(sqlc.CartItems{}, tt.mockErr)

			err := NewCartRepository(q, q).Add(context.Background(), q, item)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			q.AssertExpectations(t)
		})
	}
}

func TestCartRepository_Remove(t *testing.T) {
	userID, itemID := uuid.New(), uuid.New()

	tests := []struct {
		name     string
		affected int64
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "row of another user is not found", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockWriteQueries)
			q.On("DeleteCartItem", mock.Anything, mock.Anything, sqlc.DeleteCartItemParams{ID: itemID, UserID: userID}).
				Return(tt.affected, tt.mockErr)

			err := NewCartRepository(q, q).Remove(context.Background(), q, userID, itemID)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			q.AssertExpectations(t)
		})
	}
}

func TestCartRepository_RemoveCourses_EmptyIsNoop(t *testing.T) {
	q := new(MockWriteQueries)

	n, err := NewCartRepository(q, q).RemoveCourses(context.Background(), q, uuid.New(), nil)

	require.NoError(t, err)
	assert.Zero(t, n)
	q.AssertNotCalled(t, "DeleteCartItemsByCourses", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrollmentRepository_GetForUpdate(t *testing.T) {
	studentID, courseID := uuid.New(), uuid.New()
	params := sqlc.GetEnrollmentParams{StudentID: studentID, CourseID: courseID}

	t.Run("no row returns nil without error", func(t *testing.T) {
		q := new(MockWriteQueries)
		q.On("GetEnrollmentForUpdate", mock.Anything, mock.Anything, params).Return(sqlc.Enrollments{}, pgx.ErrNoRows)

		e, err := NewEnrollmentRepository(q, q).GetForUpdate(context.Background(), q, studentID, courseID)

		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("existing row", func(t *testing.T) {
		expires := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		q := new(MockWriteQueries)
		q.On("GetEnrollmentForUpdate", mock.Anything, mock.Anything, params).Return(sqlc.Enrollments{
			StudentID: studentID,
			CourseID:  courseID,
			IsActive:  true,
			ExpiresAt: pgtype.Timestamptz{Time: expires, Valid: true},
		}, nil)

		e, err := NewEnrollmentRepository(q, q).GetForUpdate(context.Background(), q, studentID, courseID)

		require.NoError(t, err)
		require.NotNil(t, e)
		assert.True(t, e.IsActive())
		assert.Equal(t, expires, e.ExpiresAt())
	})

	t.Run("lock timeout is a conflict", func(t *testing.T) {
		q := new(MockWriteQueries)
		q.On("GetEnrollmentForUpdate", mock.Anything, mock.Anything, params).Return(sqlc.Enrollments{}, &pgconn.PgError{Code: "55P03"})

		_, err := NewEnrollmentRepository(q, q).GetForUpdate(context.Background(), q, studentID, courseID)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})
}

func TestIdempotencyRepository_TryInsert(t *testing.T) {
	tests := []struct {
		name         string
		affected     int64
		wantInserted bool
	}{
		{name: "fresh key", affected: 1, wantInserted: true},
		{name: "live key already present", affected: 0, wantInserted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockWriteQueries)
			q.On("TryInsertIdempotencyKey", mock.Anything, mock.Anything, mock.AnythingOfType("sqlc.TryInsertIdempotencyKeyParams")).
				Return(tt.affected, nil)

			inserted, err := NewIdempotencyRepository(q, q).TryInsert(context.Background(), q, uuid.New(), uuid.New(), "POST /api/checkout/orders", "hash", time.Now().Add(time.Hour))

			require.NoError(t, err)
			assert.Equal(t, tt.wantInserted, inserted)
		})
	}
}

func TestPaymentEventRepository_Record(t *testing.T) {
	orderID := uuid.New()

	q := new(MockWriteQueries)
	q.On("InsertPaymentEvent", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.InsertPaymentEventParams) bool {
		return p.PaymentID == "pay_1" && p.OrderID == orderID
	})).Return(int64(1), nil).Once()
	q.On("InsertPaymentEvent", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil).Once()

	repo := NewPaymentEventRepository(q)

	first, err := repo.Record(context.Background(), q, "pay_1", orderID, "verified", time.Now())
	require.NoError(t, err)
	second, err := repo.Record(context.Background(), q, "pay_1", orderID, "verified", time.Now())
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
}

func TestProvisioningRepository_List(t *testing.T) {
	orderID, courseID := uuid.New(), uuid.New()

	t.Run("maps saga rows", func(t *testing.T) {
		q := new(MockWriteQueries)
		q.On("ListOrderProvisioning", mock.Anything, mock.Anything, orderID).Return([]sqlc.OrderProvisioning{{
			OrderID:   orderID,
			CourseID:  courseID,
			Status:    "failed",
			Attempts:  2,
			LastError: pgtype.Text{String: "lock timeout", Valid: true},
		}}, nil)

		steps, err := NewProvisioningRepository(q, q).List(context.Background(), q, orderID)

		require.NoError(t, err)
		require.Len(t, steps, 1)
		assert.Equal(t, shared.ProvisioningStep{
			OrderID:   orderID,
			CourseID:  courseID,
			Outcome:   "failed",
			Attempts:  2,
			LastError: "lock timeout",
		}, steps[0])
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		q := new(MockWriteQueries)
		q.On("ListOrderProvisioning", mock.Anything, mock.Anything, orderID).Return([]sqlc.OrderProvisioning{{
			OrderID:  orderID,
			CourseID: courseID,
			Status:   "refunded",
		}}, nil)

		_, err := NewProvisioningRepository(q, q).List(context.Background(), q, orderID)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
