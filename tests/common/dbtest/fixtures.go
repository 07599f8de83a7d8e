//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateCourse(t *testing.T, db DBLike, title string, priceMinor int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO courses (id, title, price_minor, is_published) VALUES ($1, $2, $3, true)",
		id, title, priceMinor)
	require.NoError(t, err)
	return id
}

func UnpublishCourse(t *testing.T, db DBLike, id uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE courses SET is_published = false WHERE id = $1", id)
	require.NoError(t, err)
}

func CreatePercentDiscount(t *testing.T, db DBLike, code, percent string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO discount_codes (code, discount_percent, is_active) VALUES ($1, $2::numeric, true)",
		code, percent)
	require.NoError(t, err)
}

func CreateFlatDiscount(t *testing.T, db DBLike, code string, amountMinor int64) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO discount_codes (code, discount_amount_minor, is_active) VALUES ($1, $2, true)",
		code, amountMinor)
	require.NoError(t, err)
}

func CountUnsentEvents(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM outbox_events WHERE sent_at IS NULL").Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts the catalog rows shared by every test
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO discount_codes (code, discount_percent, is_active) VALUES
		    ('LAUNCH10', 10, true),
		    ('RETIRED', 50, false)
		ON CONFLICT (code) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
