//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/queries"
	"learnhub-checkout/internal/usecase/shared"
	queriesmock "learnhub-checkout/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartQueriesTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	store   *queriesmock.MockCartViewStore
	cache   *queriesmock.MockCartViewCache
	q       queries.CartQueries
	session shared.Session
	view    *queries.CartView
}

func (s *CartQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockCartViewStore(s.ctrl)
	s.cache = queriesmock.NewMockCartViewCache(s.ctrl)
	s.q = queries.NewCartQueries(s.store, s.cache)
	s.session = shared.NewSession(uuid.New())

	addedAt := time.Now().UTC().Truncate(time.Microsecond)
	s.view = &queries.CartView{
		UserID: s.session.UserID,
		Items: []queries.CartItemView{
			{ID: uuid.New(), CourseID: uuid.New(), CourseName: "Go Fundamentals", PriceMinor: 2000, AddedAt: addedAt},
			{ID: uuid.New(), CourseID: uuid.New(), CourseName: "Distributed Systems", PriceMinor: 1500, AddedAt: addedAt},
		},
		TotalMinor: 3500,
	}
}

func (s *CartQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCartQueriesSuite(t *testing.T) {
	suite.Run(t, new(CartQueriesTestSuite))
}

// loadThrough makes the cache mock behave like a miss that runs the loader.
func loadThrough(ctx context.Context, _ uuid.UUID, load func(context.Context) (*queries.CartView, error)) (*queries.CartView, error) {
	return load(ctx)
}

func (s *CartQueriesTestSuite) TestGet() {
	s.Run("cache hit skips the store", func() {
		s.cache.EXPECT().GetOrLoad(gomock.Any(), s.session.UserID, gomock.Any()).Return(s.view, nil).Times(1)

		got, err := s.q.Get(s.ctx, s.session)

		s.Require().NoError(err)
		s.Same(s.view, got)
	})

	s.Run("cache miss loads from the store", func() {
		gomock.InOrder(
			s.cache.EXPECT().GetOrLoad(gomock.Any(), s.session.UserID, gomock.Any()).DoAndReturn(loadThrough),
			s.store.EXPECT().ViewByUser(gomock.Any(), s.session.UserID).Return(s.view, nil),
		)

		got, err := s.q.Get(s.ctx, s.session)

		s.Require().NoError(err)
		if diff := cmp.Diff(s.view, got); diff != "" {
			s.Failf("unexpected cart view", "(-want +got):\n%s", diff)
		}
	})

	s.Run("store failure", func() {
		s.cache.EXPECT().GetOrLoad(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(loadThrough)
		s.store.EXPECT().ViewByUser(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		got, err := s.q.Get(s.ctx, s.session)

		s.Nil(got)
		s.True(errs.Is(err, errs.ErrPersistenceFailure))
	})

	s.Run("caller gave up while waiting", func() {
		s.cache.EXPECT().GetOrLoad(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, context.Canceled)

		_, err := s.q.Get(s.ctx, s.session)

		s.True(errs.Is(err, context.Canceled))
	})

	s.Run("no session", func() {
		_, err := s.q.Get(s.ctx, shared.Session{})
		s.True(errs.Is(err, errs.ErrUnauthenticated))
	})
}

func (s *CartQueriesTestSuite) TestWithoutCache() {
	q := queries.NewCartQueries(s.store, nil)
	s.store.EXPECT().ViewByUser(gomock.Any(), s.session.UserID).Return(s.view, nil).Times(2)

	items, err := q.List(s.ctx, s.session)
	s.Require().NoError(err)
	s.Len(items, 2)

	total, err := q.Total(s.ctx, s.session)
	s.Require().NoError(err)
	s.Equal(int64(3500), total)
}
