package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"media_syncer/internal/domain"
	"media_syncer/internal/service/mocks"
)

type ResolverTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	contents *mocks.MockContentStore
	catalog  *mocks.MockCatalog

	resolver *Resolver
}

func (s *ResolverTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.contents = mocks.NewMockContentStore(s.ctrl)
	s.catalog = mocks.NewMockCatalog(s.ctrl)

	logger := testLogger()
	reconciler := NewReconciler(s.contents, nil, nil, nil, nil, nil, logger)
	s.resolver = NewResolver(s.contents, s.catalog, reconciler, logger)
}

func (s *ResolverTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) TestResolve_LocalHit() {
	ctx := context.Background()
	local := &domain.Content{ID: 1, Ref: domain.MovieRef(1), Title: "Local"}

	s.contents.EXPECT().Get(ctx, domain.MovieRef(1)).Return(local, nil)

	got, fetched, err := s.resolver.Resolve(ctx, domain.MovieRef(1))

	s.Require().NoError(err)
	s.False(fetched)
	s.Equal(local, got)
}

func (s *ResolverTestSuite) TestResolve_FetchesAndStores() {
	ctx := context.Background()
	ref := domain.ShowRef(2)

	s.contents.EXPECT().Get(gomock.Any(), ref).Return(nil, nil).Times(2)
	// A catalog payload with the wrong key is stored under the requested ref.
	s.catalog.EXPECT().FetchOne(gomock.Any(), ref).Return(&domain.Content{Ref: domain.MovieRef(2), Title: "Remote"}, nil)
	s.contents.EXPECT().Insert(gomock.Any(), &domain.Content{Ref: ref, Title: "Remote"}).Return(int64(20), nil)

	got, fetched, err := s.resolver.Resolve(ctx, ref)

	s.Require().NoError(err)
	s.True(fetched)
	s.Equal(int64(20), got.ID)
	s.Equal(ref, got.Ref)
}

func (s *ResolverTestSuite) TestResolve_FetchFailure() {
	ctx := context.Background()

	s.contents.EXPECT().Get(ctx, domain.MovieRef(3)).Return(nil, nil)
	s.catalog.EXPECT().FetchOne(gomock.Any(), domain.MovieRef(3)).Return(nil, domain.ErrTransientFetch)

	got, _, err := s.resolver.Resolve(ctx, domain.MovieRef(3))

	s.Nil(got)
	s.ErrorIs(err, domain.ErrTransientFetch)
}

func (s *ResolverTestSuite) TestResolve_ConcurrentCallersShareFetch() {
	ctx := context.Background()
	ref := domain.MovieRef(4)

	fetching := make(chan struct{})
	release := make(chan struct{})
	var gets sync.WaitGroup
	gets.Add(2)

	// Two lookups from the callers, one from the reconciler.
	s.contents.EXPECT().Get(ctx, ref).DoAndReturn(
		func(context.Context, domain.ContentRef) (*domain.Content, error) {
			gets.Done()
			return nil, nil
		},
	).Times(2)
	s.contents.EXPECT().Get(gomock.Any(), ref).Return(nil, nil).Times(1)
	s.catalog.EXPECT().FetchOne(gomock.Any(), ref).DoAndReturn(
		func(context.Context, domain.ContentRef) (*domain.Content, error) {
			close(fetching)
			<-release
			return &domain.Content{Ref: ref, Title: "Shared"}, nil
		},
	).Times(1)
	s.contents.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(40), nil).Times(1)

	results := make([]*domain.Content, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _, err := s.resolver.Resolve(ctx, ref)
			s.NoError(err)
			results[i] = got
		}()
	}

	<-fetching
	gets.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, got := range results {
		s.Require().NotNil(got)
		s.Equal(int64(40), got.ID)
	}
	s.NotSame(results[0], results[1])
}

func (s *ResolverTestSuite) TestResolve_CanceledCallerDoesNotFailSharedFetch() {
	ref := domain.MovieRef(5)
	first, cancelFirst := context.WithCancel(context.Background())
	second := context.Background()

	fetching := make(chan struct{})
	release := make(chan struct{})

	s.contents.EXPECT().Get(gomock.Any(), ref).Return(nil, nil).Times(3)
	s.catalog.EXPECT().FetchOne(gomock.Any(), ref).DoAndReturn(
		func(ctx context.Context, _ domain.ContentRef) (*domain.Content, error) {
			close(fetching)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &domain.Content{Ref: ref, Title: "Vertigo"}, nil
		},
	).Times(1)
	s.contents.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(50), nil).Times(1)

	firstErr := make(chan error, 1)
	go func() {
		_, _, err := s.resolver.Resolve(first, ref)
		firstErr <- err
	}()
	<-fetching

	type result struct {
		content *domain.Content
		err     error
	}
	secondDone := make(chan result, 1)
	go func() {
		got, _, err := s.resolver.Resolve(second, ref)
		secondDone <- result{got, err}
	}()

	cancelFirst()
	s.ErrorIs(<-firstErr, context.Canceled)

	// Give the second caller time to join the fetch in flight.
	time.Sleep(50 * time.Millisecond)
	close(release)

	res := <-secondDone
	s.Require().NoError(res.err)
	s.Equal(int64(50), res.content.ID)
}
