//go:build integration

package postgres

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"media_syncer/internal/domain"
	"media_syncer/testdata/utils"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
	dsn       string
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_contents.up.sql"),
			filepath.Join(migrationsPath, "002_create_lists.up.sql"),
			filepath.Join(migrationsPath, "003_notify_content_changes.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.dsn = connStr

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM list_items")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM lists")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM credits")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM trailers")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM contents")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) insertContent(ref domain.ContentRef, title string) int64 {
	id, err := NewContentStore(s.db).Insert(s.ctx, &domain.Content{Ref: ref, Title: title})
	s.Require().NoError(err)
	return id
}

func (s *PostgresIntegrationSuite) TestContentStore_InsertAndGet() {
	store := NewContentStore(s.db)
	released := time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC)

	id, err := store.Insert(s.ctx, &domain.Content{
		Ref:         domain.MovieRef(949),
		Title:       "Heat",
		Genres:      []string{"Crime", "Drama"},
		ReleaseDate: &released,
		Status:      domain.StatusReleased,
		Popularity:  42.5,
	})
	s.Require().NoError(err)
	s.Greater(id, int64(0))

	got, err := store.Get(s.ctx, domain.MovieRef(949))
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(id, got.ID)
	s.Equal("Heat", got.Title)
	s.Equal([]string{"Crime", "Drama"}, got.Genres)
	s.Nil(got.ProductionCompanies)
	s.True(released.Equal(*got.ReleaseDate))
	s.Equal(domain.StatusReleased, got.Status)

	missing, err := store.Get(s.ctx, domain.ShowRef(949))
	s.NoError(err)
	s.Nil(missing, "movie and show ids do not collide")
}

func (s *PostgresIntegrationSuite) TestContentStore_InsertConflict() {
	store := NewContentStore(s.db)
	s.insertContent(domain.MovieRef(1), "First")

	_, err := store.Insert(s.ctx, &domain.Content{Ref: domain.MovieRef(1), Title: "Second"})
	s.ErrorIs(err, domain.ErrConflict)

	got, err := store.Get(s.ctx, domain.MovieRef(1))
	s.Require().NoError(err)
	s.Equal("First", got.Title)
}

func (s *PostgresIntegrationSuite) TestContentStore_PartialUpdate() {
	store := NewContentStore(s.db)
	_, err := store.Insert(s.ctx, &domain.Content{Ref: domain.ShowRef(2), Title: "Keep", Overview: "Old"})
	s.Require().NoError(err)

	err = store.Update(s.ctx, domain.ContentUpdate{
		Ref:      domain.ShowRef(2),
		Overview: utils.Ptr("New"),
		Favorite: utils.Ptr(true),
		Genres:   []string{"Drama"},
	})
	s.Require().NoError(err)

	got, err := store.Get(s.ctx, domain.ShowRef(2))
	s.Require().NoError(err)
	s.Equal("Keep", got.Title)
	s.Equal("New", got.Overview)
	s.True(got.Favorite)
	s.Equal([]string{"Drama"}, got.Genres)

	err = store.Update(s.ctx, domain.ContentUpdate{Ref: domain.ShowRef(3), Title: utils.Ptr("x")})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestContentStore_ListFavorites() {
	store := NewContentStore(s.db)
	s.insertContent(domain.MovieRef(1), "A")
	s.insertContent(domain.MovieRef(2), "B")
	s.Require().NoError(store.Update(s.ctx, domain.ContentUpdate{Ref: domain.MovieRef(2), Favorite: utils.Ptr(true)}))

	favorites, err := store.ListFavorites(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(favorites, 1)
	s.Equal(domain.MovieRef(2), favorites[0].Ref)
}

func (s *PostgresIntegrationSuite) TestCreditStore_RequiresContent() {
	store := NewCreditStore(s.db)

	err := store.Insert(s.ctx, &domain.Credit{ID: "c1", Content: domain.MovieRef(404)})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestCreditStore_InsertUpdate() {
	store := NewCreditStore(s.db)
	s.insertContent(domain.MovieRef(1), "Heat")

	credit := &domain.Credit{
		ID:           "c1",
		Content:      domain.MovieRef(1),
		PersonID:     utils.Ptr(int64(380)),
		PersonName:   "Robert De Niro",
		Character:    "Neil",
		ContentTitle: "Heat",
	}
	s.Require().NoError(store.Insert(s.ctx, credit))
	s.ErrorIs(store.Insert(s.ctx, credit), domain.ErrConflict)

	credit.Character = "Neil McCauley"
	credit.ContentTitle = "ignored"
	s.Require().NoError(store.Update(s.ctx, credit))

	got, err := store.Get(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("Neil McCauley", got.Character)
	s.Equal("Heat", got.ContentTitle)
	s.Equal(int64(380), *got.PersonID)
	s.Equal(utils.Ptr(0), got.Order, "absent order is stored as zero")
}

func (s *PostgresIntegrationSuite) TestTrailerStore_InsertUpdate() {
	store := NewTrailerStore(s.db)
	s.insertContent(domain.ShowRef(1), "Show")

	trailer := &domain.Trailer{ID: "t1", Content: domain.ShowRef(1), Key: "abc", Site: "YouTube"}
	s.Require().NoError(store.Insert(s.ctx, trailer))

	trailer.Official = utils.Ptr(true)
	s.Require().NoError(store.Update(s.ctx, trailer))

	got, err := store.Get(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(utils.Ptr(true), got.Official)
	s.Equal(domain.ShowRef(1), got.Content)

	missing, err := store.Get(s.ctx, "t2")
	s.NoError(err)
	s.Nil(missing)
}

func (s *PostgresIntegrationSuite) TestListStore_CreateIsIdempotentPerRemoteID() {
	store := NewListStore(s.db)

	id1, err := store.Create(s.ctx, &domain.List{RemoteID: utils.Ptr("L1"), Name: "Noir"})
	s.Require().NoError(err)
	id2, err := store.Create(s.ctx, &domain.List{RemoteID: utils.Ptr("L1"), Name: "Other"})
	s.Require().NoError(err)
	s.Equal(id1, id2)

	localA, err := store.Create(s.ctx, &domain.List{Name: "Local A"})
	s.Require().NoError(err)
	localB, err := store.Create(s.ctx, &domain.List{Name: "Local B"})
	s.Require().NoError(err)
	s.NotEqual(localA, localB, "lists without a remote id never collide")

	got, err := store.GetByRemoteID(s.ctx, "L1")
	s.Require().NoError(err)
	s.Equal("Noir", got.Name)
}

func (s *PostgresIntegrationSuite) TestListStore_Update() {
	store := NewListStore(s.db)
	synced := time.Now().Truncate(time.Microsecond)

	id, err := store.Create(s.ctx, &domain.List{RemoteID: utils.Ptr("L1"), Name: "Noir", Description: "keep"})
	s.Require().NoError(err)

	err = store.Update(s.ctx, domain.ListUpdate{ID: id, Name: utils.Ptr("Neo-noir"), SyncedAt: &synced, Subscribers: utils.Ptr(5)})
	s.Require().NoError(err)

	got, err := store.GetByRemoteID(s.ctx, "L1")
	s.Require().NoError(err)
	s.Equal("Neo-noir", got.Name)
	s.Equal("keep", got.Description)
	s.Equal(5, got.SubscriberCount)
	s.WithinDuration(synced, *got.SyncedAt, time.Second)
}

func (s *PostgresIntegrationSuite) TestListItemStore_AddRemove() {
	lists := NewListStore(s.db)
	items := NewListItemStore(s.db)
	s.insertContent(domain.MovieRef(1), "A")
	s.insertContent(domain.ShowRef(1), "B")

	listID, err := lists.Create(s.ctx, &domain.List{RemoteID: utils.Ptr("L1")})
	s.Require().NoError(err)

	s.Require().NoError(items.Add(s.ctx, domain.ListItem{ListID: listID, Content: domain.MovieRef(1)}))
	s.Require().NoError(items.Add(s.ctx, domain.ListItem{ListID: listID, Content: domain.MovieRef(1)}))
	s.Require().NoError(items.Add(s.ctx, domain.ListItem{ListID: listID, Content: domain.ShowRef(1)}))

	got, err := items.ListByList(s.ctx, listID)
	s.Require().NoError(err)
	s.Len(got, 2)

	s.Require().NoError(items.Remove(s.ctx, listID, domain.MovieRef(1)))
	s.ErrorIs(items.Remove(s.ctx, listID, domain.MovieRef(1)), domain.ErrNotFound)

	got, err = items.ListByList(s.ctx, listID)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(domain.ShowRef(1), got[0].Content)
}

func (s *PostgresIntegrationSuite) TestListItemStore_RequiresContent() {
	lists := NewListStore(s.db)
	items := NewListItemStore(s.db)

	listID, err := lists.Create(s.ctx, &domain.List{RemoteID: utils.Ptr("L1")})
	s.Require().NoError(err)

	err = items.Add(s.ctx, domain.ListItem{ListID: listID, Content: domain.MovieRef(404)})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresIntegrationSuite) TestContentWatcher_Subscribe() {
	store := NewContentStore(s.db)
	s.insertContent(domain.MovieRef(1), "Before")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	watcher, err := NewContentWatcher(s.dsn, store, logger)
	s.Require().NoError(err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	go watcher.Run(ctx)

	updates := watcher.Subscribe(ctx, domain.MovieRef(1))

	select {
	case c := <-updates:
		s.Equal("Before", c.Title)
	case <-time.After(5 * time.Second):
		s.FailNow("no initial value")
	}

	s.Require().NoError(store.Update(s.ctx, domain.ContentUpdate{Ref: domain.MovieRef(1), Title: utils.Ptr("After")}))

	select {
	case c := <-updates:
		s.Equal("After", c.Title)
	case <-time.After(5 * time.Second):
		s.FailNow("no change notification")
	}

	cancel()
	s.Eventually(func() bool {
		_, open := <-updates
		return !open
	}, 5*time.Second, 10*time.Millisecond)
}

func (s *PostgresIntegrationSuite) TestTransaction_Commit() {
	tm := NewTransactionManager(s.db)
	lists := NewListStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		id, err := lists.Create(ctx, &domain.List{RemoteID: utils.Ptr("tx")})
		if err != nil {
			return err
		}
		return lists.Update(ctx, domain.ListUpdate{ID: id, Name: utils.Ptr("committed")})
	})
	s.NoError(err)

	got, err := lists.GetByRemoteID(s.ctx, "tx")
	s.Require().NoError(err)
	s.Equal("committed", got.Name)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	lists := NewListStore(s.db)

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := lists.Create(ctx, &domain.List{RemoteID: utils.Ptr("rolled-back")}); err != nil {
			return err
		}
		return context.Canceled
	})
	s.ErrorIs(err, context.Canceled)

	got, err := lists.GetByRemoteID(s.ctx, "rolled-back")
	s.NoError(err)
	s.Nil(got)
}
