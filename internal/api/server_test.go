package api

import (
	"bufio"
	"context"
	"errors"
	"iter"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"media_syncer/internal/domain"
	"media_syncer/internal/metrics"
	"media_syncer/internal/scheduler"
	"media_syncer/internal/service"
)

type fakeFavorites struct {
	calls chan struct{}
	err   error
}

func (f *fakeFavorites) SyncFavorites(ctx context.Context) (*domain.SyncStats, error) {
	f.calls <- struct{}{}
	return &domain.SyncStats{}, f.err
}

type fakeLists struct {
	ids chan string
}

func (f *fakeLists) SyncList(ctx context.Context, remoteID string) (*domain.SyncStats, error) {
	f.ids <- remoteID
	return &domain.SyncStats{}, nil
}

type fakeContents struct {
	records map[domain.ContentRef]*domain.Content
	err     error
}

func (f *fakeContents) Get(ctx context.Context, ref domain.ContentRef) (*domain.Content, error) {
	return f.records[ref], f.err
}

type fakeRefresher struct {
	result *service.RefreshResult
	err    error
}

func (f *fakeRefresher) Refresh(ctx context.Context, ref domain.ContentRef) (*service.RefreshResult, error) {
	return f.result, f.err
}

type fakeWatcher struct {
	updates chan *domain.Content
}

func (f *fakeWatcher) Subscribe(ctx context.Context, ref domain.ContentRef) <-chan *domain.Content {
	out := make(chan *domain.Content)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case c := <-f.updates:
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// fakeBrowser yields pages through the real session so dedup applies.
type fakeBrowser struct {
	pages [][]domain.Content
	err   error
	query domain.CatalogQuery
}

func (f *fakeBrowser) Browse(ctx context.Context, query domain.CatalogQuery, session *service.BrowseSession) iter.Seq2[domain.Content, error] {
	f.query = query
	return session.Dedup(func(yield func(domain.Content, error) bool) {
		for _, page := range f.pages {
			for _, c := range page {
				if !yield(c, nil) {
					return
				}
			}
		}
		if f.err != nil {
			yield(domain.Content{}, f.err)
		}
	})
}

type fakePinger struct {
	err error
}

func (f *fakePinger) PingContext(ctx context.Context) error { return f.err }

type ServerTestSuite struct {
	suite.Suite
	sched     *scheduler.Scheduler
	favorites *fakeFavorites
	lists     *fakeLists
	contents  *fakeContents
	refresher *fakeRefresher
	watcher   *fakeWatcher
	browser   *fakeBrowser
	pinger    *fakePinger
	registry  *prometheus.Registry
	server    *httptest.Server
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.sched = scheduler.New(0, logger)
	s.favorites = &fakeFavorites{calls: make(chan struct{}, 1)}
	s.lists = &fakeLists{ids: make(chan string, 1)}
	s.contents = &fakeContents{records: map[domain.ContentRef]*domain.Content{
		domain.MovieRef(42): {ID: 1, Ref: domain.MovieRef(42), Title: "Heat", Favorite: true},
	}}
	s.refresher = &fakeRefresher{}
	s.watcher = &fakeWatcher{updates: make(chan *domain.Content)}
	s.pinger = &fakePinger{}
	s.browser = &fakeBrowser{}
	s.registry = prometheus.NewRegistry()
	metrics.New(s.registry).ObserveRemote("catalog", nil)

	srv := NewServer(Deps{
		Scheduler: s.sched,
		Favorites: s.favorites,
		Lists:     s.lists,
		Contents:  s.contents,
		Refresher: s.refresher,
		Watcher:   s.watcher,
		Browser:   s.browser,
		DB:        s.pinger,
		Gatherer:  s.registry,
	}, Options{SyncRequests: 3, CORSOrigins: []string{"https://app.example"}}, logger)
	s.server = httptest.NewServer(srv.Router())
}

func (s *ServerTestSuite) TearDownTest() {
	s.server.Close()
	s.sched.Stop()
}

func (s *ServerTestSuite) do(method, path string) (*http.Response, map[string]any) {
	req, err := http.NewRequest(method, s.server.URL+path, nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var body map[string]any
	if resp.StatusCode != http.StatusNoContent && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp, body
}

func (s *ServerTestSuite) TestHealth() {
	resp, body := s.do(http.MethodGet, "/healthz")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", body["status"])

	s.pinger.err = errors.New("connection refused")
	resp, body = s.do(http.MethodGet, "/healthz")
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
	s.Equal("unavailable", body["status"])
}

func (s *ServerTestSuite) TestMetrics() {
	resp, err := http.Get(s.server.URL + "/metrics")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	scanner := bufio.NewScanner(resp.Body)
	found := false
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "media_syncer_remote_requests_total") {
			found = true
		}
	}
	s.True(found)
}

func (s *ServerTestSuite) TestSyncFavorites_SubmitsJob() {
	resp, body := s.do(http.MethodPost, "/sync/favorites")

	s.Equal(http.StatusAccepted, resp.StatusCode)
	s.Equal(service.FavoritesSyncJob, body["job"])
	s.NotEmpty(body["run_id"])

	select {
	case <-s.favorites.calls:
	case <-time.After(time.Second):
		s.FailNow("favorites sync did not run")
	}

	s.Eventually(func() bool {
		return s.sched.Status(service.FavoritesSyncJob).LastRun != nil
	}, time.Second, 5*time.Millisecond)

	resp, body = s.do(http.MethodGet, "/jobs/"+service.FavoritesSyncJob)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(false, body["running"])
	s.Require().NotNil(body["last_run"])
}

func (s *ServerTestSuite) TestSyncList_SubmitsJobPerList() {
	resp, body := s.do(http.MethodPost, "/sync/lists/abc")

	s.Equal(http.StatusAccepted, resp.StatusCode)
	s.Equal("list-sync:abc", body["job"])

	select {
	case id := <-s.lists.ids:
		s.Equal("abc", id)
	case <-time.After(time.Second):
		s.FailNow("list sync did not run")
	}
}

func (s *ServerTestSuite) TestJobStatus_FailedRun() {
	s.favorites.err = errors.New("fetch remote favorites: boom")
	s.do(http.MethodPost, "/sync/favorites")
	<-s.favorites.calls

	s.Eventually(func() bool {
		return s.sched.Status(service.FavoritesSyncJob).LastRun != nil
	}, time.Second, 5*time.Millisecond)

	_, body := s.do(http.MethodGet, "/jobs/"+service.FavoritesSyncJob)
	lastRun, ok := body["last_run"].(map[string]any)
	s.Require().True(ok)
	s.Equal("fetch remote favorites: boom", lastRun["error"])
}

func (s *ServerTestSuite) TestCancelJob_NotRunning() {
	resp, body := s.do(http.MethodDelete, "/jobs/list-sync")

	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("job is not running", body["error"])
}

func (s *ServerTestSuite) TestCancelJob_Running() {
	started := make(chan struct{})
	s.sched.Submit("slow", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	<-started

	resp, _ := s.do(http.MethodDelete, "/jobs/slow")

	s.Equal(http.StatusNoContent, resp.StatusCode)
}

func (s *ServerTestSuite) TestGetContent() {
	resp, body := s.do(http.MethodGet, "/contents/movie/42")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Heat", body["title"])
	s.Equal(true, body["favorite"])
	s.Equal([]any{}, body["genres"])

	resp, _ = s.do(http.MethodGet, "/contents/show/42")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/contents/person/42")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/contents/movie/abc")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerTestSuite) TestGetContent_StoreFailure() {
	s.contents.err = errors.New("db down")

	resp, _ := s.do(http.MethodGet, "/contents/movie/42")

	s.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func (s *ServerTestSuite) TestRefreshContent() {
	s.refresher.result = &service.RefreshResult{
		Content:  &domain.Content{Ref: domain.ShowRef(7), Title: "The Wire"},
		Outcome:  domain.OutcomeUpdated,
		Credits:  3,
		Trailers: 1,
	}

	resp, body := s.do(http.MethodPost, "/contents/show/7/refresh")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("updated", body["outcome"])
	s.Equal(float64(3), body["credits"])
	content, ok := body["content"].(map[string]any)
	s.Require().True(ok)
	s.Equal("The Wire", content["title"])
}

func (s *ServerTestSuite) TestRefreshContent_ErrorMapping() {
	s.refresher.err = domain.ErrNotFound
	resp, _ := s.do(http.MethodPost, "/contents/movie/1/refresh")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	s.refresher.err = domain.ErrTransientFetch
	resp, _ = s.do(http.MethodPost, "/contents/movie/1/refresh")
	s.Equal(http.StatusBadGateway, resp.StatusCode)

	s.refresher.err = domain.ErrStoreWrite
	resp, _ = s.do(http.MethodPost, "/contents/movie/1/refresh")
	s.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func (s *ServerTestSuite) TestWatchContent_StreamsEvents() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.server.URL+"/contents/movie/42/watch", nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal("text/event-stream", resp.Header.Get("Content-Type"))

	go func() {
		s.watcher.updates <- &domain.Content{Ref: domain.MovieRef(42), Title: "Heat"}
	}()

	reader := bufio.NewReader(resp.Body)
	event, err := reader.ReadString('\n')
	s.Require().NoError(err)
	s.Equal("event: content\n", event)

	data, err := reader.ReadString('\n')
	s.Require().NoError(err)
	s.True(strings.HasPrefix(data, "data: "))

	var content map[string]any
	s.Require().NoError(json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(data), "data: ")), &content))
	s.Equal("Heat", content["title"])
	s.Equal("movie", content["kind"])
}

func readEvent(r *bufio.Reader) (string, map[string]any, error) {
	event, err := r.ReadString('\n')
	if err != nil {
		return "", nil, err
	}
	data, err := r.ReadString('\n')
	if err != nil {
		return "", nil, err
	}
	if _, err := r.ReadString('\n'); err != nil {
		return "", nil, err
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(data), "data: ")), &body); err != nil {
		return "", nil, err
	}
	return strings.TrimPrefix(strings.TrimSpace(event), "event: "), body, nil
}

func (s *ServerTestSuite) TestWatchJob_StreamsRunningState() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.server.URL+"/jobs/favorites-sync/watch", nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal("text/event-stream", resp.Header.Get("Content-Type"))
	reader := bufio.NewReader(resp.Body)

	event, body, err := readEvent(reader)
	s.Require().NoError(err)
	s.Equal("state", event)
	s.Equal("favorites-sync", body["name"])
	s.Equal(false, body["running"])

	release := make(chan struct{})
	s.sched.Submit("favorites-sync", func(ctx context.Context) error {
		<-release
		return nil
	})

	_, body, err = readEvent(reader)
	s.Require().NoError(err)
	s.Equal(true, body["running"])

	close(release)

	_, body, err = readEvent(reader)
	s.Require().NoError(err)
	s.Equal(false, body["running"])
}

func (s *ServerTestSuite) TestBrowse_DedupsAcrossPages() {
	movie := func(id int64) domain.Content {
		return domain.Content{Ref: domain.MovieRef(id), Title: "m"}
	}
	s.browser.pages = [][]domain.Content{
		{movie(1), movie(2), movie(3)},
		{movie(2), movie(3), movie(4)},
	}

	resp, body := s.do(http.MethodGet, "/browse/movie?query=heat&sort=popularity.desc")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("heat", s.browser.query.Search)
	s.Equal(domain.KindMovie, s.browser.query.Kind)
	items, ok := body["items"].([]any)
	s.Require().True(ok)
	s.Require().Len(items, 4)
	for i, want := range []float64{1, 2, 3, 4} {
		s.Equal(want, items[i].(map[string]any)["id"])
	}
}

func (s *ServerTestSuite) TestBrowse_Limit() {
	s.browser.pages = [][]domain.Content{{
		{Ref: domain.ShowRef(1)}, {Ref: domain.ShowRef(2)}, {Ref: domain.ShowRef(3)},
	}}

	_, body := s.do(http.MethodGet, "/browse/show?listing=top_rated&limit=2")

	s.Equal("top_rated", s.browser.query.Listing)
	s.Len(body["items"], 2)
}

func (s *ServerTestSuite) TestBrowse_Errors() {
	resp, _ := s.do(http.MethodGet, "/browse/person")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/browse/movie?limit=zero")
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	s.browser.err = domain.ErrTransientFetch
	resp, _ = s.do(http.MethodGet, "/browse/movie")
	s.Equal(http.StatusBadGateway, resp.StatusCode)

	s.browser.pages = [][]domain.Content{{{Ref: domain.MovieRef(9)}}}
	resp, body := s.do(http.MethodGet, "/browse/movie")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(float64(1), body["errors"])
	s.Len(body["items"], 1)
}

func (s *ServerTestSuite) TestSyncRoutes_RateLimited() {
	for range 3 {
		resp, _ := s.do(http.MethodPost, "/sync/lists/abc")
		s.Equal(http.StatusAccepted, resp.StatusCode)
		<-s.lists.ids
	}

	resp, body := s.do(http.MethodPost, "/sync/lists/abc")

	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
	s.Equal("too many sync requests", body["error"])
}

func (s *ServerTestSuite) TestCORS() {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+"/healthz", nil)
	s.Require().NoError(err)
	req.Header.Set("Origin", "https://app.example")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal("https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))
}
