package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"

	"media_syncer/internal/domain"
)

// ContentChannel is the NOTIFY channel the contents trigger writes "kind:remote_id" to.
const ContentChannel = "content_changes"

// ContentWatcher fans Postgres change notifications for contents out to
// per-ref subscribers.
type ContentWatcher struct {
	contents *ContentStore
	listener *pq.Listener
	logger   *slog.Logger

	mu   sync.Mutex
	subs map[domain.ContentRef]map[chan *domain.Content]struct{}
}

func NewContentWatcher(dsn string, contents *ContentStore, logger *slog.Logger) (*ContentWatcher, error) {
	logger = logger.With("component", "content_watcher")

	listener := pq.NewListener(dsn, time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("listener event", "event", ev, "error", err)
		}
	})
	if err := listener.Listen(ContentChannel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("listen %s: %w", ContentChannel, err)
	}

	return &ContentWatcher{
		contents: contents,
		listener: listener,
		logger:   logger,
		subs:     make(map[domain.ContentRef]map[chan *domain.Content]struct{}),
	}, nil
}

// Run dispatches notifications until ctx is done.
func (w *ContentWatcher) Run(ctx context.Context) {
	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n := <-w.listener.Notify:
			if n == nil {
				// Reconnected; notifications may have been missed.
				w.refreshAll(ctx)
				continue
			}
			ref, err := parseRef(n.Extra)
			if err != nil {
				w.logger.Warn("ignoring notification", "payload", n.Extra, "error", err)
				continue
			}
			w.refresh(ctx, ref)
		case <-ping.C:
			go func() { _ = w.listener.Ping() }()
		}
	}
}

// Subscribe emits the current record for ref, if stored, and then the record
// after every change. Slow consumers only see the latest value. The channel is
// closed once ctx is done.
func (w *ContentWatcher) Subscribe(ctx context.Context, ref domain.ContentRef) <-chan *domain.Content {
	ch := make(chan *domain.Content, 1)

	w.mu.Lock()
	if w.subs[ref] == nil {
		w.subs[ref] = make(map[chan *domain.Content]struct{})
	}
	w.subs[ref][ch] = struct{}{}
	w.mu.Unlock()

	if current, err := w.contents.Get(ctx, ref); err != nil {
		w.logger.Warn("failed to load current content", "ref", ref.String(), "error", err)
	} else if current != nil {
		w.mu.Lock()
		offer(ch, current)
		w.mu.Unlock()
	}

	go func() {
		<-ctx.Done()
		w.mu.Lock()
		delete(w.subs[ref], ch)
		if len(w.subs[ref]) == 0 {
			delete(w.subs, ref)
		}
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

func (w *ContentWatcher) Close() error {
	return w.listener.Close()
}

func (w *ContentWatcher) refresh(ctx context.Context, ref domain.ContentRef) {
	w.mu.Lock()
	_, watched := w.subs[ref]
	w.mu.Unlock()
	if !watched {
		return
	}

	current, err := w.contents.Get(ctx, ref)
	if err != nil || current == nil {
		w.logger.Warn("failed to load changed content", "ref", ref.String(), "error", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.subs[ref] {
		c := *current
		offer(ch, &c)
	}
}

func (w *ContentWatcher) refreshAll(ctx context.Context) {
	w.mu.Lock()
	refs := make([]domain.ContentRef, 0, len(w.subs))
	for ref := range w.subs {
		refs = append(refs, ref)
	}
	w.mu.Unlock()

	for _, ref := range refs {
		w.refresh(ctx, ref)
	}
}

// offer replaces any undelivered value in ch with c. Callers hold w.mu.
func offer(ch chan *domain.Content, c *domain.Content) {
	select {
	case ch <- c:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- c:
	default:
	}
}

func parseRef(payload string) (domain.ContentRef, error) {
	kind, id, ok := strings.Cut(payload, ":")
	if !ok {
		return domain.ContentRef{}, fmt.Errorf("missing separator: %w", domain.ErrMalformedRow)
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return domain.ContentRef{}, fmt.Errorf("parse id: %w", err)
	}
	ref := domain.ContentRef{Kind: domain.ContentKind(kind), ID: n}
	if !ref.Kind.Valid() {
		return domain.ContentRef{}, fmt.Errorf("unknown kind %q: %w", kind, domain.ErrMalformedRow)
	}
	return ref, nil
}
