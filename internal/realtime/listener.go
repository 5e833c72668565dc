package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/joshua-takyi/eventscape/internal/metrics"
	"github.com/joshua-takyi/eventscape/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

var errStreamClosed = errors.New("change stream closed")

// Listener tails the database change stream and pushes each change to the broker and,
// when configured, the publisher. It implements suture.Service; a restarted listener
// resumes after the last change it handled.
type Listener struct {
	watcher   models.ChangeWatcher
	broker    *Broker
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time

	mu          sync.Mutex
	resumeToken bson.Raw
}

// NewListener builds a listener. publisher may be nil.
func NewListener(watcher models.ChangeWatcher, broker *Broker, publisher Publisher, logger *slog.Logger) *Listener {
	return &Listener{
		watcher:   watcher,
		broker:    broker,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (l *Listener) Serve(ctx context.Context) error {
	err := l.watcher.WatchChanges(ctx, l.ResumeToken(), l.handle)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == nil {
		return errStreamClosed
	}
	return err
}

func (l *Listener) String() string {
	return "change-listener"
}

func (l *Listener) ResumeToken() bson.Raw {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resumeToken
}

func (l *Listener) handle(ctx context.Context, ev *models.ChangeEvent) error {
	n, err := ev.Notification(l.now().UTC())
	if err != nil {
		// an undecodable document is skipped; the stream itself is healthy
		l.logger.Warn("skipping change event", "error", err, "collection", ev.Namespace.Coll)
		l.advance(ev.ID)
		return nil
	}

	l.broker.Publish(n)
	metrics.RecordChangePublished(n.Collection, "sse")

	if l.publisher != nil {
		if err := l.publisher.Publish(ctx, n); err != nil {
			l.logger.Error("failed to publish change notification", "error", err, "collection", n.Collection, "document_id", n.DocumentID)
		} else {
			metrics.RecordChangePublished(n.Collection, "amqp")
		}
	}

	l.advance(ev.ID)
	return nil
}

func (l *Listener) advance(token bson.Raw) {
	if len(token) == 0 {
		return
	}
	l.mu.Lock()
	l.resumeToken = append(bson.Raw(nil), token...)
	l.mu.Unlock()
}
