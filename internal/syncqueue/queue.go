// Package syncqueue implements the durable offline queue of mutations that
// must eventually reach the remote server, plus the drain routine that
// replays them.
package syncqueue

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/daybook/internal/apiclient"
	"github.com/dmitrijs2005/daybook/internal/kvstore"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
)

// Queue is an append-only log of pending mutations persisted under a single
// storage key. Items move pending → synced; a failed drain attempt leaves an
// item pending for the next round (no backoff, no retry limit).
type Queue struct {
	store *kvstore.Store
	key   string
	path  string
	api   apiclient.Client
	log   logging.Logger

	mu sync.Mutex
}

// New builds a queue persisted under key that drains by POSTing each item to
// path on the given client.
func New(store *kvstore.Store, key, path string, api apiclient.Client, log logging.Logger) *Queue {
	return &Queue{
		store: store,
		key:   key,
		path:  path,
		api:   api,
		log:   log.With("queue", key),
	}
}

// load reads the queue, degrading malformed or unreadable state to empty.
func (q *Queue) load(ctx context.Context) []models.Change {
	var items []models.Change
	ok, err := q.store.GetJSON(ctx, q.key, &items, false)
	if err != nil {
		q.log.Error(ctx, "reading queue failed, treating as empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return items
}

func (q *Queue) persist(ctx context.Context, items []models.Change) error {
	if items == nil {
		items = []models.Change{}
	}
	if err := q.store.Set(ctx, q.key, items, false); err != nil {
		return fmt.Errorf("persisting queue %s: %w", q.key, err)
	}
	return nil
}

// Enqueue stamps a fresh identifier and the current time onto the mutation
// and appends it to the durable queue.
func (q *Queue) Enqueue(ctx context.Context, t models.ChangeType, payload any) (models.Change, error) {
	change, err := models.NewChange(t, payload)
	if err != nil {
		return models.Change{}, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	items := append(q.load(ctx), change)
	if err := q.persist(ctx, items); err != nil {
		return models.Change{}, err
	}
	return change, nil
}

// Pending returns the items still awaiting server acknowledgment.
func (q *Queue) Pending(ctx context.Context) []models.Change {
	var pending []models.Change
	for _, item := range q.load(ctx) {
		if !item.IsSynced {
			pending = append(pending, item)
		}
	}
	return pending
}

// Drain replays every pending item against the server. Each success is marked
// synced and persisted immediately, so partial progress survives a crash; a
// failure on one item is logged and never aborts the drain of the rest. Drain
// itself never returns an error; it reports how many items were synced and
// how many remain pending.
func (q *Queue) Drain(ctx context.Context) (synced, failed int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.load(ctx)
	for i := range items {
		if items[i].IsSynced {
			continue
		}

		if _, err := q.api.Post(ctx, q.path, items[i]); err != nil {
			q.log.Warn(ctx, "queue item not accepted, will retry next drain",
				"id", items[i].ID, "type", items[i].Type, "error", err)
			failed++
			continue
		}

		items[i].IsSynced = true
		if err := q.persist(ctx, items); err != nil {
			// The server has the item but the local flag write failed; keep
			// it pending so the next drain re-sends it.
			items[i].IsSynced = false
			q.log.Error(ctx, "failed to persist sync mark", "id", items[i].ID, "error", err)
			failed++
			continue
		}
		synced++
	}
	return synced, failed
}

// Compact removes items the server has acknowledged. Pending items keep their
// relative order.
func (q *Queue) Compact(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.load(ctx)
	remaining := items[:0]
	for _, item := range items {
		if !item.IsSynced {
			remaining = append(remaining, item)
		}
	}
	if len(remaining) == len(items) {
		return nil
	}
	return q.persist(ctx, remaining)
}
