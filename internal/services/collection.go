// Package services implements the entity storage services: CRUD semantics
// over a single key-value collection key per entity type, layering
// soft-delete, sync-state tracking, and local-vs-server id reconciliation on
// top of raw get/set.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/daybook/internal/apiclient"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/kvstore"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
)

// record is the constraint shared by all entity pointer types.
type record[ID comparable] interface {
	Meta() *models.Base[ID]
}

// collection is the generic CRUD core. Each instance owns exactly one storage
// key holding a JSON array of records; every mutation rewrites the whole
// array (last-write-wins). A per-collection mutex serializes the
// read-modify-write cycle of concurrent mutations against the same key.
type collection[ID comparable, T record[ID]] struct {
	store *kvstore.Store
	key   string
	log   logging.Logger

	newID   func() ID
	now     func() time.Time
	encrypt bool

	// syncEligible filters records out of push sync (e.g. drafts). Nil means
	// every unsynced record is eligible.
	syncEligible func(T) bool

	mu sync.Mutex
}

func newCollection[ID comparable, T record[ID]](store *kvstore.Store, key string, log logging.Logger, newID func() ID) *collection[ID, T] {
	return &collection[ID, T]{
		store: store,
		key:   key,
		log:   log.With("collection", key),
		newID: newID,
		now:   time.Now,
	}
}

// load reads the full collection including soft-deleted records. Read
// failures and malformed payloads degrade to an empty slice (logged): a read
// problem must never crash a caller.
func (c *collection[ID, T]) load(ctx context.Context) []T {
	var items []T
	ok, err := c.store.GetJSON(ctx, c.key, &items, c.encrypt)
	if err != nil {
		c.log.Error(ctx, "reading collection failed, treating as empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return items
}

func (c *collection[ID, T]) persist(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	if err := c.store.Set(ctx, c.key, items, c.encrypt); err != nil {
		return fmt.Errorf("persisting %s: %w", c.key, err)
	}
	return nil
}

// List returns all records that are not soft-deleted, in storage order
// (insertion order equals creation order).
func (c *collection[ID, T]) List(ctx context.Context) []T {
	var result []T
	for _, item := range c.load(ctx) {
		if !item.Meta().IsDeleted {
			result = append(result, item)
		}
	}
	return result
}

// GetByID finds a record by server id or local id, excluding soft-deleted
// ones. "Not found" is a nil result, not an error.
func (c *collection[ID, T]) GetByID(ctx context.Context, id ID) T {
	var zero T
	for _, item := range c.load(ctx) {
		meta := item.Meta()
		if !meta.IsDeleted && meta.MatchesID(id) {
			return item
		}
	}
	return zero
}

// Create stamps bookkeeping fields onto rec (fresh local id, creation time,
// unsynced, not deleted), appends it to the collection and persists. The
// mutated rec is returned.
func (c *collection[ID, T]) Create(ctx context.Context, rec T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	meta := rec.Meta()
	meta.ID = nil
	meta.LocalID = c.newID()
	meta.CreatedAt = c.now()
	meta.IsDeleted = false
	meta.IsSynced = false

	items := append(c.load(ctx), rec)
	if err := c.persist(ctx, items); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Update applies mutate to the record addressed by id and forces it back to
// the unsynced state. Returns common.ErrNotFound if no live record matches.
func (c *collection[ID, T]) Update(ctx context.Context, id ID, mutate func(T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	items := c.load(ctx)
	idx := c.indexOf(items, id)
	if idx < 0 {
		return zero, fmt.Errorf("%s id %v: %w", c.key, id, common.ErrNotFound)
	}

	mutate(items[idx])
	items[idx].Meta().IsSynced = false

	if err := c.persist(ctx, items); err != nil {
		return zero, err
	}
	return items[idx], nil
}

// Delete soft-deletes the record addressed by id. The record stays in
// storage, flagged deleted and unsynced, until a sync round consumes it.
func (c *collection[ID, T]) Delete(ctx context.Context, id ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.load(ctx)
	idx := c.indexOf(items, id)
	if idx < 0 {
		return fmt.Errorf("%s id %v: %w", c.key, id, common.ErrNotFound)
	}

	meta := items[idx].Meta()
	meta.IsDeleted = true
	meta.IsSynced = false

	return c.persist(ctx, items)
}

// ListForSync returns records awaiting server acknowledgment, soft-deleted
// ones included, minus any the eligibility filter excludes.
func (c *collection[ID, T]) ListForSync(ctx context.Context) []T {
	var result []T
	for _, item := range c.load(ctx) {
		if item.Meta().IsSynced {
			continue
		}
		if c.syncEligible != nil && !c.syncEligible(item) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// MarkSynced acknowledges the records whose local ids appear in localIDs:
// each is flagged synced and, where serverIDs provides a mapping, receives
// its server-assigned id. LocalID itself never changes.
func (c *collection[ID, T]) MarkSynced(ctx context.Context, localIDs []ID, serverIDs map[ID]ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	acked := make(map[ID]struct{}, len(localIDs))
	for _, id := range localIDs {
		acked[id] = struct{}{}
	}

	items := c.load(ctx)
	for _, item := range items {
		meta := item.Meta()
		if _, ok := acked[meta.LocalID]; !ok {
			continue
		}
		meta.IsSynced = true
		if sid, ok := serverIDs[meta.LocalID]; ok {
			s := sid
			meta.ID = &s
		}
	}
	return c.persist(ctx, items)
}

func (c *collection[ID, T]) indexOf(items []T, id ID) int {
	for i, item := range items {
		meta := item.Meta()
		if !meta.IsDeleted && meta.MatchesID(id) {
			return i
		}
	}
	return -1
}

// ack is one element of the server's push-sync response.
type ack[ID comparable] struct {
	LocalID ID `json:"local_id"`
	ID      ID `json:"id"`
}

// push posts all sync-eligible records to the server in one batch and marks
// them synced with the returned id mapping. Used by the per-service Sync
// methods.
func (c *collection[ID, T]) push(ctx context.Context, api apiclient.Client, path string) error {
	pending := c.ListForSync(ctx)
	if len(pending) == 0 {
		return nil
	}

	resp, err := api.Post(ctx, path, pending)
	if err != nil {
		return fmt.Errorf("pushing %s: %w", c.key, err)
	}

	var acks []ack[ID]
	if err := json.Unmarshal(resp, &acks); err != nil {
		return fmt.Errorf("decoding sync acknowledgment for %s: %w", c.key, err)
	}

	localIDs := make([]ID, 0, len(acks))
	serverIDs := make(map[ID]ID, len(acks))
	for _, a := range acks {
		localIDs = append(localIDs, a.LocalID)
		serverIDs[a.LocalID] = a.ID
	}
	return c.MarkSynced(ctx, localIDs, serverIDs)
}
