// Package models defines the locally persisted record types shared by the
// entity storage services and the offline sync queue.
package models

import "time"

// Base carries the bookkeeping fields every stored record shares. The JSON
// field names are a compatibility contract with already-persisted data and
// with export/inspection tooling; do not rename them.
//
// ID is the server-assigned identifier and stays null until the first sync
// acknowledgment. LocalID is assigned once at creation and never changes; it
// is the join key during sync reconciliation.
type Base[ID comparable] struct {
	ID        *ID       `json:"id"`
	LocalID   ID        `json:"local_id"`
	CreatedAt time.Time `json:"created_at"`
	IsDeleted bool      `json:"is_deleted"`
	IsSynced  bool      `json:"is_synced"`
}

// Meta exposes the bookkeeping fields of an embedding record.
func (b *Base[ID]) Meta() *Base[ID] { return b }

// MatchesID reports whether the record is addressed by id, via either the
// server id or the local id.
func (b *Base[ID]) MatchesID(id ID) bool {
	if b.ID != nil && *b.ID == id {
		return true
	}
	return b.LocalID == id
}
