package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// ChangeType tags a queued mutation.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// Change is one element of the offline sync queue: a mutation that must
// eventually reach the server. Data holds the entity payload as raw JSON so
// the wire/storage shape stays identical across entity types while each
// producer keeps its own typed payload.
type Change struct {
	ID        string          `json:"id"`
	Type      ChangeType      `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	IsSynced  bool            `json:"is_synced"`
}

// NewChange stamps a fresh, time-sortable identifier and the current time
// (epoch milliseconds) onto a mutation of the given type.
func NewChange(t ChangeType, payload any) (Change, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Change{}, fmt.Errorf("marshal change payload: %w", err)
	}
	return Change{
		ID:        ulid.Make().String(),
		Type:      t,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}
