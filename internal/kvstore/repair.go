package kvstore

import (
	"context"
	"encoding/json"
	"strings"
)

// Repair normalizes the payload stored under key into the canonical
// "array of records" shape. It tolerates two historical write bugs: a bare
// object persisted where an array belongs, and a JSON string containing a
// second layer of JSON ("double serialization"). Running Repair on an
// already-canonical key is a no-op, so the operation is idempotent.
//
// Every branch is logged with the transformation applied, for audit purposes.
// An encrypted value is repaired in its decrypted form and written back
// encrypted.
func (s *Store) Repair(ctx context.Context, key string) error {
	raw, ok, err := s.medium.Read(ctx, s.prefix+key)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Info(ctx, "repair: key absent, nothing to do", "key", key)
		return nil
	}

	encrypted := strings.HasPrefix(raw, encMarker)
	text := raw
	if encrypted {
		decrypted, err := s.codec.Decrypt(strings.TrimPrefix(raw, encMarker))
		if err != nil {
			s.log.Error(ctx, "repair: undecryptable value, resetting to empty array", "key", key, "error", err)
			return s.writeRepaired(ctx, key, []any{}, encrypted)
		}
		text = decrypted
	}

	var outer any
	if err := json.Unmarshal([]byte(text), &outer); err != nil {
		s.log.Warn(ctx, "repair: unparseable value, resetting to empty array", "key", key)
		return s.writeRepaired(ctx, key, []any{}, encrypted)
	}

	switch v := outer.(type) {
	case []any:
		s.log.Info(ctx, "repair: already an array, nothing to do", "key", key)
		return nil

	case string:
		// Double serialization: the stored value is a JSON string whose
		// content is itself JSON.
		var inner any
		if err := json.Unmarshal([]byte(v), &inner); err == nil {
			switch iv := inner.(type) {
			case []any:
				s.log.Info(ctx, "repair: unwrapped double-serialized array", "key", key)
				return s.writeRepaired(ctx, key, iv, encrypted)
			case map[string]any:
				s.log.Info(ctx, "repair: wrapped double-serialized object into array", "key", key)
				return s.writeRepaired(ctx, key, []any{iv}, encrypted)
			}
		}
		s.log.Warn(ctx, "repair: string value with no usable content, resetting to empty array", "key", key)
		return s.writeRepaired(ctx, key, []any{}, encrypted)

	case map[string]any:
		s.log.Info(ctx, "repair: wrapped bare object into array", "key", key)
		return s.writeRepaired(ctx, key, []any{v}, encrypted)

	default:
		// Numbers, booleans, null: nothing recoverable.
		s.log.Warn(ctx, "repair: scalar value, resetting to empty array", "key", key)
		return s.writeRepaired(ctx, key, []any{}, encrypted)
	}
}

func (s *Store) writeRepaired(ctx context.Context, key string, value any, encrypt bool) error {
	return s.Set(ctx, key, value, encrypt)
}
