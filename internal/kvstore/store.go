package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/daybook/internal/cryptox"
	"github.com/dmitrijs2005/daybook/internal/logging"
)

// encMarker tags encrypted values on disk. Values written by Set with
// encryption enabled are stored as encMarker + base64 blob, so reads can
// tell ciphertext from plaintext JSON without guessing at the content.
const encMarker = "enc:"

// Store is the namespaced, JSON-serializing key-value store. All keys are
// persisted under a fixed prefix so Daybook data coexists safely with
// unrelated keys in the same medium.
type Store struct {
	medium Medium
	codec  *cryptox.Codec
	prefix string
	log    logging.Logger
}

// New builds a Store over the given medium. codec may not be nil; encryption
// is opted into per Set call.
func New(medium Medium, codec *cryptox.Codec, prefix string, log logging.Logger) *Store {
	return &Store{medium: medium, codec: codec, prefix: prefix, log: log}
}

// Set serializes value to JSON, optionally encrypts the text, and writes it
// under the namespaced key. Medium failures are propagated wrapped in
// ErrWrite, never swallowed.
func (s *Store) Set(ctx context.Context, key string, value any, encrypt bool) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: marshal %q: %v", ErrWrite, key, err)
	}

	text := string(data)
	if encrypt {
		blob, err := s.codec.Encrypt(text)
		if err != nil {
			return fmt.Errorf("%w: encrypt %q: %v", ErrWrite, key, err)
		}
		text = encMarker + blob
	}

	if err := s.medium.Write(ctx, s.prefix+key, text); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Get reads the value for key and returns its decoded JSON form (map, slice,
// string, number, bool) or nil when the key is absent.
//
// If decrypt is set, or the stored text carries the encrypted-value marker,
// the text is decrypted first; a decryption failure is logged and reported as
// an absent value rather than an error, so a corrupt blob cannot crash a read
// path. If the text does not parse as JSON, the raw string is returned as a
// best-effort fallback. Both policies are a compatibility contract with data
// written by earlier, less disciplined releases.
func (s *Store) Get(ctx context.Context, key string, decrypt bool) (any, error) {
	text, ok, err := s.readText(ctx, key, decrypt)
	if err != nil || !ok {
		return nil, err
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return text, nil
	}
	return value, nil
}

// GetJSON is the typed read used by the entity services: it unmarshals the
// stored value into v. It reports false when the key is absent or the value
// had to be discarded (failed decryption). A value that does not deserialize
// into v is an error for the caller to degrade on.
func (s *Store) GetJSON(ctx context.Context, key string, v any, decrypt bool) (bool, error) {
	text, ok, err := s.readText(ctx, key, decrypt)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal([]byte(text), v); err != nil {
		return false, fmt.Errorf("unmarshal %q: %w", key, err)
	}
	return true, nil
}

// readText resolves the stored text for key: raw medium read plus the
// ciphertext sniff/decrypt step shared by Get and GetJSON.
func (s *Store) readText(ctx context.Context, key string, decrypt bool) (string, bool, error) {
	raw, ok, err := s.medium.Read(ctx, s.prefix+key)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if !ok {
		return "", false, nil
	}

	if decrypt || strings.HasPrefix(raw, encMarker) {
		text, err := s.codec.Decrypt(strings.TrimPrefix(raw, encMarker))
		if err != nil {
			s.log.Error(ctx, "discarding undecryptable value", "key", key, "error", err)
			return "", false, nil
		}
		return text, true, nil
	}
	return raw, true, nil
}

// Remove deletes the namespaced key. Removing an absent key is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.medium.Delete(ctx, s.prefix+key); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Clear deletes every key in this store's namespace. Keys outside the prefix
// are untouched.
func (s *Store) Clear(ctx context.Context) error {
	keys, err := s.Keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Keys lists all keys in this store's namespace with the prefix stripped.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	all, err := s.medium.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	keys := make([]string, 0, len(all))
	for _, key := range all {
		if strings.HasPrefix(key, s.prefix) {
			keys = append(keys, strings.TrimPrefix(key, s.prefix))
		}
	}
	return keys, nil
}
