package kvstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/daybook/internal/cryptox"
	"github.com/dmitrijs2005/daybook/internal/logging"
)

const testPrefix = "daybook:"

func newTestStore(t *testing.T) (*Store, *MemoryMedium) {
	t.Helper()
	medium := NewMemoryMedium()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := New(medium, cryptox.NewCodec("test-secret"), testPrefix, log)
	return s, medium
}

func TestStore_SetGet_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "items", []any{map[string]any{"a": float64(1)}}, false))

	got, err := s.Get(ctx, "items", false)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": float64(1)}}, got)
}

func TestStore_Get_AbsentKey(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.Get(context.Background(), "missing", false)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Get_RawStringFallback(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()

	// Simulates a value written by an earlier release that skipped JSON
	// serialization.
	require.NoError(t, medium.Write(ctx, testPrefix+"legacy", "not json at all"))

	got, err := s.Get(ctx, "legacy", false)
	require.NoError(t, err)
	assert.Equal(t, "not json at all", got)
}

func TestStore_Set_Encrypted_SniffedOnRead(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()

	value := map[string]any{"token": "s3cret"}
	require.NoError(t, s.Set(ctx, "session", value, true))

	raw, ok, err := medium.Read(ctx, testPrefix+"session")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(raw, encMarker))
	assert.NotContains(t, raw, "s3cret")

	// Read without the decrypt flag: the marker sniff must kick in.
	got, err := s.Get(ctx, "session", false)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestStore_Get_CorruptCiphertextReturnsNil(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, medium.Write(ctx, testPrefix+"corrupt", encMarker+"@@not-base64@@"))

	got, err := s.Get(ctx, "corrupt", true)
	require.NoError(t, err, "a corrupt encrypted blob must not crash a read path")
	assert.Nil(t, got)
}

func TestStore_GetJSON_Typed(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	type item struct {
		Name string `json:"name"`
	}

	require.NoError(t, s.Set(ctx, "typed", []item{{Name: "x"}}, false))

	var got []item
	ok, err := s.GetJSON(ctx, "typed", &got, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []item{{Name: "x"}}, got)

	ok, err = s.GetJSON(ctx, "missing", &got, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_GetJSON_ShapeMismatch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "scalar", 42, false))

	var got []string
	_, err := s.GetJSON(ctx, "scalar", &got, false)
	require.Error(t, err)
}

func TestStore_Remove_AbsentIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Remove(context.Background(), "missing"))
}

func TestStore_Clear_OnlyOwnNamespace(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", 1, false))
	require.NoError(t, s.Set(ctx, "b", 2, false))
	require.NoError(t, medium.Write(ctx, "other-app:c", "keep me"))

	require.NoError(t, s.Clear(ctx))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	val, ok, err := medium.Read(ctx, "other-app:c")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "keep me", val)
}

func TestStore_Keys_StripsPrefix(t *testing.T) {
	s, medium := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "one", 1, false))
	require.NoError(t, s.Set(ctx, "two", 2, false))
	require.NoError(t, medium.Write(ctx, "foreign", "x"))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, keys)
}

func TestStore_SizeReport_SortedDescending(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "small", "x", false))
	require.NoError(t, s.Set(ctx, "large", strings.Repeat("y", 500), false))

	report, err := s.SizeReport(ctx)
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "large", report.Entries[0].Key)
	assert.Equal(t, "small", report.Entries[1].Key)
	assert.Equal(t, report.Entries[0].Bytes+report.Entries[1].Bytes, report.TotalBytes)
}

func TestStore_SizeReport_DecryptsPreview(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "enc", map[string]any{"mood": 4}, true))

	report, err := s.SizeReport(ctx)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Contains(t, report.Entries[0].Preview, `"mood"`)
}

// failingMedium rejects writes to exercise error propagation.
type failingMedium struct {
	*MemoryMedium
	writeErr error
}

func (m *failingMedium) Write(ctx context.Context, key, value string) error {
	return m.writeErr
}

func TestStore_Set_WriteFailurePropagates(t *testing.T) {
	medium := &failingMedium{MemoryMedium: NewMemoryMedium(), writeErr: errors.New("disk full")}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := New(medium, cryptox.NewCodec("test-secret"), testPrefix, log)

	err := s.Set(context.Background(), "k", "v", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))
}
