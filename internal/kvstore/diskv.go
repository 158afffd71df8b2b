package kvstore

import (
	"context"
	"fmt"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvMedium is a Medium backed by a diskv file store: one file per key
// under a base directory, with a small read-through cache.
type DiskvMedium struct {
	d *diskv.Diskv
}

// NewDiskvMedium creates a file-backed medium rooted at basePath.
func NewDiskvMedium(basePath string) *DiskvMedium {
	return &DiskvMedium{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return nil },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (m *DiskvMedium) Read(ctx context.Context, key string) (string, bool, error) {
	if !m.d.Has(key) {
		return "", false, nil
	}
	val, err := m.d.Read(key)
	if err != nil {
		return "", false, fmt.Errorf("diskv read %q: %w", key, err)
	}
	return string(val), true, nil
}

func (m *DiskvMedium) Write(ctx context.Context, key, value string) error {
	if err := m.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("diskv write %q: %w", key, err)
	}
	return nil
}

func (m *DiskvMedium) Delete(ctx context.Context, key string) error {
	if !m.d.Has(key) {
		return nil
	}
	if err := m.d.Erase(key); err != nil {
		return fmt.Errorf("diskv erase %q: %w", key, err)
	}
	return nil
}

func (m *DiskvMedium) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	for key := range m.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	return keys, nil
}
