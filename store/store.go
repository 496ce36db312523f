package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Keys used by the underwriting workflow.
const (
	KeyWorkingCapital = "wc_result"
	KeyAgriculture    = "agri_result"
	KeyBanking        = "banking_result"
	KeyCases          = "saved_cases"
)

var ErrClosed = errors.New("store is closed")

// Store is a small persistent key-value store with append-only lists.
// Values are JSON encoded.
type Store interface {
	// Get decodes the value stored under key into v. It reports false when the key is absent.
	Get(ctx context.Context, key string, v any) (bool, error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, v any) error
	// Append adds v to the end of the list stored under key.
	Append(ctx context.Context, key string, v any) error
	// List calls fn for each element of the list under key, oldest first.
	List(ctx context.Context, key string, fn func(raw json.RawMessage) error) error
	Close() error
}

// ListAll decodes every element of the list under key.
func ListAll[T any](ctx context.Context, s Store, key string) ([]T, error) {
	var items []T
	err := s.List(ctx, key, func(raw json.RawMessage) error {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
