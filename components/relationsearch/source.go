package relationsearch

import (
	"context"
	"sync"

	"github.com/goliatone/go-relationfield/pkg/lookup"
)

// Source answers primary-key lookups. Implementations back the component
// with whatever store holds the referenced records.
type Source interface {
	ByPKs(ctx context.Context, ids []string) ([]lookup.Record, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context, ids []string) ([]lookup.Record, error)

// ByPKs calls the underlying function.
func (fn SourceFunc) ByPKs(ctx context.Context, ids []string) ([]lookup.Record, error) {
	return fn(ctx, ids)
}

// MapSource is an in-memory Source keyed by canonical identifier, useful for
// tests and demos.
type MapSource struct {
	mu      sync.RWMutex
	records map[string]lookup.Record
}

// NewMapSource seeds an in-memory source with records.
func NewMapSource(records ...lookup.Record) *MapSource {
	s := &MapSource{records: make(map[string]lookup.Record, len(records))}
	for _, record := range records {
		s.Put(record)
	}
	return s
}

// Put adds or replaces a record.
func (s *MapSource) Put(record lookup.Record) {
	if s == nil || record.ID == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = make(map[string]lookup.Record)
	}
	s.records[record.Key()] = record
}

// ByPKs returns the records whose identifiers are present, preserving the
// request order of the hits.
func (s *MapSource) ByPKs(ctx context.Context, ids []string) ([]lookup.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]lookup.Record, 0, len(ids))
	for _, id := range ids {
		if record, ok := s.records[id]; ok {
			out = append(out, record)
		}
	}
	return out, nil
}
