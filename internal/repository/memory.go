package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/supplyline/catsync/internal/domain"
)

// Memory is an in-memory implementation of Mapping, Stats and Settings.
// It backs unit tests and the CLI's dry-run mode.
type Memory struct {
	mu       sync.RWMutex
	mappings map[uint64]*domain.ProductMapping // keyed by local product ID
	runs     []domain.StatRecord
	settings map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		mappings: make(map[uint64]*domain.ProductMapping),
		settings: make(map[string]string),
	}
}

func (m *Memory) UpsertMapping(_ context.Context, mapping *domain.ProductMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// The new row supersedes any row it collides with on name hash or a
	// non-zero supplier product ID, matching the database's replace
	// semantics.
	for id, mp := range m.mappings {
		if id == mapping.LocalProductID {
			continue
		}
		if mp.NameHash == mapping.NameHash ||
			(mapping.SupplierProductID != 0 && mp.SupplierProductID == mapping.SupplierProductID) {
			delete(m.mappings, id)
		}
	}

	cp := *mapping
	m.mappings[mapping.LocalProductID] = &cp
	return nil
}

func (m *Memory) GetBySupplierProductID(_ context.Context, supplierProductID uint64) (*domain.ProductMapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, mp := range m.mappings {
		if mp.SupplierProductID != 0 && mp.SupplierProductID == supplierProductID {
			cp := *mp
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: supplier product %d", domain.ErrMappingNotFound, supplierProductID)
}

func (m *Memory) GetByNameHash(_ context.Context, nameHash string) (*domain.ProductMapping, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, mp := range m.mappings {
		if mp.NameHash == nameHash {
			cp := *mp
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: name hash %s", domain.ErrMappingNotFound, nameHash)
}

func (m *Memory) CountMappings(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.mappings), nil
}

func (m *Memory) RecordRun(_ context.Context, record *domain.StatRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs = append(m.runs, *record)
	return nil
}

func (m *Memory) GetRunsSince(_ context.Context, since time.Time) ([]domain.StatRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.StatRecord
	for _, r := range m.runs {
		if !r.StatDate.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StatDate.After(out[j].StatDate) })
	return out, nil
}

func (m *Memory) PruneRunsBefore(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.runs[:0]
	pruned := 0
	for _, r := range m.runs {
		if r.StatDate.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, r)
	}
	m.runs = kept
	return pruned, nil
}

func (m *Memory) GetSetting(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.settings[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrSettingNotFound, key)
	}
	return v, nil
}

func (m *Memory) SetSetting(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings[key] = value
	return nil
}

func (m *Memory) DeleteSetting(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.settings, key)
	return nil
}
