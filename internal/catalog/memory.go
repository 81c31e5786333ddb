package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/supplyline/catsync/internal/domain"
)

// MemoryStore is an in-memory implementation of ProductStore, TaxonomyStore
// and MediaStore. It backs tests and the dry-run mode of the CLI.
type MemoryStore struct {
	mu         sync.RWMutex
	products   map[uint64]*Product
	categories map[uint64]*Category
	images     map[uint64][]string
	nextID     uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[uint64]*Product),
		categories: make(map[uint64]*Category),
		images:     make(map[uint64][]string),
		nextID:     1,
	}
}

func (s *MemoryStore) allocID() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *MemoryStore) CreateProduct(_ context.Context, product *Product) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.allocID()
	if product.Metadata == nil {
		product.Metadata = make(map[string]string)
	}
	cp := *product
	s.products[product.ID] = &cp
	return product.ID, nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, product *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return fmt.Errorf("%w: product %d", domain.ErrProductNotFound, product.ID)
	}
	cp := *product
	s.products[product.ID] = &cp
	return nil
}

func (s *MemoryStore) GetProduct(_ context.Context, id uint64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", domain.ErrProductNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) FindProductByTitle(_ context.Context, title string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if strings.EqualFold(p.Title, title) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: title %q", domain.ErrProductNotFound, title)
}

func (s *MemoryStore) SetProductMetadata(_ context.Context, id uint64, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("%w: product %d", domain.ErrProductNotFound, id)
	}
	if p.Metadata == nil {
		p.Metadata = make(map[string]string)
	}
	p.Metadata[key] = value
	return nil
}

func (s *MemoryStore) SetProductCategories(_ context.Context, id uint64, categoryIDs []uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("%w: product %d", domain.ErrProductNotFound, id)
	}
	p.CategoryIDs = append([]uint64(nil), categoryIDs...)
	return nil
}

func (s *MemoryStore) CreateCategory(_ context.Context, category *Category) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = s.allocID()
	cp := *category
	s.categories[category.ID] = &cp
	return category.ID, nil
}

func (s *MemoryStore) GetCategoryBySlug(_ context.Context, slug string) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: slug %q", domain.ErrCategoryNotFound, slug)
}

func (s *MemoryStore) UpdateCategoryParent(_ context.Context, id, parentID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return fmt.Errorf("%w: category %d", domain.ErrCategoryNotFound, id)
	}
	c.ParentID = parentID
	return nil
}

func (s *MemoryStore) AttachImage(_ context.Context, productID uint64, url string, featured bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return fmt.Errorf("%w: product %d", domain.ErrProductNotFound, productID)
	}
	if featured {
		s.images[productID] = append([]string{url}, s.images[productID]...)
		return nil
	}
	s.images[productID] = append(s.images[productID], url)
	return nil
}

func (s *MemoryStore) ListImageURLs(_ context.Context, productID uint64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.images[productID]...), nil
}
