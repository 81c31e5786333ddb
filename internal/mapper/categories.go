package mapper

import (
	"context"
	"errors"
	"fmt"

	"github.com/supplyline/catsync/internal/catalog"
	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/logger"
)

// MaxCategoryDepth bounds the recursion over supplier category trees.
const MaxCategoryDepth = 16

// CategorySyncer mirrors the supplier's category tree onto local taxonomy
// terms, matching by slug.
type CategorySyncer struct {
	taxonomy catalog.TaxonomyStore
}

func NewCategorySyncer(taxonomy catalog.TaxonomyStore) *CategorySyncer {
	return &CategorySyncer{taxonomy: taxonomy}
}

// SyncTree walks the nested tree top-down. A failed node is logged and its
// branch skipped; siblings and the rest of the run continue. Returns the
// number of terms resolved or created.
func (s *CategorySyncer) SyncTree(ctx context.Context, nodes []domain.RemoteCategory, parentID uint64) int {
	return s.syncLevel(ctx, nodes, parentID, 0)
}

func (s *CategorySyncer) syncLevel(ctx context.Context, nodes []domain.RemoteCategory, parentID uint64, depth int) int {
	log := logger.FromContext(ctx)
	if depth >= MaxCategoryDepth {
		log.Warn("category tree truncated", "depth", depth)
		return 0
	}

	count := 0
	for i := range nodes {
		node := &nodes[i]
		termID, err := s.resolveNode(ctx, node, parentID)
		if err != nil {
			log.Error("category sync failed, skipping branch", "category", node.Name, "error", err.Error())
			continue
		}
		count++
		count += s.syncLevel(ctx, node.Children, termID, depth+1)
	}
	return count
}

// ResolveChain resolves a bottom-up parent chain (as carried on product
// payloads) and returns the leaf term ID.
func (s *CategorySyncer) ResolveChain(ctx context.Context, leaf *domain.RemoteCategory) (uint64, error) {
	// Flatten parent links into a root-first path.
	var path []*domain.RemoteCategory
	for node := leaf; node != nil; node = node.Parent {
		if len(path) >= MaxCategoryDepth {
			return 0, fmt.Errorf("%w: chain for %q", domain.ErrCategoryDepth, leaf.Name)
		}
		path = append([]*domain.RemoteCategory{node}, path...)
	}

	var parentID uint64
	for _, node := range path {
		termID, err := s.resolveNode(ctx, node, parentID)
		if err != nil {
			return 0, err
		}
		parentID = termID
	}
	return parentID, nil
}

// resolveNode finds the term by slug and reparents it, or creates it under
// the given parent.
func (s *CategorySyncer) resolveNode(ctx context.Context, node *domain.RemoteCategory, parentID uint64) (uint64, error) {
	slug := node.Slug
	if slug == "" {
		slug = Slugify(node.Name)
	}

	existing, err := s.taxonomy.GetCategoryBySlug(ctx, slug)
	if err == nil {
		if existing.ParentID != parentID {
			if err := s.taxonomy.UpdateCategoryParent(ctx, existing.ID, parentID); err != nil {
				return 0, fmt.Errorf("reparenting %q: %w", slug, err)
			}
		}
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		return 0, fmt.Errorf("looking up %q: %w", slug, err)
	}

	created := catalog.Category{Name: node.Name, Slug: slug, ParentID: parentID}
	id, err := s.taxonomy.CreateCategory(ctx, &created)
	if err != nil {
		return 0, fmt.Errorf("creating %q: %w", slug, err)
	}
	return id, nil
}
