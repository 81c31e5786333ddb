package mapper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/catsync/internal/catalog"
	"github.com/supplyline/catsync/internal/domain"
)

// failingTaxonomy wraps a MemoryStore and fails creation for one slug.
type failingTaxonomy struct {
	*catalog.MemoryStore
	failSlug string
}

func (f *failingTaxonomy) CreateCategory(ctx context.Context, category *catalog.Category) (uint64, error) {
	if category.Slug == f.failSlug {
		return 0, errors.New("storage rejected term")
	}
	return f.MemoryStore.CreateCategory(ctx, category)
}

func TestSyncTreeMirrorsHierarchy(t *testing.T) {
	store := catalog.NewMemoryStore()
	s := NewCategorySyncer(store)
	ctx := context.Background()

	tree := []domain.RemoteCategory{
		{
			CategoryID: 1, Name: "Games",
			Children: []domain.RemoteCategory{
				{CategoryID: 2, Name: "Steam"},
				{CategoryID: 3, Name: "Epic Games"},
			},
		},
	}

	count := s.SyncTree(ctx, tree, 0)
	assert.Equal(t, 3, count)

	root, err := store.GetCategoryBySlug(ctx, "games")
	require.NoError(t, err)
	assert.Zero(t, root.ParentID)

	steam, err := store.GetCategoryBySlug(ctx, "steam")
	require.NoError(t, err)
	assert.Equal(t, root.ID, steam.ParentID)

	epic, err := store.GetCategoryBySlug(ctx, "epic-games")
	require.NoError(t, err)
	assert.Equal(t, root.ID, epic.ParentID)
}

func TestSyncTreeIsIdempotentAndReparents(t *testing.T) {
	store := catalog.NewMemoryStore()
	s := NewCategorySyncer(store)
	ctx := context.Background()

	// "Steam" starts life as a root term; the supplier later nests it.
	orphan := catalog.Category{Name: "Steam", Slug: "steam"}
	_, err := store.CreateCategory(ctx, &orphan)
	require.NoError(t, err)

	tree := []domain.RemoteCategory{
		{CategoryID: 1, Name: "Games", Children: []domain.RemoteCategory{{CategoryID: 2, Name: "Steam"}}},
	}

	s.SyncTree(ctx, tree, 0)
	s.SyncTree(ctx, tree, 0)

	root, err := store.GetCategoryBySlug(ctx, "games")
	require.NoError(t, err)

	steam, err := store.GetCategoryBySlug(ctx, "steam")
	require.NoError(t, err)
	assert.Equal(t, orphan.ID, steam.ID, "existing term is adopted, not duplicated")
	assert.Equal(t, root.ID, steam.ParentID)
}

func TestSyncTreeFailedNodeSkipsBranchOnly(t *testing.T) {
	store := &failingTaxonomy{MemoryStore: catalog.NewMemoryStore(), failSlug: "broken"}
	s := NewCategorySyncer(store)
	ctx := context.Background()

	tree := []domain.RemoteCategory{
		{
			CategoryID: 1, Name: "Broken",
			Children: []domain.RemoteCategory{{CategoryID: 2, Name: "Orphaned Child"}},
		},
		{CategoryID: 3, Name: "Healthy Sibling"},
	}

	count := s.SyncTree(ctx, tree, 0)
	assert.Equal(t, 1, count)

	_, err := store.GetCategoryBySlug(ctx, "orphaned-child")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound, "children of a failed node are not attempted")

	_, err = store.GetCategoryBySlug(ctx, "healthy-sibling")
	assert.NoError(t, err, "sibling branches survive a failed node")
}

func TestResolveChain(t *testing.T) {
	store := catalog.NewMemoryStore()
	s := NewCategorySyncer(store)
	ctx := context.Background()

	// Product payloads carry the chain bottom-up.
	leaf := &domain.RemoteCategory{
		CategoryID: 3, Name: "Steam",
		Parent: &domain.RemoteCategory{CategoryID: 1, Name: "Games"},
	}

	termID, err := s.ResolveChain(ctx, leaf)
	require.NoError(t, err)

	steam, err := store.GetCategoryBySlug(ctx, "steam")
	require.NoError(t, err)
	assert.Equal(t, steam.ID, termID)

	root, err := store.GetCategoryBySlug(ctx, "games")
	require.NoError(t, err)
	assert.Equal(t, root.ID, steam.ParentID)
}

func TestResolveChainDepthLimit(t *testing.T) {
	s := NewCategorySyncer(catalog.NewMemoryStore())

	leaf := &domain.RemoteCategory{Name: "leaf"}
	node := leaf
	for i := 0; i < MaxCategoryDepth+1; i++ {
		node.Parent = &domain.RemoteCategory{Name: "up"}
		node = node.Parent
	}

	_, err := s.ResolveChain(context.Background(), leaf)
	assert.ErrorIs(t, err, domain.ErrCategoryDepth)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Steam Wallet 50 TL", "steam-wallet-50-tl"},
		{"Épée & Bouclier", "epee-bouclier"},
		{"  Çorum  Hediye  ", "corum-hediye"},
		{"UPPER_case.mixed", "upper-case-mixed"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}
