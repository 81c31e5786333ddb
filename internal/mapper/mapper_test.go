package mapper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/catsync/internal/catalog"
	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/repository"
)

func newTestMapper(t *testing.T) (*Mapper, *catalog.MemoryStore, *repository.Memory) {
	t.Helper()

	store := catalog.NewMemoryStore()
	repo := repository.NewMemory()

	images, err := NewImageSyncer(store)
	require.NoError(t, err)

	m := New(store, repo, NewResolver(repo, store), NewCategorySyncer(store), images)
	m.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return m, store, repo
}

func remoteFixture() *domain.RemoteProduct {
	return &domain.RemoteProduct{
		ProductID:        101,
		ProductName:      "Steam Wallet 50 TL",
		SalePrice:        100,
		TotalStock:       25,
		CategoryID:       7,
		ProductMainImage: "https://cdn.example.com/steam-50.png",
	}
}

func TestMapProductCreatesThenUpdates(t *testing.T) {
	m, store, repo := newTestMapper(t)
	ctx := context.Background()
	settings := domain.DefaultSyncSettings()

	result, err := m.MapProduct(ctx, remoteFixture(), settings)
	require.NoError(t, err)
	assert.True(t, result.Created)

	product, err := store.GetProduct(ctx, result.LocalProductID)
	require.NoError(t, err)
	assert.Equal(t, "Steam Wallet 50 TL", product.Title)
	assert.Equal(t, "steam-wallet-50-tl", product.Slug)
	assert.Equal(t, catalog.StatusPublished, product.Status)
	assert.Equal(t, 25, product.Stock)
	assert.True(t, product.InStock)
	assert.Equal(t, "101", product.Metadata[catalog.MetaSupplierProductID])

	mapping, err := repo.GetBySupplierProductID(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, result.LocalProductID, mapping.LocalProductID)
	assert.Equal(t, uint64(7), mapping.CategoryID)

	// Second pass with new stock resolves to the same product.
	updated := remoteFixture()
	updated.TotalStock = 0

	result2, err := m.MapProduct(ctx, updated, settings)
	require.NoError(t, err)
	assert.False(t, result2.Created)
	assert.Equal(t, result.LocalProductID, result2.LocalProductID)

	product, err = store.GetProduct(ctx, result.LocalProductID)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
	assert.False(t, product.InStock)

	count, err := repo.CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "re-sync must not create a second mapping")
}

func TestMapProductCommissionPrice(t *testing.T) {
	m, store, _ := newTestMapper(t)
	ctx := context.Background()

	settings := domain.DefaultSyncSettings()
	settings.Commission = 15
	settings.PricePrecision = 2

	remote := remoteFixture()
	remote.SalePrice = 9.99

	result, err := m.MapProduct(ctx, remote, settings)
	require.NoError(t, err)

	product, err := store.GetProduct(ctx, result.LocalProductID)
	require.NoError(t, err)
	assert.InDelta(t, 11.49, product.Price, 0.0001) // 9.99 * 1.15 = 11.4885, rounded at write
}

func TestMapProductPriceSyncDisabled(t *testing.T) {
	m, store, _ := newTestMapper(t)
	ctx := context.Background()

	settings := domain.DefaultSyncSettings()
	result, err := m.MapProduct(ctx, remoteFixture(), settings)
	require.NoError(t, err)

	// Operator pins a manual price, then disables price sync.
	product, err := store.GetProduct(ctx, result.LocalProductID)
	require.NoError(t, err)
	product.Price = 42.5
	require.NoError(t, store.UpdateProduct(ctx, product))
	settings.SyncPrice = false

	_, err = m.MapProduct(ctx, remoteFixture(), settings)
	require.NoError(t, err)

	product, err = store.GetProduct(ctx, result.LocalProductID)
	require.NoError(t, err)
	assert.Equal(t, 42.5, product.Price)
}

func TestMapProductAssignsAllCategoryTreeEntries(t *testing.T) {
	m, store, _ := newTestMapper(t)
	ctx := context.Background()

	remote := remoteFixture()
	remote.CategoryTree = []domain.RemoteCategory{
		{CategoryID: 1, Name: "Gift Cards"},
		{
			CategoryID: 2, Name: "Steam",
			Parent: &domain.RemoteCategory{CategoryID: 1, Name: "Gift Cards"},
		},
	}

	result, err := m.MapProduct(ctx, remote, domain.DefaultSyncSettings())
	require.NoError(t, err)

	giftCards, err := store.GetCategoryBySlug(ctx, "gift-cards")
	require.NoError(t, err)
	steam, err := store.GetCategoryBySlug(ctx, "steam")
	require.NoError(t, err)

	product, err := store.GetProduct(ctx, result.LocalProductID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{giftCards.ID, steam.ID}, product.CategoryIDs,
		"every tree entry yields a term, not just the last one")
}

func TestMapProductSupersedesStaleNameHashMapping(t *testing.T) {
	m, _, repo := newTestMapper(t)
	ctx := context.Background()

	// Identity matching off except supplier ID, so a re-keyed product with
	// the same name becomes a second local product.
	settings := domain.DefaultSyncSettings()
	settings.MatchByName = false
	settings.MatchByTitle = false

	first := remoteFixture()
	rekeyed := remoteFixture()
	rekeyed.ProductID = 102

	r1, err := m.MapProduct(ctx, first, settings)
	require.NoError(t, err)
	r2, err := m.MapProduct(ctx, rekeyed, settings)
	require.NoError(t, err)
	require.NotEqual(t, r1.LocalProductID, r2.LocalProductID)

	count, err := repo.CountMappings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "a colliding name hash is superseded, never duplicated")

	mapping, err := repo.GetByNameHash(ctx, NameHash("Steam Wallet 50 TL"))
	require.NoError(t, err)
	assert.Equal(t, r2.LocalProductID, mapping.LocalProductID)
	assert.Equal(t, uint64(102), mapping.SupplierProductID)
}

func TestMapProductAttachesImagesOnce(t *testing.T) {
	m, store, _ := newTestMapper(t)
	ctx := context.Background()
	settings := domain.DefaultSyncSettings()

	remote := remoteFixture()
	remote.ProductImages = []string{"https://cdn.example.com/alt-1.png"}

	result, err := m.MapProduct(ctx, remote, settings)
	require.NoError(t, err)

	_, err = m.MapProduct(ctx, remote, settings)
	require.NoError(t, err)

	urls, err := store.ListImageURLs(ctx, result.LocalProductID)
	require.NoError(t, err)
	assert.Len(t, urls, 2, "repeat runs must not duplicate images")
	assert.Equal(t, "https://cdn.example.com/steam-50.png", urls[0], "main image is featured first")
}

func TestMapProductStoresRequirements(t *testing.T) {
	m, store, _ := newTestMapper(t)
	ctx := context.Background()

	remote := remoteFixture()
	remote.ProductRequire = []domain.RequirementField{
		{ID: 1, Identifier: "account_email", Title: "Account Email", Type: domain.FieldTypeText, Required: true},
	}

	result, err := m.MapProduct(ctx, remote, domain.DefaultSyncSettings())
	require.NoError(t, err)

	product, err := store.GetProduct(ctx, result.LocalProductID)
	require.NoError(t, err)

	fields, err := DecodeRequirements(product.Metadata[catalog.MetaRequirements])
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "account_email", fields[0].Identifier)
	assert.True(t, fields[0].Required)
}

func TestResolverPrecedence(t *testing.T) {
	ctx := context.Background()
	settings := domain.DefaultSyncSettings()

	t.Run("supplier id wins over conflicting name hash", func(t *testing.T) {
		store := catalog.NewMemoryStore()
		repo := repository.NewMemory()
		resolver := NewResolver(repo, store)

		require.NoError(t, repo.UpsertMapping(ctx, &domain.ProductMapping{
			SupplierProductID: 101, NameHash: "stale-hash", LocalProductID: 11,
		}))
		require.NoError(t, repo.UpsertMapping(ctx, &domain.ProductMapping{
			SupplierProductID: 202, NameHash: NameHash("Steam Wallet 50 TL"), LocalProductID: 22,
		}))

		id, found, err := resolver.Resolve(ctx, remoteFixture(), settings)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, uint64(11), id)
	})

	t.Run("name hash beats title scan", func(t *testing.T) {
		store := catalog.NewMemoryStore()
		repo := repository.NewMemory()
		resolver := NewResolver(repo, store)

		titleID, err := store.CreateProduct(ctx, &catalog.Product{Title: "Steam Wallet 50 TL"})
		require.NoError(t, err)
		require.NoError(t, repo.UpsertMapping(ctx, &domain.ProductMapping{
			NameHash: NameHash("Steam Wallet 50 TL"), LocalProductID: 33,
		}))

		id, found, err := resolver.Resolve(ctx, remoteFixture(), settings)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, uint64(33), id)
		assert.NotEqual(t, titleID, id)
	})

	t.Run("title scan as last resort", func(t *testing.T) {
		store := catalog.NewMemoryStore()
		repo := repository.NewMemory()
		resolver := NewResolver(repo, store)

		titleID, err := store.CreateProduct(ctx, &catalog.Product{Title: "Steam Wallet 50 TL"})
		require.NoError(t, err)

		id, found, err := resolver.Resolve(ctx, remoteFixture(), settings)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, titleID, id)
	})

	t.Run("all toggles off resolves nothing", func(t *testing.T) {
		store := catalog.NewMemoryStore()
		repo := repository.NewMemory()
		resolver := NewResolver(repo, store)

		_, err := store.CreateProduct(ctx, &catalog.Product{Title: "Steam Wallet 50 TL"})
		require.NoError(t, err)

		off := settings
		off.MatchBySupplierID = false
		off.MatchByName = false
		off.MatchByTitle = false

		_, found, err := resolver.Resolve(ctx, remoteFixture(), off)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestCommissionPrice(t *testing.T) {
	tests := []struct {
		name       string
		sale       float64
		commission float64
		precision  int
		want       float64
	}{
		{"no commission", 100, 0, 2, 100},
		{"ten percent", 100, 10, 2, 110},
		{"rounds at write", 9.99, 15, 2, 11.49},
		{"zero precision", 9.99, 15, 0, 11},
		{"negative margin", 100, -20, 2, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CommissionPrice(tt.sale, tt.commission, tt.precision), 0.0001)
		})
	}
}
