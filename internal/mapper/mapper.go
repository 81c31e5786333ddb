package mapper

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/supplyline/catsync/internal/catalog"
	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/logger"
	"github.com/supplyline/catsync/internal/metrics"
	"github.com/supplyline/catsync/internal/repository"
)

// Mapper upserts remote products into the local catalogue and maintains the
// identity mapping table.
type Mapper struct {
	products   catalog.ProductStore
	mappings   repository.Mapping
	resolver   *Resolver
	categories *CategorySyncer
	images     *ImageSyncer

	now func() time.Time
}

func New(products catalog.ProductStore, mappings repository.Mapping, resolver *Resolver, categories *CategorySyncer, images *ImageSyncer) *Mapper {
	return &Mapper{
		products:   products,
		mappings:   mappings,
		resolver:   resolver,
		categories: categories,
		images:     images,
		now:        time.Now,
	}
}

// CommissionPrice applies the configured markup and rounds at write time,
// never before.
func CommissionPrice(salePrice, commission float64, precision int) float64 {
	price := salePrice * (1 + commission/100)
	factor := math.Pow10(precision)
	return math.Round(price*factor) / factor
}

// MapProduct resolves the remote record to a local product, writes the core
// fields, then runs the best-effort post steps (categories, images, mapping
// row, requirement metadata). Post-step failures are logged and do not fail
// the mapping.
func (m *Mapper) MapProduct(ctx context.Context, remote *domain.RemoteProduct, settings domain.SyncSettings) (domain.MapResult, error) {
	log := logger.FromContext(ctx)

	localID, found, err := m.resolver.Resolve(ctx, remote, settings)
	if err != nil {
		return domain.MapResult{}, err
	}

	var product *catalog.Product
	created := !found
	if found {
		product, err = m.products.GetProduct(ctx, localID)
		if err != nil {
			return domain.MapResult{}, fmt.Errorf("%w: loading product %d: %v", domain.ErrMapping, localID, err)
		}
	} else {
		product = &catalog.Product{Metadata: make(map[string]string)}
	}
	if product.Metadata == nil {
		product.Metadata = make(map[string]string)
	}

	now := m.now()

	product.Title = remote.ProductName
	product.Slug = Slugify(remote.ProductName)
	product.Description = remote.ProductDescription
	product.Status = catalog.StatusPublished

	if settings.SyncPrice {
		product.Price = CommissionPrice(remote.SalePrice, settings.Commission, settings.PricePrecision)
	}
	if settings.SyncStock {
		product.Stock = remote.TotalStock
		product.InStock = remote.TotalStock > 0
	}

	product.Metadata[catalog.MetaSupplierProductID] = strconv.FormatUint(remote.ProductID, 10)
	product.Metadata[catalog.MetaNameHash] = NameHash(remote.ProductName)
	product.Metadata[catalog.MetaLastSynced] = now.UTC().Format(time.RFC3339)

	if created {
		if _, err := m.products.CreateProduct(ctx, product); err != nil {
			return domain.MapResult{}, fmt.Errorf("%w: creating product: %v", domain.ErrMapping, err)
		}
		metrics.ProductsCreated.Inc()
		log.Info("product created", "local_product_id", product.ID, "supplier_product_id", remote.ProductID)
	} else {
		if err := m.products.UpdateProduct(ctx, product); err != nil {
			return domain.MapResult{}, fmt.Errorf("%w: updating product %d: %v", domain.ErrMapping, product.ID, err)
		}
		metrics.ProductsUpdated.Inc()
		log.Info("product updated", "local_product_id", product.ID, "supplier_product_id", remote.ProductID)
	}

	m.runPostSteps(ctx, product, remote, settings, now)

	return domain.MapResult{LocalProductID: product.ID, Created: created}, nil
}

// runPostSteps performs the non-fatal follow-up writes after the product row
// is persisted.
func (m *Mapper) runPostSteps(ctx context.Context, product *catalog.Product, remote *domain.RemoteProduct, settings domain.SyncSettings, now time.Time) {
	log := logger.FromContext(ctx)

	if settings.SyncCategories && len(remote.CategoryTree) > 0 {
		// Every tree entry gets a term; entries may carry their own parent
		// chains. A failed entry is skipped, the rest are still assigned.
		termIDs := make([]uint64, 0, len(remote.CategoryTree))
		for i := range remote.CategoryTree {
			termID, err := m.categories.ResolveChain(ctx, &remote.CategoryTree[i])
			if err != nil {
				log.Warn("category resolution failed",
					"local_product_id", product.ID,
					"category", remote.CategoryTree[i].Name,
					"error", err.Error(),
				)
				continue
			}
			termIDs = append(termIDs, termID)
		}
		if len(termIDs) > 0 {
			if err := m.products.SetProductCategories(ctx, product.ID, termIDs); err != nil {
				log.Warn("category assignment failed", "local_product_id", product.ID, "error", err.Error())
			}
		}
	}

	if settings.SyncImages {
		if _, err := m.images.SyncImages(ctx, product.ID, remote.ProductMainImage, remote.ProductImages); err != nil {
			log.Warn("image sync failed", "local_product_id", product.ID, "error", err.Error())
		}
	}

	mapping := domain.ProductMapping{
		SupplierProductID: remote.ProductID,
		NameHash:          NameHash(remote.ProductName),
		LocalProductID:    product.ID,
		CategoryID:        remote.CategoryID,
		LastSyncedAt:      now,
	}
	if err := m.mappings.UpsertMapping(ctx, &mapping); err != nil {
		log.Warn("mapping upsert failed", "local_product_id", product.ID, "error", err.Error())
	}

	if len(remote.ProductRequire) > 0 {
		encoded, err := EncodeRequirements(remote.ProductRequire)
		if err != nil {
			log.Warn("requirement fields rejected", "local_product_id", product.ID, "error", err.Error())
		} else if err := m.products.SetProductMetadata(ctx, product.ID, catalog.MetaRequirements, encoded); err != nil {
			log.Warn("requirement metadata write failed", "local_product_id", product.ID, "error", err.Error())
		}
	}
}
