package catalog

import "context"

// Product status values
const (
	StatusDraft     = "draft"
	StatusPublished = "publish"
)

// Metadata keys attached to synced products
const (
	MetaSupplierProductID = "supplier_product_id"
	MetaNameHash          = "supplier_name_hash"
	MetaRequirements      = "supplier_requirements"
	MetaLastSynced        = "supplier_last_synced"
)

// Product is a storefront product as the catalogue stores see it.
type Product struct {
	ID          uint64
	Title       string
	Slug        string
	Description string
	Status      string
	Price       float64
	Stock       int
	InStock     bool
	CategoryIDs []uint64
	Metadata    map[string]string
}

// Category is a storefront taxonomy term.
type Category struct {
	ID       uint64
	Name     string
	Slug     string
	ParentID uint64
}

// ProductStore defines the interface for storefront product persistence
type ProductStore interface {
	CreateProduct(ctx context.Context, product *Product) (uint64, error)
	UpdateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, id uint64) (*Product, error)
	FindProductByTitle(ctx context.Context, title string) (*Product, error)
	SetProductMetadata(ctx context.Context, id uint64, key, value string) error
	SetProductCategories(ctx context.Context, id uint64, categoryIDs []uint64) error
}

// TaxonomyStore defines the interface for storefront category persistence
type TaxonomyStore interface {
	CreateCategory(ctx context.Context, category *Category) (uint64, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	UpdateCategoryParent(ctx context.Context, id, parentID uint64) error
}

// MediaStore defines the interface for product image attachment
type MediaStore interface {
	AttachImage(ctx context.Context, productID uint64, url string, featured bool) error
	ListImageURLs(ctx context.Context, productID uint64) ([]string, error)
}
