package domain

import "time"

// RemoteProduct is the supplier's view of a product. It is consumed once per
// sync pass and never persisted as-is.
type RemoteProduct struct {
	ProductID              uint64             `json:"productID"`
	ProductName            string             `json:"productName"`
	ProductDescription     string             `json:"productDescription"`
	SalePrice              float64            `json:"salePrice"`
	TotalStock             int                `json:"totalStock"`
	CategoryID             uint64             `json:"categoryID"`
	CategoryTree           []RemoteCategory   `json:"categoryTree,omitempty"`
	ProductMainImage       string             `json:"productMainImage"`
	ProductImages          []string           `json:"productImages,omitempty"`
	ProductRequire         []RequirementField `json:"productRequire,omitempty"`
	CustomerStoreProductID string             `json:"customerStoreProductID,omitempty"`
}

// ProductMapping is the durable link between a supplier product identity and
// a local product id.
//
// Invariants: SupplierProductID is unique when non-zero; NameHash is always
// unique. Rows are replaced on every successful upsert and never deleted by
// the sync engine.
type ProductMapping struct {
	SupplierProductID uint64    `json:"supplier_product_id" db:"supplier_product_id"`
	NameHash          string    `json:"product_name_hash" db:"product_name_hash"`
	LocalProductID    uint64    `json:"local_product_id" db:"local_product_id"`
	CategoryID        uint64    `json:"category_id" db:"category_id"`
	LastSyncedAt      time.Time `json:"last_synced_at" db:"last_synced_at"`
}

// RunSummary is the per-run outcome returned to every trigger unchanged.
type RunSummary struct {
	Categories int `json:"categories"`
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Errors     int `json:"errors"`
	Processed  int `json:"processed"`
}

// MapResult reports how the mapper resolved a single remote product.
type MapResult struct {
	LocalProductID uint64
	Created        bool
}
