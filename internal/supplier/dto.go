package supplier

import "github.com/supplyline/catsync/internal/domain"

// envelope is the generic response wrapper the supplier API uses.
type envelope struct {
	Message string `json:"message"`
}

// AuthResponse carries the bearer token and the optional customer key
// returned by a successful login.
type AuthResponse struct {
	Data struct {
		Token          string `json:"token"`
		CustomerAPIKey string `json:"customerApiKey"`
	} `json:"data"`
}

// Credentials is the pair attached to authenticated requests.
type Credentials struct {
	Token       string
	CustomerKey string
}

// CategoriesResponse is the category listing payload.
type CategoriesResponse struct {
	Data []domain.RemoteCategory `json:"data"`
}

// ProductsPage is one page of the paginated product listing.
type ProductsPage struct {
	Data struct {
		Items   []domain.RemoteProduct `json:"items"`
		HasMore bool                   `json:"hasMore"`
		Total   int                    `json:"total"`
	} `json:"data"`
}

// ProductDetailResponse wraps a single detailed product.
type ProductDetailResponse struct {
	Data domain.RemoteProduct `json:"data"`
}

// ProductsQuery parameterizes the product listing endpoint.
type ProductsQuery struct {
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
	Detailed bool `json:"detailed"`
}

// OrderRequest is the payload relayed to the supplier when the storefront
// places an order for a synced product.
type OrderRequest struct {
	SupplierProductID uint64            `json:"productID"`
	Quantity          int               `json:"quantity"`
	RequireValues     map[string]string `json:"requireValues,omitempty"`
	CallbackData      string            `json:"callbackData,omitempty"`
}

// OrderResponse reports the supplier-side order identifiers.
type OrderResponse struct {
	Data struct {
		OrderID       uint64 `json:"orderID"`
		OrderDetailID uint64 `json:"orderDetailID"`
		Status        string `json:"status"`
	} `json:"data"`
}

// OrderCancelRequest identifies the order line to cancel.
type OrderCancelRequest struct {
	OrderDetailID uint64 `json:"orderDetailID"`
	Reason        string `json:"reason,omitempty"`
}
