package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/supplyline/catsync/internal/domain"
)

// Authenticate exchanges email/password for a bearer token and optional
// customer key, and installs them on the client.
func (c *Client) Authenticate(ctx context.Context, email, password, callbackData string) (Credentials, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	if callbackData != "" {
		payload["callbackData"] = callbackData
	}

	body, err := c.Request(ctx, http.MethodPost, EndpointAuthenticate, payload, withSkipAuth())
	if err != nil {
		return Credentials{}, err
	}

	var resp AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Credentials{}, fmt.Errorf("%w: decoding auth response: %v", domain.ErrClient, err)
	}
	if resp.Data.Token == "" {
		return Credentials{}, fmt.Errorf("%w: no token in auth response", domain.ErrAuth)
	}

	creds := Credentials{Token: resp.Data.Token, CustomerKey: resp.Data.CustomerAPIKey}
	c.SetCredentials(creds)
	return creds, nil
}

// TestConnection verifies credentials against the customer endpoint.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Request(ctx, http.MethodGet, EndpointCustomerGet, nil)
	return err
}

// GetCategories fetches the full remote category tree.
func (c *Client) GetCategories(ctx context.Context) ([]domain.RemoteCategory, error) {
	body, err := c.Request(ctx, http.MethodGet, EndpointCategories, nil)
	if err != nil {
		return nil, err
	}

	var resp CategoriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding categories: %v", domain.ErrClient, err)
	}
	return resp.Data, nil
}

// GetProducts fetches one page of the product listing.
func (c *Client) GetProducts(ctx context.Context, query ProductsQuery) (*ProductsPage, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = DefaultPageSize
	}

	body, err := c.Request(ctx, http.MethodPost, EndpointProductsList, query)
	if err != nil {
		return nil, err
	}

	var page ProductsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: decoding products page: %v", domain.ErrClient, err)
	}
	return &page, nil
}

// GetProductDetail fetches one product with full detail.
func (c *Client) GetProductDetail(ctx context.Context, productID uint64) (*domain.RemoteProduct, error) {
	body, err := c.Request(ctx, http.MethodPost, fmt.Sprintf(EndpointProductDetail, productID), nil)
	if err != nil {
		return nil, err
	}

	var resp ProductDetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding product detail: %v", domain.ErrClient, err)
	}
	return &resp.Data, nil
}

// CreateOrder relays a storefront order to the supplier. Requires the
// customer key in addition to the bearer token.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest) (*OrderResponse, error) {
	body, err := c.Request(ctx, http.MethodPost, EndpointOrderCreate, order, WithAPIKey())
	if err != nil {
		return nil, err
	}

	var resp OrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding order response: %v", domain.ErrClient, err)
	}
	return &resp, nil
}

// GetOrderDetail fetches supplier-side state for one order line.
func (c *Client) GetOrderDetail(ctx context.Context, orderDetailID uint64) (*OrderResponse, error) {
	body, err := c.Request(ctx, http.MethodGet, fmt.Sprintf(EndpointOrderDetail, orderDetailID), nil)
	if err != nil {
		return nil, err
	}

	var resp OrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding order detail: %v", domain.ErrClient, err)
	}
	return &resp, nil
}

// CancelOrder asks the supplier to cancel an order line.
func (c *Client) CancelOrder(ctx context.Context, req OrderCancelRequest) error {
	_, err := c.Request(ctx, http.MethodPost, EndpointOrderCancel, req, WithAPIKey())
	return err
}
