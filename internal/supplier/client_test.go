package supplier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/catsync/internal/domain"
)

// newTestClient wires a client against srv with throttling disabled and a
// recording backoff sleeper so tests never actually sleep.
func newTestClient(srv *httptest.Server) (*Client, *[]time.Duration) {
	c := NewClient(srv.URL, "TR", 5*time.Second, 0)
	c.SetCredentials(Credentials{Token: "test-token", CustomerKey: "test-key"})

	var slept []time.Duration
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	return c, &slept
}

func TestRequestRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer srv.Close()

	c, slept := newTestClient(srv)

	body, err := c.Request(context.Background(), http.MethodGet, "/Customer/Get", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"ok":true}}`, string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	// Backoff doubles per attempt: 2^1, 2^2 seconds.
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)
}

func TestRequestFailsAfterAttemptCap(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv)

	_, err := c.Request(context.Background(), http.MethodGet, "/Customer/Get", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServer)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "exactly 3 attempts, no more")
}

func TestRequestRateLimitedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv)

	_, err := c.Request(context.Background(), http.MethodGet, "/Customer/Get", nil)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestRequestClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such product"}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv)

	_, err := c.Request(context.Background(), http.MethodGet, "/Products/Detail/1", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrClient)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx must not be retried")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "no such product", apiErr.Message)
}

func TestRequestMissingTokenFailsFast(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv)
	c.SetCredentials(Credentials{})

	_, err := c.Request(context.Background(), http.MethodGet, "/Customer/Get", nil)
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Zero(t, atomic.LoadInt32(&calls), "no network call without credentials")
}

func TestRequestMissingCustomerKeyFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c, _ := newTestClient(srv)
	c.SetCredentials(Credentials{Token: "token-only"})

	_, err := c.Request(context.Background(), http.MethodPost, EndpointOrderCreate, nil, WithAPIKey())
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestRequestNetworkErrorRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, slept := newTestClient(srv)

	_, err := c.Request(context.Background(), http.MethodGet, "/Customer/Get", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Empty(t, *slept, "transport errors retry immediately, no backoff")
}

func TestRequestSendsHeaders(t *testing.T) {
	var gotAuth, gotRegion, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(HeaderAuthorization)
		gotRegion = r.Header.Get(HeaderRegionCode)
		gotKey = r.Header.Get(HeaderAPIKey)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv)

	_, err := c.Request(context.Background(), http.MethodPost, EndpointOrderCreate, nil, WithAPIKey())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "TR", gotRegion)
	assert.Equal(t, "test-key", gotKey)
}

func TestAuthenticate(t *testing.T) {
	t.Run("success installs credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, EndpointAuthenticate, r.URL.Path)
			assert.Empty(t, r.Header.Get(HeaderAuthorization), "login must not carry a bearer token")
			w.Write([]byte(`{"data":{"token":"abc","customerApiKey":"key-1"}}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "TR", 5*time.Second, 0)

		creds, err := c.Authenticate(context.Background(), "a@b.c", "secret", "")
		require.NoError(t, err)
		assert.Equal(t, "abc", creds.Token)
		assert.Equal(t, "key-1", creds.CustomerKey)
		assert.Equal(t, creds, c.credentials())
	})

	t.Run("missing token rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{}}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "TR", 5*time.Second, 0)

		_, err := c.Authenticate(context.Background(), "a@b.c", "secret", "")
		assert.ErrorIs(t, err, domain.ErrAuth)
	})
}

func TestGetProductsDefaults(t *testing.T) {
	var got ProductsQuery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"data":{"items":[{"productID":1,"productName":"Pin"}],"hasMore":false}}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv)

	page, err := c.GetProducts(context.Background(), ProductsQuery{Detailed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, DefaultPageSize, got.PageSize)
	assert.True(t, got.Detailed)
	require.Len(t, page.Data.Items, 1)
	assert.Equal(t, uint64(1), page.Data.Items[0].ProductID)
	assert.False(t, page.Data.HasMore)
}
