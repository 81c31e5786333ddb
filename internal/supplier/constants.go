package supplier

// Supplier API endpoints
const (
	EndpointAuthenticate   = "/Login/Customer/Api/Verify"
	EndpointCustomerGet    = "/Customer/Get"
	EndpointCategories     = "/Categories"
	EndpointProductsList   = "/Products/List"
	EndpointProductDetail  = "/Products/Detail/%d"
	EndpointOrderCreate    = "/Order/create"
	EndpointOrderDetail    = "/Order/detail/%d"
	EndpointOrderCancel    = "/Order/cancel"
)

// HTTP header names
const (
	HeaderRegionCode    = "h-region-code"
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "Apikey"
)

// Retry policy
const (
	MaxAttempts        = 3
	DefaultRateLimit   = 4 // requests per second
	DefaultPageSize    = 50
)

// Log messages
const (
	LogMsgRequestSuccess = "supplier request succeeded"
	LogMsgRequestFailed  = "supplier request failed"
	LogMsgRetrying       = "retrying supplier request"
)
