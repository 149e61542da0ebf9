package middleware

// gin context keys set by this package.
const (
	RequestIDKey = "request_id"
	ClientIPKey  = "client_ip"
)

const RequestIDHeader = "X-Request-ID"
