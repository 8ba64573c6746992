package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// Auth
const (
	TokenCookieName   = "token"
	TokenTTL          = 7 * 24 * time.Hour
	MinPasswordLength = 8
	DefaultUserRole   = "user"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NotificationListLimit caps how many notifications a single listing returns.
const NotificationListLimit = 50

const RequestIDHeader = "X-Request-ID"
