package constants

// ContextKeyUser is the gin context key holding the authenticated user.
const ContextKeyUser = "current_user"

const (
	MinPasswordLength = 6
	MinNameLength     = 2
	MaxNameLength     = 255
)

// Pagination bounds shared by all list endpoints.
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)
