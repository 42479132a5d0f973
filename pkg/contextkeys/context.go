package contextkeys

// Custom type so keys never collide with other packages.
type contextKey string

// DBContextKey is where the request-scoped *gorm.DB lives. The middleware
// also honours a transaction placed under this key in the request context.
const DBContextKey = contextKey("db")

// Keys set on *gin.Context by the auth middleware.
const (
	UserIDKey   = "userID"
	UsernameKey = "username"
	RoleKey     = "role"
)
