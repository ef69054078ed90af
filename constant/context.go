package constant

type contextKey string

// UserIDKey holds the authenticated user id inside a request context.
const UserIDKey contextKey = "user_id"
