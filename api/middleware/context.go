package middleware

import "context"

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "role"
)

// UserIDFromContext returns the authenticated user id, or empty string.
func UserIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(ctxUserID).(string); ok {
		return value
	}
	return ""
}

// RoleFromContext returns the authenticated role, or empty string.
func RoleFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(ctxRole).(string); ok {
		return value
	}
	return ""
}

// WithUserID seeds the context for tests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole seeds the context for tests.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxRole, role)
}
