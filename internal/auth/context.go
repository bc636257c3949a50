// Package auth reads the caller identity off the request context. The
// identity collaborator authenticates upstream; this service only records who
// acted and treats the role as an opaque capability flag.
package auth

import "context"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
)

func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

func Role(ctx context.Context) string {
	if v, ok := ctx.Value(roleKey).(string); ok {
		return v
	}
	return ""
}

func IsAdmin(ctx context.Context) bool { return Role(ctx) == RoleAdmin }
