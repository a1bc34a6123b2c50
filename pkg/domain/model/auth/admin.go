package auth

import "context"

// Admin is the authenticated site owner carried on a request context.
type Admin struct {
	ID       int64
	Username string
}

type ctxAdminKey struct{}

// ContextWithAdmin returns a copy of ctx carrying admin.
func ContextWithAdmin(ctx context.Context, admin *Admin) context.Context {
	return context.WithValue(ctx, ctxAdminKey{}, admin)
}

// AdminFromContext returns the authenticated admin, or nil.
func AdminFromContext(ctx context.Context) *Admin {
	admin, _ := ctx.Value(ctxAdminKey{}).(*Admin)
	return admin
}
