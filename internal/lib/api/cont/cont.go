package cont

import (
	"context"

	"LeadDesk/entity"
)

type contextKey string

const userKey contextKey = "auth-user"

// PutUser stores the authenticated user in the request context.
func PutUser(ctx context.Context, user *entity.UserAuth) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the authenticated user from the request context.
func GetUser(ctx context.Context) *entity.UserAuth {
	if user, ok := ctx.Value(userKey).(*entity.UserAuth); ok {
		return user
	}
	return nil
}
