package auth

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
)

type ctxKey struct{}

// SystemUser is the acting identity for event-driven and scheduled work.
const SystemUser model.UserID = "system"

// WithUserID stores the acting identity. Services never read it directly:
// handlers extract it and pass it as an explicit argument.
func WithUserID(ctx context.Context, userID model.UserID) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func GetUserID(ctx context.Context) model.UserID {
	if val, ok := ctx.Value(ctxKey{}).(model.UserID); ok {
		return val
	}
	return ""
}
