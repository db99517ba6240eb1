package httpserver

import (
	"context"

	"github.com/swpark/prayernote/internal/model"
)

type ctxKey string

const userKey ctxKey = "pn.user"

// WithUser stores the authenticated principal in context.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromCtx fetches the authenticated principal from context.
func UserFromCtx(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok
}
