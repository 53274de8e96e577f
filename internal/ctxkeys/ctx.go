package ctxkeys

import (
	"context"

	"github.com/templui/nocturne/internal/config"
	"github.com/templui/nocturne/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey       contextKey = "user"
	ConfigKey     contextKey = "config"
	AuthSourceKey contextKey = "auth_source"
)

// AuthSource records how the request authenticated.
type AuthSource string

const (
	AuthSourceNone   AuthSource = ""
	AuthSourceCookie AuthSource = "cookie"
	AuthSourceBearer AuthSource = "bearer"
)

func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func Auth(ctx context.Context) AuthSource {
	source, _ := ctx.Value(AuthSourceKey).(AuthSource)
	return source
}

func WithAuth(ctx context.Context, source AuthSource) context.Context {
	return context.WithValue(ctx, AuthSourceKey, source)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}
