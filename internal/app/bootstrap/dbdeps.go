// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// DBDeps holds database/back-end dependencies for the app.
// Redis is nil when no redis_url is configured; callers must treat the
// cache as optional.
type DBDeps struct {
	PG    *pgxpool.Pool
	Redis *redis.Client
}
