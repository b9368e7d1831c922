package deps

import (
	"context"
	"time"

	"quay/internal/auth"
	"quay/internal/logger"
	"quay/internal/nav"
	"quay/internal/web"
)

// Pinger is implemented by store backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries the shared dependencies handed to every route registrar.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Auth     *auth.Service
	Nav      *nav.Service
	Renderer *web.Renderer
	Pinger   Pinger // nil when the backend has no ping (memory store)

	CookieMaxAge time.Duration
	CookieSecure bool
	TrustProxy   bool
	AllowedHosts []string

	LoginBurst        int
	LoginRefillPerMin int

	BackupTrigger chan struct{} // nil when backups are disabled
}
