package session

import (
	"context"
	"fmt"
	"go-forum-app/internal/config"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

// Manager is an interface that abstracts the session management implementation.
// *scs.SessionManager satisfies it.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	PopString(ctx context.Context, key string) string
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
}

// FlashKey is the session key of the one-shot alert shown after a failed form submission.
const FlashKey = "flash"

// New creates a cookie session manager persisted in db. The store follows
// the database driver; cleanupInterval of zero disables expired-session cleanup.
func New(cfg config.SessionConfig, db *sqlx.DB, secure bool, cleanupInterval time.Duration) (*scs.SessionManager, error) {
	sm := scs.New()
	switch db.DriverName() {
	case "sqlite3":
		sm.Store = sqlite3store.NewWithCleanupInterval(db.DB, cleanupInterval)
	case "mysql":
		sm.Store = mysqlstore.NewWithCleanupInterval(db.DB, cleanupInterval)
	default:
		return nil, fmt.Errorf("no session store for database driver %q", db.DriverName())
	}
	sm.Lifetime = time.Duration(cfg.Lifetime) * time.Hour
	if cfg.CookieName != "" {
		sm.Cookie.Name = cfg.CookieName
	}
	sm.Cookie.Persist = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm, nil
}
