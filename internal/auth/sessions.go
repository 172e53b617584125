package auth

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/redis/go-redis/v9"
)

// NewSessionManager creates a session manager backed by Redis. Session
// state lives server-side; the cookie only carries the session token.
func NewSessionManager(rdb *redis.Client, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = goredisstore.New(rdb)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // secure cookies in production only

	return sm
}
