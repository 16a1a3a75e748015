package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kilnhq/kiln/internal"
	"github.com/kilnhq/kiln/pkg/session"
)

const (
	sessionKey           = "__session"
	sessionStoreKey      = "__session_store"
	sessionCookieNameKey = "__session_cookie_name"
)

// DefaultSessionCookieName names the session cookie.
const DefaultSessionCookieName = "KilnSession"

// DefaultSessionMaxAge is the session cookie lifetime.
const DefaultSessionMaxAge = time.Hour

// SessionConfig configures the session middleware.
type SessionConfig struct {
	CookieName        string
	MaxAge            time.Duration
	SameSite          http.SameSite
	Secure            bool
	SlidingExpiration bool
}

// SessionOption configures SessionConfig.
type SessionOption func(*SessionConfig)

// WithSessionCookieName overrides the session cookie name.
func WithSessionCookieName(name string) SessionOption {
	return func(cfg *SessionConfig) {
		if name != "" {
			cfg.CookieName = name
		}
	}
}

// WithSessionMaxAge sets the session cookie lifetime.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return func(cfg *SessionConfig) {
		if d > 0 {
			cfg.MaxAge = d
		}
	}
}

// WithSessionSecure marks the session cookie Secure.
func WithSessionSecure() SessionOption {
	return func(cfg *SessionConfig) {
		cfg.Secure = true
	}
}

// WithoutSlidingExpiration stops the session cookie from being reissued
// for established sessions. The cookie is set once when the session is
// created and then expires on its original schedule.
func WithoutSlidingExpiration() SessionOption {
	return func(cfg *SessionConfig) {
		cfg.SlidingExpiration = false
	}
}

// Session returns the middleware that attaches a session to every
// request. A request presenting a well-formed session cookie gets its
// session loaded from the store; anything else gets a fresh session whose
// cookie is also attached to forwarded sub-requests, so a login flow that
// forwards to an API route shares the brand-new session.
//
// The session cookie slides: it is reissued only once more than half of
// its lifetime has passed, which keeps active users signed in without
// writing a Set-Cookie header on every response. The session itself is
// saved back to the store when the dispatch finishes, whether it
// succeeded or not.
func Session(store session.Store, opts ...SessionOption) internal.Middleware {
	cfg := &SessionConfig{
		CookieName:        DefaultSessionCookieName,
		MaxAge:            DefaultSessionMaxAge,
		SameSite:          http.SameSiteLaxMode,
		SlidingExpiration: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return internal.Middleware{
		Name: "session",
		Kind: internal.KindSession,
		Handler: func(ctx *internal.Context) (res internal.Result, err error) {
			now := time.Now()
			ctx.Set(sessionCookieNameKey, cfg.CookieName)
			ctx.Set(sessionStoreKey, store)

			var sess *session.Session
			var incomingID string
			if c, ok := GetIncomingCookie(ctx, cfg.CookieName); ok && session.ValidID(c.Value) {
				incomingID = c.Value
				sess, err = store.FindOrCreate(ctx.Context(), incomingID)
			} else {
				id := uuid.NewString()
				sess, err = store.Create(ctx.Context(), id)
				ctx.SetForwardCookie(&http.Cookie{Name: cfg.CookieName, Value: id})
			}
			if err != nil {
				return internal.Result{}, err
			}
			ctx.Set(sessionKey, sess)

			defer func() {
				// The session in the bag may have been swapped by a
				// refresh; save whatever is current.
				current := currentSession(ctx)
				if current == nil {
					return
				}
				current.LastAccessAt = now
				if saveErr := store.Save(ctx.Context(), current); saveErr != nil {
					ctx.Logger().WarnContext(ctx.Context(), "failed to save session",
						slog.String("session_id", current.SessionID),
						slog.String("error", saveErr.Error()))
				}
			}()

			if sess.SessionID == incomingID {
				if !cfg.SlidingExpiration {
					return ctx.MoveForward()
				}
				elapsed := now.Sub(sess.LastStoreAt)
				if elapsed.Minutes() <= (cfg.MaxAge / 2).Minutes() {
					return ctx.MoveForward()
				}
			}

			sess.LastStoreAt = now
			SetCookie(ctx, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    sess.SessionID,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HttpOnly: true,
				SameSite: cfg.SameSite,
				Secure:   cfg.Secure,
			})
			return ctx.MoveForward()
		},
		OnAppStart: func(_ context.Context, sc *internal.StartupContext) error {
			cookies := sc.Position(internal.KindCookies)
			if cookies == -1 {
				return errors.New("session middleware cannot be used without the cookie middleware")
			}
			if sc.Position(internal.KindSession) <= cookies {
				return errors.New("cookie middleware must be set up before the session middleware")
			}
			return nil
		},
	}
}

func currentSession(ctx *internal.Context) *session.Session {
	if v, ok := ctx.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

func currentStore(ctx *internal.Context) session.Store {
	if v, ok := ctx.Get(sessionStoreKey); ok {
		if store, ok := v.(session.Store); ok {
			return store
		}
	}
	return nil
}

// SessionID returns the current session's ID, or "" when no session
// middleware ran.
func SessionID(ctx *internal.Context) string {
	if sess := currentSession(ctx); sess != nil {
		return sess.SessionID
	}
	return ""
}

// SessionCookieName returns the cookie name the session middleware was
// configured with.
func SessionCookieName(ctx *internal.Context) string {
	return ctx.GetString(sessionCookieNameKey)
}

// GetSessionValue reads a typed value from the current session.
func GetSessionValue[T any](ctx *internal.Context, key string) (T, bool) {
	var zero T
	sess := currentSession(ctx)
	if sess == nil {
		return zero, false
	}
	return session.Value[T](sess, key)
}

// SetSessionValue writes a value into the current session and saves the
// session immediately, so state written before a forwarded sub-request
// returns is visible to whoever re-reads the store.
func SetSessionValue(ctx *internal.Context, key string, value any) error {
	sess := currentSession(ctx)
	if sess == nil {
		return session.ErrNotFound
	}
	sess.Set(key, value)
	if store := currentStore(ctx); store != nil {
		return store.Save(ctx.Context(), sess)
	}
	return nil
}

// RemoveSessionValue deletes a value from the current session and saves
// the session immediately.
func RemoveSessionValue(ctx *internal.Context, key string) error {
	sess := currentSession(ctx)
	if sess == nil {
		return session.ErrNotFound
	}
	sess.Delete(key)
	if store := currentStore(ctx); store != nil {
		return store.Save(ctx.Context(), sess)
	}
	return nil
}

// RefreshSession replaces the in-flight session with a fresh read from
// the store. Used after a forwarded sub-request may have written session
// state under the same ID.
func RefreshSession(ctx *internal.Context) error {
	sess := currentSession(ctx)
	store := currentStore(ctx)
	if sess == nil || store == nil {
		return session.ErrNotFound
	}
	fresh, err := store.FindOrCreate(ctx.Context(), sess.SessionID)
	if err != nil {
		return err
	}
	ctx.Set(sessionKey, fresh)
	return nil
}

// ClearSessionValues drops every value from the current session while
// keeping its identity and timestamps.
func ClearSessionValues(ctx *internal.Context) error {
	sess := currentSession(ctx)
	if sess == nil {
		return session.ErrNotFound
	}
	sess.ClearValues()
	if store := currentStore(ctx); store != nil {
		return store.Save(ctx.Context(), sess)
	}
	return nil
}
