package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/internal/archive"
	"github.com/profilenet/backend/internal/events"
	"github.com/profilenet/backend/pkg/contentid"
	"github.com/profilenet/backend/pkg/engine"
	"github.com/profilenet/backend/pkg/store"
)

type AppUser struct {
	UserID string
}

// App bundles the shared dependencies handlers reach through the
// request context. Events and Archive may be nil; both are nil-safe.
type App struct {
	Store      *store.Store
	Engine     engine.Client
	Events     *events.Publisher
	Archive    *archive.Archive
	ContentIDs *contentid.Generator
	APIKey     string
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
