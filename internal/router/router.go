// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/access"
	"github.com/iliyamo/medicamp-server/internal/config"
	"github.com/iliyamo/medicamp-server/internal/handler"
	"github.com/iliyamo/medicamp-server/internal/middleware"
)

// Handlers bundles every route handler.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Camps         *handler.CampHandler
	Registrations *handler.RegistrationHandler
	Reviews       *handler.ReviewHandler
	Payments      *handler.PaymentHandler
	Stats         *handler.StatsHandler
}

// Deps are the collaborators the middleware chain needs. Redis may be nil;
// the cache is then skipped and the rate limiter keeps buckets in memory.
type Deps struct {
	Config config.Config
	Tokens access.Verifier
	Roles  access.RoleLookup
	Redis  *redis.Client
	Log    *zap.Logger
}

// New builds an Echo instance with global middleware and every route.
func New(d Deps, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler(d.Log)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     d.Config.CORS.Origins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(middleware.NewTokenBucket(d.Config.RateLimit, d.Redis, d.Log))

	RegisterRoutes(e)
	RegisterAuth(e, h.Auth)
	RegisterUsers(e, d, h.Users)
	RegisterCatalog(e, d, h.Camps, h.Reviews, h.Stats)
	RegisterRegistrations(e, h.Registrations)
	RegisterPayments(e, d, h.Payments)
	return e
}

// RegisterRoutes registers the liveness endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the token exchange. It is public: the client
// calls it right after its identity provider signs the user in.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/jwt", a.IssueToken)
}

// RegisterUsers registers the user directory. Listing, promotion and
// deletion are admin-only; the admin check for an email is self-only.
func RegisterUsers(e *echo.Echo, d Deps, u *handler.UserHandler) {
	auth := middleware.RequireAuth(d.Tokens)
	admin := middleware.RequireAdmin(d.Roles)
	purge := middleware.PurgeOnWrite(d.Config.Cache, d.Redis, d.Log, "stats")

	e.POST("/users", u.Create, purge)
	e.GET("/user/:email", u.Get)
	e.PATCH("/user/:email", u.UpdateProfile)
	e.GET("/users/admin/:email", u.IsAdmin, auth, middleware.RequireSelf("email"))

	e.GET("/users", u.List, auth, admin)
	e.PATCH("/users/admin/:id", u.Promote, auth, admin)
	e.DELETE("/users/:id", u.Delete, auth, admin, purge)
}

// RegisterCatalog registers camps, reviews and the stats aggregate. Camp
// and stats reads are cached; camp writes purge both groups.
func RegisterCatalog(e *echo.Echo, d Deps, c *handler.CampHandler, r *handler.ReviewHandler, s *handler.StatsHandler) {
	cache := middleware.NewRedisCache(d.Config.Cache, d.Redis, d.Log)
	purge := middleware.PurgeOnWrite(d.Config.Cache, d.Redis, d.Log, "camps", "stats")

	e.GET("/camps", c.List, cache)
	e.GET("/camps/:id", c.Get, cache)
	e.POST("/camps", c.Create, purge)
	e.PATCH("/camps/:id", c.Update, purge)
	e.DELETE("/camps/:id", c.Delete, purge)

	e.POST("/reviews", r.Create)
	e.GET("/stats", s.Get, cache)
}

// RegisterRegistrations registers the pending-registration (cart) routes.
func RegisterRegistrations(e *echo.Echo, r *handler.RegistrationHandler) {
	e.GET("/register", r.ListByParticipant)
	e.POST("/register", r.Add)
	e.GET("/registers", r.ListAll)
	e.GET("/register/:id", r.Get)
	e.DELETE("/register/:id", r.Remove)
}

// RegisterPayments registers intents, settlement and the payment history.
func RegisterPayments(e *echo.Echo, d Deps, p *handler.PaymentHandler) {
	auth := middleware.RequireAuth(d.Tokens)
	admin := middleware.RequireAdmin(d.Roles)
	purge := middleware.PurgeOnWrite(d.Config.Cache, d.Redis, d.Log, "stats")

	e.POST("/create-payment-intent", p.CreateIntent)
	e.POST("/payments", p.Record, purge)

	e.GET("/payments", p.ListAll, auth, admin)
	e.GET("/payments/:email", p.ListByParticipant, auth, middleware.RequireSelf("email"))
	e.PATCH("/payments/:id", p.Confirm, auth, admin)
	e.DELETE("/payments/:id", p.Delete, auth, admin, purge)
}
