package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/company"
	"kyc-backend/internal/shared/config"
	"kyc-backend/internal/shared/server/middleware"
	"kyc-backend/internal/shared/server/respond"
	"kyc-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	UsersHandler   *users.Handler
	CompanyHandler *company.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	deps.UsersHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth())
	deps.UsersHandler.RegisterProtectedRoutes(protected)
	deps.CompanyHandler.RegisterRoutes(protected)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
