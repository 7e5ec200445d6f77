package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/idk-code404/TerminusChat/internal/auth"
	"github.com/idk-code404/TerminusChat/internal/config"
	"github.com/idk-code404/TerminusChat/internal/core"
	"github.com/idk-code404/TerminusChat/internal/identity"
)

// NewServer builds the HTTP server: health probe, REST account
// endpoints, and the WebSocket chat mount. The WS handler hangs off a
// plain mux because the upgrade must hijack the raw connection; gin
// serves everything else.
func NewServer(
	registry *core.Registry,
	dispatcher *core.Dispatcher,
	authService *auth.Service,
	identities *identity.Store,
	cfg *config.Config,
	logger *zerolog.Logger,
) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	handlers := NewAPIHandlers(authService, identities, logger)
	api := router.Group("/api")
	api.POST("/register", handlers.Register)
	api.POST("/login", handlers.Login)
	api.GET("/whoami", AuthMiddleware(authService, logger), handlers.WhoAmI)

	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(registry, dispatcher, cfg, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
