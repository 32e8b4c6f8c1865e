package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"hiregate/internal/auth/handler"
	"hiregate/internal/backend"
	"hiregate/internal/config"
	"hiregate/internal/guard"
	"hiregate/internal/middleware"
	"hiregate/internal/ratelimit"
	"hiregate/internal/session"
	"hiregate/internal/transport"
)

func setupHTTP(ctx context.Context, cfg config.Config, log zerolog.Logger) (http.Handler, func() error, error) {
	infra := setupInfra(ctx, cfg, log)

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessions := session.NewManager(cfg.Production())

	memoryStore := ratelimit.NewMemoryStore()
	var distributed ratelimit.Store
	if infra.Redis != nil {
		distributed = ratelimit.NewRedisStore(infra.Redis.Client)
	}
	limiter := ratelimit.NewSelector(distributed, memoryStore, cfg.Production(), log)

	api := backend.NewClient(cfg.BackendAPIURL, log)
	guards := guard.New(api, sessions, log)
	gate := middleware.NewGate(limiter, sessions, log)
	apiClient := transport.NewClient(cfg.BackendAPIURL, sessions, log)
	authHandler := handler.NewHandler(api, sessions, log)

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), gate.Handler())

	// ----------------------------
	// Public routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected route trees
	// ----------------------------

	employer := router.Group("/dashboard-employer")
	employer.Use(guards.Dashboard())
	employer.GET("/me", currentUser)
	employer.GET("/jobs", relay(apiClient, "/jobs/mine"))
	employer.GET("/applications", relay(apiClient, "/applications/received"))

	candidate := router.Group("/candidate")
	candidate.Use(guards.Dashboard())
	candidate.GET("/me", currentUser)
	candidate.GET("/applications", relay(apiClient, "/applications/mine"))

	// The onboarding tree only checks cookie presence; sharing the
	// dashboard guard here would bounce incomplete candidates in a loop.
	onboarding := router.Group("/candidate/onboarding")
	onboarding.Use(guards.Onboarding())
	onboarding.GET("", relay(apiClient, "/onboarding/status"))

	admin := router.Group("/admin")
	admin.Use(guards.Admin())
	admin.GET("/me", currentUser)
	admin.GET("/users", adminRelay(cfg, log, "/admin/users"))
	admin.GET("/verifications", adminRelay(cfg, log, "/admin/verifications"))

	// ----------------------------
	// Outer handler + cleanup
	// ----------------------------

	outer := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(router)

	cleanup := func() error {
		memoryStore.Close()
		if infra.Redis != nil {
			return infra.Redis.Close()
		}
		return nil
	}

	return outer, cleanup, nil
}

// currentUser returns the identity the guard already resolved for this
// render; no second backend call.
func currentUser(c *gin.Context) {
	user, ok := guard.UserFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": user}})
}

// relay proxies a read through the cookie-credentialed transport.
func relay(client *transport.Client, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := client.Do(c.Writer, c.Request, http.MethodGet, path, nil)
		if err != nil {
			// On an expired session the transport already wrote the
			// cookie deletions and login redirect.
			if !errors.Is(err, transport.ErrSessionExpired) {
				c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Upstream request failed."})
			}
			c.Abort()
			return
		}
		defer resp.Body.Close()
		c.DataFromReader(resp.StatusCode, resp.ContentLength, resp.Header.Get("Content-Type"), resp.Body, nil)
	}
}

// adminRelay proxies a read with the guard-validated token instead of the
// script-readable cookie.
func adminRelay(cfg config.Config, log zerolog.Logger, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := transport.NewAdminClient(cfg.BackendAPIURL, guard.AdminToken(c), log)
		resp, err := client.Do(c.Request.Context(), http.MethodGet, path, nil)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Upstream request failed."})
			c.Abort()
			return
		}
		defer resp.Body.Close()
		c.DataFromReader(resp.StatusCode, resp.ContentLength, resp.Header.Get("Content-Type"), resp.Body, nil)
	}
}
