// Package api exposes the authentication endpoints over HTTP/JSON using gin.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lenshive/backend/internal/config"
	"github.com/lenshive/backend/internal/logging"
	"github.com/lenshive/backend/internal/models"
)

// AuthService is the slice of the auth service the HTTP layer depends on.
type AuthService interface {
	Register(ctx context.Context, email, fullName, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ResolveToken(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, userID string) error
	EmailRegistered(ctx context.Context, email string) (bool, error)
}

type Server struct {
	address     string
	corsOrigins []string
	auth        AuthService
	logger      logging.Logger
}

func NewServer(cfg *config.Config, l logging.Logger, auth AuthService) *Server {
	gin.SetMode(cfg.GinMode)

	return &Server{
		address:     cfg.EndpointAddrHTTP,
		corsOrigins: strings.Split(cfg.CORSAllowedOrigins, ","),
		auth:        auth,
		logger:      l.With("module", "http_server"),
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.corsOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", s.health)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.GET("/test", s.testConnection)
			auth.POST("/register", s.register)
			auth.POST("/login", s.login)
			auth.POST("/logout", s.requireToken(), s.logout)
		}

		api.GET("/user/profile", s.requireToken(), s.profile)
	}

	return router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "lenshive-api",
	})
}
