// Package stubserver is a self-contained stand-in for the showroom sales
// backend. It exposes the same REST contract the client speaks, backed by an
// embedded SQLite database, so the client can be developed and exercised
// end to end without the real deployment.
package stubserver

import (
	"net/http"
	"time"

	"github.com/JaydevKalariyaa/proxima-sales/internal/config"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server hosts the stand-in backend.
type Server struct {
	cfg    config.DevAPIConfig
	db     *gorm.DB
	logger *zap.Logger
	tokens *utils.TokenManager
	router *gin.Engine
}

// New opens the SQLite database at cfg.DatabasePath, migrates the schema and
// builds the router. Use ":memory:" as the path for a throwaway instance.
func New(cfg config.DevAPIConfig, logger *zap.Logger) (*Server, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Client{}, &Sale{}, &SaleItem{}); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		db:     db,
		logger: logger,
		tokens: utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry),
	}
	s.router = s.buildRouter()
	return s, nil
}

// DB exposes the underlying database, for seeding.
func (s *Server) DB() *gorm.DB {
	return s.db
}

// Handler returns the HTTP handler, for mounting in tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured port until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("dev api listening", zap.String("port", s.cfg.Port))
	return s.router.Run(":" + s.cfg.Port)
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))
	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "Origin"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(newIPRateLimiter(s.cfg.RateLimit).middleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			respond(c, http.StatusOK, "ok", nil)
		})
		api.POST("/accounts/login/", s.login)

		authed := api.Group("", requireAuth(s.tokens))
		{
			authed.POST("/sales/", s.createSale)
			authed.GET("/sales/", s.listSales)
			authed.POST("/sales/:id/confirm/", s.confirmSale)
			authed.POST("/sales/:id/cancel/", s.cancelSale)

			authed.GET("/clients/", s.listClients)
			authed.DELETE("/clients/:id/", s.deleteClient)
		}
	}

	return router
}
