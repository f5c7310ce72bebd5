package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"crudbase/internal/companion"
	"crudbase/internal/config"
	"crudbase/internal/database"
	"crudbase/internal/handlers"
	"crudbase/internal/metadata"
	"crudbase/internal/middlewares"
	"crudbase/internal/models"
	"crudbase/internal/routes"
)

// NewServer wires the whole application: config, pool, migrations, metadata
// registry, one companion and handler per entity type, routes. The returned
// cleanup closes the pool.
func NewServer(ctx context.Context, log *zap.Logger) (*http.Server, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	if err := database.RunMigrations(ctx, pool, log); err != nil {
		pool.Close()
		return nil, nil, err
	}

	registry := metadata.NewRegistry(pool)

	// Dependency injection
	contacts := companion.New(pool, registry, log, companion.Config[*models.Contact]{
		New:           func() *models.Contact { return &models.Contact{} },
		FilterColumns: []string{"name", "email", "phone"},
		DefaultOrder:  "created_at desc",
	})
	tasks := companion.New(pool, registry, log, companion.Config[*models.Task]{
		New:           func() *models.Task { return &models.Task{} },
		FilterColumns: []string{"title", "status"},
		DefaultOrder:  "created_at desc",
	})

	contactHandler := handlers.NewCRUDHandler(contacts, log, "email")
	taskHandler := handlers.NewCRUDHandler(tasks, log)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.RequestLogger(log),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			MaxAge:       12 * time.Hour,
		}),
	)

	routes.RegisterRoutes(router, contactHandler, taskHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	cleanup := func() {
		pool.Close()
	}
	return srv, cleanup, nil
}
