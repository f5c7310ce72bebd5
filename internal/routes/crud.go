package routes

import (
	"github.com/gin-gonic/gin"

	"crudbase/internal/entity"
	"crudbase/internal/handlers"
)

// CRUDRoutes mounts the five CRUD endpoints of one entity type under a path
// segment.
type CRUDRoutes[T entity.Entity] struct {
	path    string
	handler *handlers.CRUDHandler[T]
}

func NewCRUDRoutes[T entity.Entity](path string, handler *handlers.CRUDHandler[T]) *CRUDRoutes[T] {
	return &CRUDRoutes[T]{
		path:    path,
		handler: handler,
	}
}

func (r *CRUDRoutes[T]) Register(group *gin.RouterGroup) {
	g := group.Group("/" + r.path)

	g.GET("", r.handler.List)
	g.POST("", r.handler.Create)
	g.GET("/:id", r.handler.Get)
	g.PUT("/:id", r.handler.Update)
	g.DELETE("/:id", r.handler.Delete)
}
