package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crudbase/internal/handlers"
	"crudbase/internal/models"
)

func RegisterRoutes(router *gin.Engine, contactHandler *handlers.CRUDHandler[*models.Contact], taskHandler *handlers.CRUDHandler[*models.Task]) {
	api := router.Group("/api/v1")

	NewCRUDRoutes("contacts", contactHandler).Register(api)
	NewCRUDRoutes("tasks", taskHandler).Register(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
