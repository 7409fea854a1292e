// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskdeck/internal/delivery/http/middleware"
	"taskdeck/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	TaskHandler    *handler.TaskHandler
	UploadHandler  *handler.UploadHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	taskHandler    *handler.TaskHandler
	uploadHandler  *handler.UploadHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		taskHandler:    params.TaskHandler,
		uploadHandler:  params.UploadHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Registration and lookup are public: the client holds a freshly minted
	// provider token but may not have a local account row yet.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.accountHandler.Login)
	}

	userGroup := api.Group("/users")
	{
		userGroup.GET("/:externalUid", r.accountHandler.GetUser)
		userGroup.POST("", r.accountHandler.FindOrCreate)

		// Mutations require proof of identity.
		userGroup.PUT("/:externalUid", r.accountHandler.UpdateProfile, r.authMiddleware.Authenticate)
		userGroup.DELETE("/:externalUid", r.accountHandler.DeleteAccount, r.authMiddleware.Authenticate)
	}

	taskGroup := api.Group("/tasks")
	taskGroup.Use(r.authMiddleware.Authenticate)
	{
		taskGroup.GET("", r.taskHandler.List)
		taskGroup.POST("", r.taskHandler.Create)
		taskGroup.PUT("/:id", r.taskHandler.Update)
		taskGroup.DELETE("/:id", r.taskHandler.Delete)
	}

	uploadGroup := api.Group("/upload")
	uploadGroup.Use(r.authMiddleware.Authenticate)
	{
		uploadGroup.POST("", r.uploadHandler.Upload)
		uploadGroup.DELETE("/*", r.uploadHandler.Delete)
	}
}
