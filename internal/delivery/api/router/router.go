// Package router wires the API handlers to their routes.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"shortlink/internal/delivery/api/middleware"
	"shortlink/internal/delivery/api/router/handler"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	LinkHandler    *handler.LinkHandler
	AuthMiddleware *middleware.AuthMiddleware
}

type router struct {
	accountHandler *handler.AccountHandler
	linkHandler    *handler.LinkHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		linkHandler:    params.LinkHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.accountHandler.Signup)
		authGroup.POST("/login", r.accountHandler.Login)
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate)

	accountGroup := apiV1.Group("/account")
	{
		accountGroup.GET("", r.accountHandler.GetProfile)
		accountGroup.PATCH("", r.accountHandler.UpdateProfile)
		accountGroup.DELETE("", r.accountHandler.DeleteAccount)
	}

	linksGroup := apiV1.Group("/links")
	{
		linksGroup.POST("", r.linkHandler.Shorten)
		linksGroup.GET("", r.linkHandler.List)
		linksGroup.GET("/:code", r.linkHandler.Resolve)
		linksGroup.GET("/:code/qr", r.linkHandler.QRCode)
	}
}
