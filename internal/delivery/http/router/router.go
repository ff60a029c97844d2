// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/router/handler"
	"ratehub/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	StoreHandler   *handler.StoreHandler
	RatingHandler  *handler.RatingHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	storeHandler   *handler.StoreHandler
	ratingHandler  *handler.RatingHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		storeHandler:   params.StoreHandler,
		ratingHandler:  params.RatingHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.accountHandler.Signup)
		authGroup.POST("/login", r.accountHandler.Login)
	}

	// Account routes available to any authenticated role
	e.GET("/me", r.accountHandler.Me, r.authMiddleware.Authenticate)
	accountGroup := e.Group("/account")
	accountGroup.Use(r.authMiddleware.Authenticate)
	{
		accountGroup.PUT("/update-password", r.accountHandler.UpdatePassword)
	}

	// Normal-user routes: store browsing and the rating ledger.
	// Reads admit admins too; ledger writes stay user-only so an administrator
	// never authors ratings through this surface.
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	userGroup.Use(r.authMiddleware.RequireRole(entity.RoleUser, entity.RoleAdmin))
	{
		userOnly := r.authMiddleware.RequireRole(entity.RoleUser)

		userGroup.GET("/stores", r.storeHandler.ListStores)
		userGroup.GET("/stores/:id", r.storeHandler.GetStore)
		userGroup.POST("/stores/resolve-qr", r.storeHandler.ResolveStoreQR)
		userGroup.POST("/ratings", r.ratingHandler.SubmitRating, userOnly)
		userGroup.PUT("/ratings/:store_id", r.ratingHandler.UpdateRating, userOnly)
		userGroup.GET("/ratings", r.ratingHandler.ListMyRatings)
	}

	// Store-owner routes: visibility into the owner's stores
	ownerGroup := e.Group("/owner")
	ownerGroup.Use(r.authMiddleware.Authenticate)
	ownerGroup.Use(r.authMiddleware.RequireRole(entity.RoleStoreOwner, entity.RoleAdmin))
	{
		ownerGroup.GET("/ratings", r.ratingHandler.ListOwnerRatings)
		ownerGroup.GET("/average-rating", r.ratingHandler.OwnerAverages)
		ownerGroup.GET("/stores/:id/qrcode", r.storeHandler.StoreQRCode)
	}

	// Administrative routes: full control over users, stores and ratings
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/dashboard", r.adminHandler.Dashboard)

		adminGroup.POST("/users", r.adminHandler.CreateUser)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.GET("/users/:id", r.adminHandler.GetUser)
		adminGroup.PUT("/users/:id", r.adminHandler.UpdateUser)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteUser)

		adminGroup.POST("/stores", r.storeHandler.CreateStore)
		adminGroup.GET("/stores", r.storeHandler.AdminListStores)
		adminGroup.GET("/stores/:id", r.storeHandler.GetStore)
		adminGroup.PUT("/stores/:id", r.storeHandler.UpdateStore)
		adminGroup.DELETE("/stores/:id", r.storeHandler.DeleteStore)

		adminGroup.GET("/ratings", r.adminHandler.ListRatings)
		adminGroup.PUT("/ratings/:id", r.adminHandler.UpdateRating)
		adminGroup.DELETE("/ratings/:id", r.adminHandler.DeleteRating)
		adminGroup.GET("/ratings/averages", r.adminHandler.StoreAverages)
	}
}
