// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/handler"
	"github.com/iliyamo/table-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only a health
// check, used by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the signup and signin endpoints. Neither
// requires an existing session; they are how a session is obtained.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/signup", a.Signup)
	e.POST("/signin", a.Signin)
}

// RegisterAPI registers the table catalog and reservation endpoints.
// Every route requires a valid Bearer token; the reservation routes
// additionally pass through the supplied rate limiter so a single
// caller cannot flood the admission engine. Pass nil to disable
// rate limiting.
func RegisterAPI(e *echo.Echo, t *handler.TableHandler, r *handler.ReservationHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	api := e.Group("")
	api.Use(middleware.JWTAuth(jwtSecret))

	api.GET("/tables", t.List)
	api.POST("/tables", t.Create)
	api.GET("/tables/:tableId", t.Get)

	res := api.Group("/reservations")
	if limiter != nil {
		res.Use(limiter)
	}
	res.GET("", r.List)
	res.POST("", r.Create)
}
