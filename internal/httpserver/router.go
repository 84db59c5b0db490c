package httpserver

import (
	"github.com/labstack/echo/v4"

	authmw "github.com/Revasall/TO-DO-List-project/internal/middleware/auth"
)

type Deps struct {
	AuthHandler *AuthHTTP
	UserHandler *UserHTTP
	TaskHandler *TaskHTTP
	Auth        *authmw.RequireAuth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)

	users := v1.Group("/users", d.Auth.Middleware)
	users.GET("/me", d.UserHandler.Me)
	users.PUT("/me", d.UserHandler.UpdateMe)
	users.DELETE("/me", d.UserHandler.DeleteMe)

	tasks := v1.Group("/user/tasks", d.Auth.Middleware)
	tasks.POST("", d.TaskHandler.Create)
	tasks.GET("", d.TaskHandler.List)
	tasks.GET("/:id", d.TaskHandler.Get)
	tasks.PUT("/:id", d.TaskHandler.Update)
	tasks.DELETE("/:id", d.TaskHandler.Delete)
}
