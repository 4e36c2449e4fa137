package router

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"showcase/internal/auth"
	"showcase/internal/config"
	apperrors "showcase/internal/errors"
	"showcase/internal/handler"
	"showcase/internal/metrics"
	"showcase/internal/validate"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth    *handler.AuthHandler
	Project *handler.ProjectHandler
	Comment *handler.CommentHandler
	User    *handler.UserHandler
	Upload  *handler.UploadHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	m *metrics.Metrics,
	jwtService *auth.JWTService,
	h Handlers,
) {
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.Validator = &CustomValidator{validator: validate.New()}

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if m != nil {
		e.Use(m.Middleware())
		e.GET("/metrics", m.Handler())
	}
	// Leave headroom above the per-file limit for the other form fields.
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dB", 2*cfg.MaxUploadBytes)))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/uploads/:filename", h.Upload.Serve)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/projects", h.Project.List)
	api.GET("/projects/:id", h.Project.Get)
	api.GET("/projects/:id/comments", h.Comment.List)
	api.GET("/users/:id/profile", h.User.Profile)

	// Secured routes (require a bearer token)
	secured := api.Group("", auth.Middleware(jwtService))

	secured.GET("/me", h.User.Me)

	secured.POST("/projects", h.Project.Create)
	secured.PUT("/projects/:id", h.Project.Update)
	secured.DELETE("/projects/:id", h.Project.Delete)

	secured.POST("/projects/:id/comments", h.Comment.Create)
	secured.PUT("/comments/:id", h.Comment.Update)
	secured.DELETE("/comments/:id", h.Comment.Delete)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				status = handler.StatusOf(v.Error)
			}
			ev := log.Info()
			if status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperrors.FromValidator(err)
	}
	return nil
}
