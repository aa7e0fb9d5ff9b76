// Package http_server
package http_server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"

	"github.com/ro-aviation/skyhub/internal/app"
	"github.com/ro-aviation/skyhub/internal/http_server/controller"
	mid "github.com/ro-aviation/skyhub/internal/http_server/middleware"
	impl "github.com/ro-aviation/skyhub/internal/http_server/service"
	. "github.com/ro-aviation/skyhub/internal/interfaces"
	"github.com/ro-aviation/skyhub/internal/interfaces/service"
	"github.com/ro-aviation/skyhub/internal/notify"
)

type HttpServerShutdownCallback struct {
	serverHandler *echo.Echo
}

func NewHttpServerShutdownCallback(serverHandler *echo.Echo) *HttpServerShutdownCallback {
	return &HttpServerShutdownCallback{
		serverHandler: serverHandler,
	}
}

func (hc *HttpServerShutdownCallback) Invoke(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return hc.serverHandler.Shutdown(timeoutCtx)
}

type RecordServiceShutdownCallback struct {
	recordService service.RecordServiceInterface
}

func (rc *RecordServiceShutdownCallback) Invoke(_ context.Context) error {
	rc.recordService.Shutdown()
	return nil
}

func StartHttpServer(applicationContent *ApplicationContent) {
	config := applicationContent.ConfigManager().Config()
	logger := applicationContent.Logger()

	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	e.Logger.SetLevel(log.OFF)
	httpConfig := config.HttpServer

	renderer, err := NewRenderer()
	if err != nil {
		logger.FatalF("Unable to parse view templates: %v", err)
		return
	}
	e.Renderer = renderer

	switch httpConfig.ProxyType {
	case 0:
		e.IPExtractor = echo.ExtractIPDirect()
	case 1:
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	case 2:
		e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	default:
		logger.WarnF("Invalid proxy type %d, using default (direct)", httpConfig.ProxyType)
		e.IPExtractor = echo.ExtractIPDirect()
	}

	if httpConfig.SSL.ForceSSL {
		e.Use(middleware.HTTPSRedirect())
	}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(ctx echo.Context, err error, stack []byte) error {
			logger.ErrorF("Recovered from a fatal error: %v, stack: %s", err, string(stack))
			return err
		},
	}))

	loggerConfig := slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}
	e.Use(slogecho.NewWithConfig(slog.Default(), loggerConfig))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            httpConfig.SSL.HstsExpiredTime,
		HSTSExcludeSubdomains: !httpConfig.SSL.IncludeDomain,
	}))
	e.Use(middleware.CORS())
	if httpConfig.BodyLimit != "" {
		e.Use(middleware.BodyLimit(httpConfig.BodyLimit))
	}
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(mid.VisitorIdentity())

	if httpConfig.Limits.RateLimit <= 0 {
		logger.WarnF("Invalid rate limit value %d, using default 60", httpConfig.Limits.RateLimit)
		httpConfig.Limits.RateLimit = 60
	}
	if httpConfig.Limits.RateLimitDuration <= 0 {
		logger.WarnF("Invalid rate limit duration %v, using default 1m", httpConfig.Limits.RateLimitDuration)
		httpConfig.Limits.RateLimitDuration = time.Minute
	}

	ipLimiter := mid.NewSlidingWindowLimiter(
		httpConfig.Limits.RateLimitDuration,
		httpConfig.Limits.RateLimit,
	)
	cleanupInterval := httpConfig.Limits.RateLimitDuration * 2
	if cleanupInterval > time.Hour {
		cleanupInterval = time.Hour
	}
	ipLimiter.StartCleanup(cleanupInterval)

	jwtConfig := echojwt.Config{
		SigningKey:    []byte(httpConfig.JWT.Secret),
		TokenLookup:   "header:Authorization:Bearer ",
		SigningMethod: "HS512",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var data *service.ApiResponse[any]
			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				data = service.NewApiResponse[any](&service.ErrMissingOrMalformedJwt, service.Unsatisfied, nil)
			case errors.Is(err, echojwt.ErrJWTInvalid):
				data = service.NewApiResponse[any](&service.ErrInvalidOrExpiredJwt, service.Unsatisfied, nil)
			default:
				data = service.NewApiResponse[any](&service.ErrUnknown, service.Unsatisfied, nil)
			}
			return data.Response(c)
		},
	}
	jwtMiddleware := echojwt.WithConfig(jwtConfig)

	notifier := notify.NewNotifier()
	state := app.NewState(httpConfig.Staff.AccessCode, notifier)

	emailService := impl.NewEmailService(logger, httpConfig.Email)
	validator := impl.NewFieldValidator(httpConfig.Limits)
	recordService := impl.NewRecordService(logger, applicationContent.RecordStore(), notifier, emailService, validator)
	staffService := impl.NewStaffService(logger, httpConfig, state)

	recordController := controller.NewRecordHandler(logger, recordService, httpConfig.Limits.MaxStreamsPerClient)
	staffController := controller.NewStaffHandler(logger, staffService)
	pageController := controller.NewPageHandler(logger, config.Site, state, notifier, recordService)

	e.GET("/", pageController.Index)
	e.GET("/views/:name", pageController.ViewPage)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiGroup := e.Group("/api", mid.RateLimitMiddleware(ipLimiter, mid.IPKeyFunc))
	apiGroup.GET("/view", pageController.CurrentView)
	apiGroup.GET("/notice", pageController.Notice)
	apiGroup.POST("/booking", recordController.SubmitBooking)
	apiGroup.POST("/support", recordController.SubmitSupport)

	staffGroup := apiGroup.Group("/staff")
	staffGroup.POST("/login", staffController.StaffLogin)
	staffGroup.POST("/logout", staffController.StaffLogout)

	recordGroup := apiGroup.Group("/records")
	recordGroup.GET("/:collection", recordController.GetRecords)
	recordGroup.GET("/:collection/stream", recordController.StreamRecords)
	recordGroup.GET("/:collection/draft", recordController.GetDraft)
	recordGroup.PUT("/:collection/draft", recordController.SetDraft)
	recordGroup.DELETE("/:collection/draft", recordController.CancelEdit)
	recordGroup.POST("/:collection", recordController.CreateRecord, jwtMiddleware)
	recordGroup.PUT("/:collection/:id", recordController.UpdateRecord, jwtMiddleware)
	recordGroup.DELETE("/:collection/:id", recordController.DeleteRecord, jwtMiddleware)
	recordGroup.POST("/:collection/:id/edit", recordController.BeginEdit, jwtMiddleware)

	applicationContent.Cleaner().Add(&RecordServiceShutdownCallback{recordService: recordService})
	applicationContent.Cleaner().Add(NewHttpServerShutdownCallback(e))

	protocol := "http"
	if httpConfig.SSL.Enable {
		protocol = "https"
	}
	logger.InfoF("Starting %s server on %s", protocol, httpConfig.Address)
	logger.InfoF("Rate limit: %d requests per %v",
		httpConfig.Limits.RateLimit,
		httpConfig.Limits.RateLimitDuration)

	if httpConfig.SSL.Enable {
		err = e.StartTLS(
			httpConfig.Address,
			httpConfig.SSL.CertFile,
			httpConfig.SSL.KeyFile,
		)
	} else {
		err = e.Start(httpConfig.Address)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.FatalF("Http server error: %v", err)
	}
}
