// Package controller
package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ro-aviation/skyhub/internal/app"
	"github.com/ro-aviation/skyhub/internal/interfaces/config"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	. "github.com/ro-aviation/skyhub/internal/interfaces/service"
	"github.com/ro-aviation/skyhub/internal/notify"
)

type PageControllerInterface interface {
	Index(ctx echo.Context) error
	ViewPage(ctx echo.Context) error
	CurrentView(ctx echo.Context) error
	Notice(ctx echo.Context) error
}

// PageController renders the site's views server-side. Which view
// renders is decided by the shared app state, so an unauthenticated
// request for the dashboard comes back as the login page.
type PageController struct {
	logger   log.LoggerInterface
	site     *config.SiteConfig
	state    *app.State
	notifier *notify.Notifier
	records  RecordServiceInterface
}

func NewPageHandler(
	logger log.LoggerInterface,
	site *config.SiteConfig,
	state *app.State,
	notifier *notify.Notifier,
	records RecordServiceInterface,
) *PageController {
	return &PageController{
		logger:   logger,
		site:     site,
		state:    state,
		notifier: notifier,
		records:  records,
	}
}

// PageData is everything a view template can reach.
type PageData struct {
	Site           *config.SiteConfig
	View           app.View
	Requested      app.View
	Authenticated  bool
	LoginError     string
	Notice         notify.Notice
	Lists          map[string][]record.Record
	FlightStatuses []string
}

func (controller *PageController) pageData() *PageData {
	data := &PageData{
		Site:           controller.site,
		View:           controller.state.Resolved(),
		Requested:      controller.state.Requested(),
		Authenticated:  controller.state.Authenticated(),
		LoginError:     controller.state.LoginError(),
		Notice:         controller.notifier.Current(),
		Lists:          make(map[string][]record.Record),
		FlightStatuses: record.FlightStatuses,
	}
	for _, kind := range record.Kinds() {
		data.Lists[kind.Collection] = controller.records.Records(kind.Collection)
	}
	return data
}

func (controller *PageController) render(ctx echo.Context) error {
	data := controller.pageData()
	return ctx.Render(http.StatusOK, string(data.View), data)
}

func (controller *PageController) Index(ctx echo.Context) error {
	return controller.render(ctx)
}

func (controller *PageController) ViewPage(ctx echo.Context) error {
	controller.state.Navigate(app.ParseView(ctx.Param("name")))
	return controller.render(ctx)
}

func (controller *PageController) CurrentView(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{
		"requested": string(controller.state.Requested()),
		"resolved":  string(controller.state.Resolved()),
	})
}

func (controller *PageController) Notice(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, controller.notifier.Current())
}
