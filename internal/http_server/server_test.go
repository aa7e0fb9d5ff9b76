package http_server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ro-aviation/skyhub/internal/app"
	"github.com/ro-aviation/skyhub/internal/http_server/controller"
	impl "github.com/ro-aviation/skyhub/internal/http_server/service"
	"github.com/ro-aviation/skyhub/internal/interfaces/config"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/notify"
	"github.com/ro-aviation/skyhub/internal/store"
)

func newTestSite(t *testing.T) (*echo.Echo, *app.State) {
	t.Helper()
	logger := log.NewNopLogger()
	notifier := notify.NewNotifierWithDelay(time.Hour)
	state := app.NewState("secret", notifier)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer

	httpConfig := &config.HttpServerConfig{
		Staff: &config.StaffConfig{AccessCode: "secret"},
		JWT:   &config.JWTConfig{Secret: "test-secret", ExpiresDuration: time.Hour},
	}
	site := &config.SiteConfig{AppId: "ro-aviation", AirlineName: "easyJet Ro-Aviation"}

	validator := impl.NewFieldValidator(&config.HttpServerLimit{FieldLengthMax: 200, MessageLengthMax: 2000})
	email := impl.NewEmailService(logger, &config.EmailConfig{Enabled: false})
	recordService := impl.NewRecordService(logger, store.NewMemory(), notifier, email, validator)
	t.Cleanup(recordService.Shutdown)
	staffService := impl.NewStaffService(logger, httpConfig, state)

	pageController := controller.NewPageHandler(logger, site, state, notifier, recordService)
	staffController := controller.NewStaffHandler(logger, staffService)

	e.GET("/", pageController.Index)
	e.GET("/views/:name", pageController.ViewPage)
	e.GET("/api/view", pageController.CurrentView)
	e.POST("/api/staff/login", staffController.StaffLogin)
	e.POST("/api/staff/logout", staffController.StaffLogout)

	return e, state
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDashboardRendersLoginUntilGatePassed(t *testing.T) {
	e, state := newTestSite(t)

	rec := get(e, "/views/staffDashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Staff Login")
	assert.NotContains(t, rec.Body.String(), "Staff Dashboard")

	require.True(t, state.AttemptLogin("secret"))

	// No second navigation: the kept request now renders the dashboard.
	rec = get(e, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Staff Dashboard")
}

func TestStaffLoginEndpoint(t *testing.T) {
	e, state := newTestSite(t)
	get(e, "/views/staffDashboard")

	rec := postForm(e, "/api/staff/login", "accessCode=wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "WRONG_ACCESS_CODE")
	assert.False(t, state.Authenticated())

	rec = postForm(e, "/api/staff/login", "accessCode=secret")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\"token\"")
	assert.Contains(t, rec.Body.String(), "staffDashboard")
	assert.True(t, state.Authenticated())

	rec = postForm(e, "/api/staff/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, state.Authenticated())
}

func TestCurrentViewReportsSubstitution(t *testing.T) {
	e, _ := newTestSite(t)
	get(e, "/views/staffDashboard")

	rec := get(e, "/api/view")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\"requested\":\"staffDashboard\"")
	assert.Contains(t, rec.Body.String(), "\"resolved\":\"staffLogin\"")
}

func TestUnknownViewFallsBackToHome(t *testing.T) {
	e, _ := newTestSite(t)
	rec := get(e, "/views/adminPanel")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Announcements")
}
