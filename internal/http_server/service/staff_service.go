package service

import (
	"github.com/ro-aviation/skyhub/internal/app"
	"github.com/ro-aviation/skyhub/internal/interfaces/config"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/interfaces/service"
	"github.com/thanhpk/randstr"
)

// StaffService drives the staff gate. A successful login opens the
// gate, lands on the dashboard and hands out a signed session token for
// the mutation endpoints.
type StaffService struct {
	logger log.LoggerInterface
	config *config.HttpServerConfig
	state  *app.State
}

func NewStaffService(logger log.LoggerInterface, config *config.HttpServerConfig, state *app.State) *StaffService {
	return &StaffService{
		logger: logger,
		config: config,
		state:  state,
	}
}

func (staffService *StaffService) StaffLogin(req *service.RequestStaffLogin) *service.ApiResponse[service.ResponseStaffLogin] {
	if !staffService.state.AttemptLogin(req.AccessCode) {
		staffService.logger.Warn("Staff login rejected: wrong access code")
		return service.NewApiResponse[service.ResponseStaffLogin](&service.ErrWrongAccessCode, service.Unsatisfied, nil)
	}
	actor := "staff:" + randstr.Hex(8)
	token := service.NewClaims(staffService.config.JWT, actor).GenerateKey()
	staffService.logger.InfoF("Staff login accepted, actor %s", actor)
	return service.NewApiResponse(&service.SuccessStaffLogin, service.Unsatisfied, &service.ResponseStaffLogin{
		Token: token,
		Actor: actor,
		View:  string(staffService.state.Resolved()),
	})
}

func (staffService *StaffService) StaffLogout() *service.ApiResponse[service.ResponseStaffLogin] {
	staffService.state.Logout()
	return service.NewApiResponse(&service.SuccessStaffLogin, service.Unsatisfied, &service.ResponseStaffLogin{
		View: string(staffService.state.Resolved()),
	})
}

var _ service.StaffServiceInterface = (*StaffService)(nil)
