// Package controller
package controller

import (
	"github.com/labstack/echo/v4"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	. "github.com/ro-aviation/skyhub/internal/interfaces/service"
)

type StaffControllerInterface interface {
	StaffLogin(ctx echo.Context) error
	StaffLogout(ctx echo.Context) error
}

type StaffController struct {
	logger  log.LoggerInterface
	service StaffServiceInterface
}

func NewStaffHandler(logger log.LoggerInterface, service StaffServiceInterface) *StaffController {
	return &StaffController{
		logger:  logger,
		service: service,
	}
}

func (controller *StaffController) StaffLogin(ctx echo.Context) error {
	data := &RequestStaffLogin{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("StaffController.StaffLogin bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.StaffLogin(data).Response(ctx)
}

func (controller *StaffController) StaffLogout(ctx echo.Context) error {
	return controller.service.StaffLogout().Response(ctx)
}
