// Package controller
package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ro-aviation/skyhub/internal/http_server/middleware"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	. "github.com/ro-aviation/skyhub/internal/interfaces/service"
)

type RecordControllerInterface interface {
	GetRecords(ctx echo.Context) error
	CreateRecord(ctx echo.Context) error
	UpdateRecord(ctx echo.Context) error
	DeleteRecord(ctx echo.Context) error
	SubmitBooking(ctx echo.Context) error
	SubmitSupport(ctx echo.Context) error
	GetDraft(ctx echo.Context) error
	SetDraft(ctx echo.Context) error
	BeginEdit(ctx echo.Context) error
	CancelEdit(ctx echo.Context) error
	StreamRecords(ctx echo.Context) error
}

type RecordController struct {
	logger     log.LoggerInterface
	service    RecordServiceInterface
	maxStreams int

	streamMu sync.Mutex
	streams  map[string]int
}

func NewRecordHandler(logger log.LoggerInterface, service RecordServiceInterface, maxStreams int) *RecordController {
	return &RecordController{
		logger:     logger,
		service:    service,
		maxStreams: maxStreams,
		streams:    make(map[string]int),
	}
}

// staffActor reads the actor out of the verified staff token.
func staffActor(ctx echo.Context) string {
	token, ok := ctx.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claim, ok := token.Claims.(*Claims)
	if !ok {
		return ""
	}
	return claim.Actor
}

func (controller *RecordController) GetRecords(ctx echo.Context) error {
	data := &RequestGetRecords{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.GetRecords bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.GetRecords(data).Response(ctx)
}

func (controller *RecordController) CreateRecord(ctx echo.Context) error {
	data := &RequestCreateRecord{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.CreateRecord bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	data.Actor = staffActor(ctx)
	return controller.service.CreateRecord(data).Response(ctx)
}

func (controller *RecordController) UpdateRecord(ctx echo.Context) error {
	data := &RequestUpdateRecord{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.UpdateRecord bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	data.Actor = staffActor(ctx)
	return controller.service.UpdateRecord(data).Response(ctx)
}

func (controller *RecordController) DeleteRecord(ctx echo.Context) error {
	data := &RequestDeleteRecord{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.DeleteRecord bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.DeleteRecord(data).Response(ctx)
}

func (controller *RecordController) SubmitBooking(ctx echo.Context) error {
	data := &RequestSubmitBooking{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.SubmitBooking bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	data.Actor = middleware.VisitorID(ctx)
	return controller.service.SubmitBooking(data).Response(ctx)
}

func (controller *RecordController) SubmitSupport(ctx echo.Context) error {
	data := &RequestSubmitSupport{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.SubmitSupport bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	data.Actor = middleware.VisitorID(ctx)
	return controller.service.SubmitSupport(data).Response(ctx)
}

func (controller *RecordController) GetDraft(ctx echo.Context) error {
	data := &RequestGetDraft{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.GetDraft bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.GetDraft(data).Response(ctx)
}

func (controller *RecordController) SetDraft(ctx echo.Context) error {
	data := &RequestSetDraft{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.SetDraft bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.SetDraft(data).Response(ctx)
}

func (controller *RecordController) BeginEdit(ctx echo.Context) error {
	data := &RequestBeginEdit{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.BeginEdit bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.BeginEdit(data).Response(ctx)
}

func (controller *RecordController) CancelEdit(ctx echo.Context) error {
	data := &RequestGetDraft{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("RecordController.CancelEdit bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.CancelEdit(data).Response(ctx)
}

func (controller *RecordController) acquireStream(visitor string) bool {
	controller.streamMu.Lock()
	defer controller.streamMu.Unlock()
	if controller.streams[visitor] >= controller.maxStreams {
		return false
	}
	controller.streams[visitor]++
	return true
}

func (controller *RecordController) releaseStream(visitor string) {
	controller.streamMu.Lock()
	defer controller.streamMu.Unlock()
	if controller.streams[visitor] <= 1 {
		delete(controller.streams, visitor)
	} else {
		controller.streams[visitor]--
	}
}

// StreamRecords pushes the sorted collection as server-sent events:
// one event on connect, then one per change, until the client leaves.
func (controller *RecordController) StreamRecords(ctx echo.Context) error {
	collection := ctx.Param("collection")
	visitor := middleware.VisitorID(ctx)
	if !controller.acquireStream(visitor) {
		return NewErrorResponse(ctx, &ErrTooManyStreams)
	}
	defer controller.releaseStream(visitor)

	watcher, errStatus := controller.service.Watch(collection)
	if errStatus != nil {
		return NewErrorResponse(ctx, errStatus)
	}
	defer watcher.Close()

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set("Cache-Control", "no-cache")
	response.Header().Set("Connection", "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case records := <-watcher.Updates():
			payload, err := json.Marshal(records)
			if err != nil {
				controller.logger.ErrorF("RecordController.StreamRecords marshal error: %v", err)
				return nil
			}
			if _, err := fmt.Fprintf(response, "event: records\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}
