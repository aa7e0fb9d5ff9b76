package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/interfaces/service"
	storeInterface "github.com/ro-aviation/skyhub/internal/interfaces/store"
	"github.com/ro-aviation/skyhub/internal/notify"
	"github.com/ro-aviation/skyhub/internal/synclist"
)

// RecordService fronts the seven synchronized record lists. It owns one
// list per collection for the lifetime of the process; the lists stay
// empty when the store is disabled, and every mutation then reports the
// store as unavailable instead of failing the process.
type RecordService struct {
	logger    log.LoggerInterface
	store     storeInterface.RecordStore
	notifier  *notify.Notifier
	email     service.EmailServiceInterface
	validator *FieldValidator
	lists     map[string]*synclist.SyncList
}

func NewRecordService(
	logger log.LoggerInterface,
	recordStore storeInterface.RecordStore,
	notifier *notify.Notifier,
	email service.EmailServiceInterface,
	validator *FieldValidator,
) *RecordService {
	recordService := &RecordService{
		logger:    logger,
		store:     recordStore,
		notifier:  notifier,
		email:     email,
		validator: validator,
		lists:     make(map[string]*synclist.SyncList),
	}
	for _, kind := range record.Kinds() {
		list := synclist.NewSyncList(kind, recordStore, notifier, logger)
		if err := list.Open(); err != nil {
			if errors.Is(err, storeInterface.ErrStoreDisabled) {
				logger.WarnF("Record store disabled, %s list stays empty", kind.Collection)
			} else {
				logger.ErrorF("Unable to open %s list: %v", kind.Collection, err)
			}
		}
		recordService.lists[kind.Collection] = list
	}
	return recordService
}

func (recordService *RecordService) list(collection string) (*synclist.SyncList, *service.ApiStatus) {
	if list, ok := recordService.lists[collection]; ok {
		return list, nil
	}
	return nil, &service.ErrUnknownCollection
}

func statusFor(err error) *service.ApiStatus {
	switch {
	case errors.Is(err, record.ErrMissingField), errors.Is(err, record.ErrInvalidFieldValue):
		return &service.ErrValidationFail
	case errors.Is(err, storeInterface.ErrStoreDisabled):
		return &service.ErrStoreUnavailable
	case errors.Is(err, storeInterface.ErrRecordNotFound):
		return &service.ErrRecordNotFound
	case errors.Is(err, storeInterface.ErrUnknownKind):
		return &service.ErrUnknownCollection
	default:
		return &service.ErrStoreFail
	}
}

func (recordService *RecordService) GetRecords(req *service.RequestGetRecords) *service.ApiResponse[service.ResponseGetRecords] {
	list, errStatus := recordService.list(req.Collection)
	if errStatus != nil {
		return service.NewApiResponse[service.ResponseGetRecords](errStatus, service.Unsatisfied, nil)
	}
	return service.NewApiResponse(&service.SuccessGetRecords, service.Unsatisfied, &service.ResponseGetRecords{
		Collection: req.Collection,
		Items:      list.Records(),
	})
}

func (recordService *RecordService) CreateRecord(req *service.RequestCreateRecord) *service.ApiResponse[service.ResponseMutateRecord] {
	list, errStatus := recordService.list(req.Collection)
	if errStatus != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](errStatus, service.Unsatisfied, nil)
	}
	if errStatus := recordService.validator.CheckLengths(req.Fields); errStatus != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](errStatus, service.Unsatisfied, nil)
	}
	id, err := list.Create(context.Background(), req.Fields, req.Actor)
	if err != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](statusFor(err), service.Unsatisfied, nil)
	}
	status := service.ApiStatus{
		StatusName:  service.SuccessCreateRecord.StatusName,
		Description: list.Kind().CreatedMessage,
		HttpCode:    service.Ok,
	}
	return service.NewApiResponse(&status, service.Unsatisfied, &service.ResponseMutateRecord{Id: id})
}

func (recordService *RecordService) UpdateRecord(req *service.RequestUpdateRecord) *service.ApiResponse[service.ResponseMutateRecord] {
	list, errStatus := recordService.list(req.Collection)
	if errStatus != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](errStatus, service.Unsatisfied, nil)
	}
	if errStatus := recordService.validator.CheckLengths(req.Fields); errStatus != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](errStatus, service.Unsatisfied, nil)
	}
	if err := list.Update(context.Background(), req.Id, req.Fields, req.Actor); err != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](statusFor(err), service.Unsatisfied, nil)
	}
	return service.NewApiResponse(&service.SuccessUpdateRecord, service.Unsatisfied, &service.ResponseMutateRecord{Id: req.Id})
}

func (recordService *RecordService) DeleteRecord(req *service.RequestDeleteRecord) *service.ApiResponse[service.ResponseMutateRecord] {
	list, errStatus := recordService.list(req.Collection)
	if errStatus != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](errStatus, service.Unsatisfied, nil)
	}
	if err := list.Delete(context.Background(), req.Id); err != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](statusFor(err), service.Unsatisfied, nil)
	}
	return service.NewApiResponse(&service.SuccessDeleteRecord, service.Unsatisfied, &service.ResponseMutateRecord{Id: req.Id})
}

func (recordService *RecordService) submitRequest(kind *record.Kind, fields record.Fields, actor string) *service.ApiResponse[service.ResponseMutateRecord] {
	if errStatus := recordService.validator.CheckLengths(fields); errStatus != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](errStatus, service.Unsatisfied, nil)
	}
	list, errStatus := recordService.list(kind.Collection)
	if errStatus != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](errStatus, service.Unsatisfied, nil)
	}
	id, err := list.Create(context.Background(), fields, actor)
	if err != nil {
		return service.NewApiResponse[service.ResponseMutateRecord](statusFor(err), service.Unsatisfied, nil)
	}
	go func() {
		if err := recordService.email.SendRequestNotice(kind, fields); err != nil {
			recordService.logger.ErrorF("Unable to send %s notice: %v", kind.Name, err)
		}
	}()
	status := service.ApiStatus{
		StatusName:  "SUBMIT_REQUEST_SUCCESS",
		Description: kind.CreatedMessage,
		HttpCode:    service.Ok,
	}
	return service.NewApiResponse(&status, service.Unsatisfied, &service.ResponseMutateRecord{Id: id})
}

func (recordService *RecordService) SubmitBooking(req *service.RequestSubmitBooking) *service.ApiResponse[service.ResponseMutateRecord] {
	return recordService.submitRequest(&record.BookingRequests, record.Fields{
		"discordUser": req.DiscordUser,
		"robloxUser":  req.RobloxUser,
		"from":        req.From,
		"to":          req.To,
		"date":        req.Date,
	}, req.Actor)
}

func (recordService *RecordService) SubmitSupport(req *service.RequestSubmitSupport) *service.ApiResponse[service.ResponseMutateRecord] {
	return recordService.submitRequest(&record.SupportRequests, record.Fields{
		"discordUser": req.DiscordUser,
		"robloxUser":  req.RobloxUser,
		"subject":     req.Subject,
		"message":     req.Message,
	}, req.Actor)
}

func (recordService *RecordService) draftResponse(collection string, list *synclist.SyncList) *service.ApiResponse[service.ResponseDraft] {
	return service.NewApiResponse(&service.SuccessDraft, service.Unsatisfied, &service.ResponseDraft{
		Collection: collection,
		Fields:     list.Draft(),
		EditingId:  list.EditingID(),
	})
}

func (recordService *RecordService) GetDraft(req *service.RequestGetDraft) *service.ApiResponse[service.ResponseDraft] {
	list, errStatus := recordService.list(req.Collection)
	if errStatus != nil {
		return service.NewApiResponse[service.ResponseDraft](errStatus, service.Unsatisfied, nil)
	}
	return recordService.draftResponse(req.Collection, list)
}

func (recordService *RecordService) SetDraft(req *service.RequestSetDraft) *service.ApiResponse[service.ResponseDraft] {
	list, errStatus := recordService.list(req.Collection)
	if errStatus != nil {
		return service.NewApiResponse[service.ResponseDraft](errStatus, service.Unsatisfied, nil)
	}
	if errStatus := recordService.validator.CheckLengths(req.Fields); errStatus != nil {
		return service.NewApiResponse[service.ResponseDraft](errStatus, service.Unsatisfied, nil)
	}
	list.SetDraft(req.Fields)
	return recordService.draftResponse(req.Collection, list)
}

func (recordService *RecordService) BeginEdit(req *service.RequestBeginEdit) *service.ApiResponse[service.ResponseDraft] {
	list, errStatus := recordService.list(req.Collection)
	if errStatus != nil {
		return service.NewApiResponse[service.ResponseDraft](errStatus, service.Unsatisfied, nil)
	}
	if err := list.BeginEdit(req.Id); err != nil {
		return service.NewApiResponse[service.ResponseDraft](statusFor(err), service.Unsatisfied, nil)
	}
	return recordService.draftResponse(req.Collection, list)
}

func (recordService *RecordService) CancelEdit(req *service.RequestGetDraft) *service.ApiResponse[service.ResponseDraft] {
	list, errStatus := recordService.list(req.Collection)
	if errStatus != nil {
		return service.NewApiResponse[service.ResponseDraft](errStatus, service.Unsatisfied, nil)
	}
	list.CancelEdit()
	return recordService.draftResponse(req.Collection, list)
}

type recordWatcher struct {
	updates chan []record.Record
	sub     storeInterface.Subscription
	once    sync.Once
}

func (watcher *recordWatcher) Updates() <-chan []record.Record {
	return watcher.updates
}

// Close detaches the watcher. The updates channel is left open because
// a snapshot delivery may still be in flight; consumers stop on their
// own context instead of on channel close.
func (watcher *recordWatcher) Close() {
	watcher.once.Do(func() {
		watcher.sub.Close()
	})
}

// Watch opens a live view on a collection for streaming. When the
// consumer lags, the stale update is replaced by the latest one.
func (recordService *RecordService) Watch(collection string) (service.RecordWatcher, *service.ApiStatus) {
	kind, ok := record.KindByCollection(collection)
	if !ok {
		return nil, &service.ErrUnknownCollection
	}
	watcher := &recordWatcher{updates: make(chan []record.Record, 1)}
	sub, err := recordService.store.Subscribe(collection, func(snapshot storeInterface.Snapshot) {
		records := make([]record.Record, len(snapshot.Records))
		copy(records, snapshot.Records)
		kind.SortRecords(records)
		for {
			select {
			case watcher.updates <- records:
				return
			default:
				select {
				case <-watcher.updates:
				default:
				}
			}
		}
	})
	if err != nil {
		return nil, statusFor(err)
	}
	watcher.sub = sub
	return watcher, nil
}

// Records is the sorted list of one collection, for page rendering.
func (recordService *RecordService) Records(collection string) []record.Record {
	if list, ok := recordService.lists[collection]; ok {
		return list.Records()
	}
	return nil
}

func (recordService *RecordService) Shutdown() {
	for _, list := range recordService.lists {
		list.Close()
	}
}

var _ service.RecordServiceInterface = (*RecordService)(nil)
