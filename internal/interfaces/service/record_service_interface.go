// Package service
package service

import (
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
)

type RequestGetRecords struct {
	Collection string `param:"collection"`
}

type ResponseGetRecords struct {
	Collection string          `json:"collection"`
	Items      []record.Record `json:"items"`
}

type RequestCreateRecord struct {
	Collection string        `param:"collection"`
	Fields     record.Fields `json:"fields"`
	Actor      string        `json:"-"`
}

type RequestUpdateRecord struct {
	Collection string        `param:"collection"`
	Id         string        `param:"id"`
	Fields     record.Fields `json:"fields"`
	Actor      string        `json:"-"`
}

type RequestDeleteRecord struct {
	Collection string `param:"collection"`
	Id         string `param:"id"`
}

type ResponseMutateRecord struct {
	Id string `json:"id,omitempty"`
}

type RequestSubmitBooking struct {
	DiscordUser string `json:"discordUser" form:"discordUser"`
	RobloxUser  string `json:"robloxUser" form:"robloxUser"`
	From        string `json:"from" form:"from"`
	To          string `json:"to" form:"to"`
	Date        string `json:"date" form:"date"`
	Actor       string `json:"-"`
}

type RequestSubmitSupport struct {
	DiscordUser string `json:"discordUser" form:"discordUser"`
	RobloxUser  string `json:"robloxUser" form:"robloxUser"`
	Subject     string `json:"subject" form:"subject"`
	Message     string `json:"message" form:"message"`
	Actor       string `json:"-"`
}

type RequestGetDraft struct {
	Collection string `param:"collection"`
}

type RequestSetDraft struct {
	Collection string        `param:"collection"`
	Fields     record.Fields `json:"fields"`
}

type ResponseDraft struct {
	Collection string        `json:"collection"`
	Fields     record.Fields `json:"fields"`
	EditingId  string        `json:"editingId,omitempty"`
}

type RequestBeginEdit struct {
	Collection string `param:"collection"`
	Id         string `param:"id"`
}

// RecordWatcher is a live view on one collection: every change pushes a
// freshly sorted copy of the list. Close releases the store listener
// and must be called exactly once.
type RecordWatcher interface {
	Updates() <-chan []record.Record
	Close()
}

var (
	SuccessGetRecords   = ApiStatus{"GET_RECORDS_SUCCESS", "Records fetched successfully", Ok}
	SuccessCreateRecord = ApiStatus{"CREATE_RECORD_SUCCESS", "Record created successfully", Ok}
	SuccessUpdateRecord = ApiStatus{"UPDATE_RECORD_SUCCESS", "Record updated successfully", Ok}
	SuccessDeleteRecord = ApiStatus{"DELETE_RECORD_SUCCESS", "Record deleted successfully", Ok}
	SuccessDraft        = ApiStatus{"DRAFT_SUCCESS", "Draft state updated", Ok}
)

type RecordServiceInterface interface {
	GetRecords(req *RequestGetRecords) *ApiResponse[ResponseGetRecords]
	CreateRecord(req *RequestCreateRecord) *ApiResponse[ResponseMutateRecord]
	UpdateRecord(req *RequestUpdateRecord) *ApiResponse[ResponseMutateRecord]
	DeleteRecord(req *RequestDeleteRecord) *ApiResponse[ResponseMutateRecord]
	SubmitBooking(req *RequestSubmitBooking) *ApiResponse[ResponseMutateRecord]
	SubmitSupport(req *RequestSubmitSupport) *ApiResponse[ResponseMutateRecord]
	GetDraft(req *RequestGetDraft) *ApiResponse[ResponseDraft]
	SetDraft(req *RequestSetDraft) *ApiResponse[ResponseDraft]
	BeginEdit(req *RequestBeginEdit) *ApiResponse[ResponseDraft]
	CancelEdit(req *RequestGetDraft) *ApiResponse[ResponseDraft]
	Watch(collection string) (RecordWatcher, *ApiStatus)
	Records(collection string) []record.Record
	Shutdown()
}
