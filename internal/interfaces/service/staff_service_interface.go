// Package service
package service

type RequestStaffLogin struct {
	AccessCode string `json:"accessCode" form:"accessCode"`
}

type ResponseStaffLogin struct {
	Token string `json:"token"`
	Actor string `json:"actor"`
	View  string `json:"view"`
}

var SuccessStaffLogin = ApiStatus{"STAFF_LOGIN_SUCCESS", "Welcome back", Ok}

type StaffServiceInterface interface {
	StaffLogin(req *RequestStaffLogin) *ApiResponse[ResponseStaffLogin]
	StaffLogout() *ApiResponse[ResponseStaffLogin]
}
