// Package service
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	c "github.com/ro-aviation/skyhub/internal/interfaces/config"
)

type HttpCode int

const (
	Unsatisfied         HttpCode = 0
	Ok                  HttpCode = 200
	BadRequest          HttpCode = 400
	Unauthorized        HttpCode = 401
	PermissionDenied    HttpCode = 403
	NotFound            HttpCode = 404
	Conflict            HttpCode = 409
	TooManyRequests     HttpCode = 429
	ServerInternalError HttpCode = 500
	ServiceUnavailable  HttpCode = 503
)

func (hc HttpCode) Code() int {
	return int(hc)
}

type ApiStatus struct {
	StatusName  string
	Description string
	HttpCode    HttpCode
}

type ApiResponse[T any] struct {
	HttpCode int    `json:"-"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Data     *T     `json:"data"`
}

// Claims is the staff session token payload. Actor is the opaque user
// identifier stamped onto records the session creates or edits.
type Claims struct {
	Actor  string `json:"actor"`
	config *c.JWTConfig
	jwt.RegisteredClaims
}

func NewClaims(config *c.JWTConfig, actor string) *Claims {
	now := time.Now()
	return &Claims{
		Actor:  actor,
		config: config,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "SkyHubServer",
			Subject:   "staff",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.ExpiresDuration)),
		},
	}
}

func (claim *Claims) GenerateKey() string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claim)
	tokenString, _ := token.SignedString([]byte(claim.config.Secret))
	return tokenString
}

func (res *ApiResponse[T]) Response(ctx echo.Context) error {
	return ctx.JSON(res.HttpCode, res)
}

var (
	ErrIllegalParam          = ApiStatus{"PARAM_ERROR", "Invalid parameter", BadRequest}
	ErrLackParam             = ApiStatus{"PARAM_LACK_ERROR", "Missing parameter", BadRequest}
	ErrValidationFail        = ApiStatus{"VALIDATION_ERROR", "Required fields are missing", BadRequest}
	ErrUnknownCollection     = ApiStatus{"UNKNOWN_COLLECTION", "Unknown record collection", NotFound}
	ErrRecordNotFound        = ApiStatus{"RECORD_NOT_FOUND", "The requested record does not exist", NotFound}
	ErrStoreUnavailable      = ApiStatus{"STORE_UNAVAILABLE", "The record store is not available", ServiceUnavailable}
	ErrStoreFail             = ApiStatus{"STORE_ERROR", "Record store operation failed", ServerInternalError}
	ErrWrongAccessCode       = ApiStatus{"WRONG_ACCESS_CODE", "Invalid password. Please try again.", Unauthorized}
	ErrTooManyStreams        = ApiStatus{"TOO_MANY_STREAMS", "Too many open record streams", TooManyRequests}
	ErrMissingOrMalformedJwt = ApiStatus{"MISSING_OR_MALFORMED_JWT", "Missing or malformed staff token", BadRequest}
	ErrInvalidOrExpiredJwt   = ApiStatus{"INVALID_OR_EXPIRED_JWT", "Invalid or expired staff token", Unauthorized}
	ErrUnknown               = ApiStatus{"UNKNOWN_JWT_ERROR", "Unknown staff token error", ServerInternalError}
)

func NewErrorResponse(ctx echo.Context, codeStatus *ApiStatus) error {
	return NewApiResponse[any](codeStatus, Unsatisfied, nil).Response(ctx)
}

func NewApiResponse[T any](codeStatus *ApiStatus, httpCode HttpCode, data *T) *ApiResponse[T] {
	if httpCode == Unsatisfied {
		httpCode = codeStatus.HttpCode
	}
	if httpCode == Unsatisfied {
		httpCode = Ok
	}
	return &ApiResponse[T]{
		HttpCode: httpCode.Code(),
		Code:     codeStatus.StatusName,
		Message:  codeStatus.Description,
		Data:     data,
	}
}
