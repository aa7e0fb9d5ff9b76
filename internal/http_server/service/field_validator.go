// Package service implements the HTTP-facing services of the site.
package service

import (
	"github.com/ro-aviation/skyhub/internal/interfaces/config"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/interfaces/service"
)

// Long-form fields get the larger message limit, everything else the
// short field limit.
var longFormFields = map[string]bool{
	"message":     true,
	"description": true,
}

type FieldValidator struct {
	limits *config.HttpServerLimit
}

func NewFieldValidator(limits *config.HttpServerLimit) *FieldValidator {
	return &FieldValidator{limits: limits}
}

// CheckLengths rejects oversized form values before they reach the
// store. Required-field validation stays with the record kind.
func (validator *FieldValidator) CheckLengths(fields record.Fields) *service.ApiStatus {
	for name, value := range fields {
		limit := validator.limits.FieldLengthMax
		if longFormFields[name] {
			limit = validator.limits.MessageLengthMax
		}
		if len(value) > limit {
			return &service.ErrIllegalParam
		}
	}
	return nil
}
