// Package config
package config

import (
	"errors"
	"time"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
)

type HttpServerLimit struct {
	RateLimit           int           `json:"rate_limit"`
	RateLimitWindow     string        `json:"rate_limit_window"`
	RateLimitDuration   time.Duration `json:"-"`
	FieldLengthMax      int           `json:"field_length_max"`
	MessageLengthMax    int           `json:"message_length_max"`
	MaxStreamsPerClient int           `json:"max_streams_per_client"`
}

func defaultHttpServerLimit() *HttpServerLimit {
	return &HttpServerLimit{
		RateLimit:           60,
		RateLimitWindow:     "1m",
		FieldLengthMax:      200,
		MessageLengthMax:    2000,
		MaxStreamsPerClient: 8,
	}
}

func (config *HttpServerLimit) checkValid(_ log.LoggerInterface) *ValidResult {
	if duration, err := time.ParseDuration(config.RateLimitWindow); err != nil {
		return ValidFailWith(errors.New("invalid json field http_server.limits.rate_limit_window"), err)
	} else {
		config.RateLimitDuration = duration
	}
	if config.FieldLengthMax <= 0 {
		config.FieldLengthMax = defaultHttpServerLimit().FieldLengthMax
	}
	if config.MessageLengthMax <= 0 {
		config.MessageLengthMax = defaultHttpServerLimit().MessageLengthMax
	}
	return ValidPass()
}
