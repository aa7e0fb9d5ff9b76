// Package config
package config

import (
	"errors"
	"strings"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
)

// NatsConfig controls the change-notification relay between SkyHub
// instances. With NATS disabled the store still pushes snapshots to
// subscribers inside this process, it just cannot see other instances'
// writes until it restarts.
type NatsConfig struct {
	Enabled       bool   `json:"enabled"`
	Url           string `json:"url"`
	SubjectPrefix string `json:"subject_prefix"`
}

func defaultNatsConfig() *NatsConfig {
	return &NatsConfig{
		Enabled:       false,
		Url:           "nats://127.0.0.1:4222",
		SubjectPrefix: "skyhub.records",
	}
}

func (config *NatsConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if !config.Enabled {
		return ValidPass()
	}
	if config.Url == "" {
		return ValidFail(errors.New("nats.url must not be empty when nats is enabled"))
	}
	if config.SubjectPrefix == "" {
		config.SubjectPrefix = defaultNatsConfig().SubjectPrefix
	}
	config.SubjectPrefix = strings.TrimSuffix(config.SubjectPrefix, ".")
	return ValidPass()
}
