// Package config
package config

import (
	"github.com/ro-aviation/skyhub/internal/interfaces/global"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
)

type Config struct {
	ConfigVersion string            `json:"config_version"`
	Site          *SiteConfig       `json:"site"`
	HttpServer    *HttpServerConfig `json:"http_server"`
	Database      *DatabaseConfig   `json:"database"`
	Nats          *NatsConfig       `json:"nats"`
}

func DefaultConfig() *Config {
	return &Config{
		ConfigVersion: global.ConfigVersion,
		Site:          defaultSiteConfig(),
		HttpServer:    defaultHttpServerConfig(),
		Database:      defaultDatabaseConfig(),
		Nats:          defaultNatsConfig(),
	}
}

func (config *Config) CheckValid(logger log.LoggerInterface) *ValidResult {
	if config.ConfigVersion != global.ConfigVersion {
		logger.WarnF("Configuration file version %s does not match expected version %s, some fields may be missing",
			config.ConfigVersion, global.ConfigVersion)
	}
	if result := config.Site.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.HttpServer.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.Database.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.Nats.checkValid(logger); result.IsFail() {
		return result
	}
	return ValidPass()
}
