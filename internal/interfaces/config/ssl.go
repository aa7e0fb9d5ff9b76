// Package config
package config

import (
	"errors"
	"os"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
)

type SSLConfig struct {
	Enable          bool   `json:"enable"`
	ForceSSL        bool   `json:"force_ssl"`
	CertFile        string `json:"cert_file"`
	KeyFile         string `json:"key_file"`
	HstsExpiredTime int    `json:"hsts_expired_time"`
	IncludeDomain   bool   `json:"include_domain"`
}

func defaultSSLConfig() *SSLConfig {
	return &SSLConfig{
		Enable:          false,
		ForceSSL:        false,
		CertFile:        "",
		KeyFile:         "",
		HstsExpiredTime: 5184000,
		IncludeDomain:   false,
	}
}

func (config *SSLConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if !config.Enable {
		return ValidPass()
	}
	if _, err := os.Stat(config.CertFile); err != nil {
		return ValidFailWith(errors.New("ssl cert_file not readable"), err)
	}
	if _, err := os.Stat(config.KeyFile); err != nil {
		return ValidFailWith(errors.New("ssl key_file not readable"), err)
	}
	return ValidPass()
}
