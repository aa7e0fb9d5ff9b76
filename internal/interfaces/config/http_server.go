// Package config
package config

import (
	"fmt"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/thanhpk/randstr"
)

type HttpServerConfig struct {
	Host          string           `json:"host"`
	Port          uint             `json:"port"`
	Address       string           `json:"-"`
	ServerAddress string           `json:"server_address"`
	ProxyType     int              `json:"proxy_type"`
	BodyLimit     string           `json:"body_limit"`
	Staff         *StaffConfig     `json:"staff"`
	Limits        *HttpServerLimit `json:"limits"`
	Email         *EmailConfig     `json:"email"`
	JWT           *JWTConfig       `json:"jwt"`
	SSL           *SSLConfig       `json:"ssl"`
}

func defaultHttpServerConfig() *HttpServerConfig {
	return &HttpServerConfig{
		Host:          "0.0.0.0",
		Port:          8080,
		ServerAddress: "http://127.0.0.1:8080",
		ProxyType:     0,
		BodyLimit:     "1MB",
		Staff:         defaultStaffConfig(),
		Limits:        defaultHttpServerLimit(),
		Email:         defaultEmailConfig(),
		JWT:           defaultJWTConfig(),
		SSL:           defaultSSLConfig(),
	}
}

func (config *HttpServerConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if result := checkPort(config.Port); result.IsFail() {
		return result
	}

	config.Address = fmt.Sprintf("%s:%d", config.Host, config.Port)

	if config.BodyLimit == "" {
		logger.Warn("body_limit is empty, request body length is not restricted")
	}

	if result := config.Staff.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.Limits.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.Email.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.JWT.checkValid(logger); result.IsFail() {
		return result
	}
	if result := config.SSL.checkValid(logger); result.IsFail() {
		return result
	}
	return ValidPass()
}

// StaffConfig holds the fixed staff access code. The comparison is a
// plain equality check: the gate only controls which views render, the
// store does not consult it.
type StaffConfig struct {
	AccessCode string `json:"access_code"`
}

func defaultStaffConfig() *StaffConfig {
	return &StaffConfig{
		AccessCode: "",
	}
}

func (config *StaffConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if config.AccessCode == "" {
		config.AccessCode = randstr.String(16)
		logger.WarnF("http_server.staff.access_code is empty, generated random access code: %s", config.AccessCode)
	}
	return ValidPass()
}
