// Package config
package config

import (
	"errors"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"gopkg.in/gomail.v2"
)

// EmailConfig controls the staff-mailbox notices sent when a new
// booking or support request arrives. Disabled means the feature is
// silently off, not an error.
type EmailConfig struct {
	Enabled      bool           `json:"enabled"`
	Host         string         `json:"host"`
	Port         int            `json:"port"`
	Username     string         `json:"username"`
	Password     string         `json:"password"`
	From         string         `json:"from"`
	StaffMailbox string         `json:"staff_mailbox"`
	EmailServer  *gomail.Dialer `json:"-"`
}

func defaultEmailConfig() *EmailConfig {
	return &EmailConfig{
		Enabled:      false,
		Host:         "smtp.example.com",
		Port:         465,
		Username:     "",
		Password:     "",
		From:         "no-reply@example.com",
		StaffMailbox: "staff@example.com",
	}
}

func (config *EmailConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if !config.Enabled {
		return ValidPass()
	}
	if config.Host == "" || config.Port == 0 {
		return ValidFail(errors.New("http_server.email.host and port are required when email is enabled"))
	}
	if config.StaffMailbox == "" {
		return ValidFail(errors.New("http_server.email.staff_mailbox is required when email is enabled"))
	}
	if config.From == "" {
		config.From = config.Username
	}
	config.EmailServer = gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	return ValidPass()
}
