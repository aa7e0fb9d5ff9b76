package service

import (
	"fmt"
	"strings"

	"github.com/ro-aviation/skyhub/internal/interfaces/config"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/interfaces/service"
	"gopkg.in/gomail.v2"
)

// EmailService mails the staff mailbox when a visitor submits a booking
// or support request. With email disabled every send is a silent no-op.
type EmailService struct {
	logger log.LoggerInterface
	config *config.EmailConfig
}

func NewEmailService(logger log.LoggerInterface, config *config.EmailConfig) *EmailService {
	return &EmailService{
		logger: logger,
		config: config,
	}
}

func (emailService *EmailService) SendRequestNotice(kind *record.Kind, fields record.Fields) error {
	if !emailService.config.Enabled {
		return nil
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("A new %s arrived on the site.\r\n\r\n", strings.ToLower(kind.Display)))
	for _, name := range kind.Required {
		body.WriteString(fmt.Sprintf("%s: %s\r\n", name, fields[name]))
	}

	message := gomail.NewMessage()
	message.SetHeader("From", emailService.config.From)
	message.SetHeader("To", emailService.config.StaffMailbox)
	message.SetHeader("Subject", fmt.Sprintf("New %s", strings.ToLower(kind.Display)))
	message.SetBody("text/plain", body.String())

	if err := emailService.config.EmailServer.DialAndSend(message); err != nil {
		return fmt.Errorf("send %s notice: %w", kind.Name, err)
	}
	emailService.logger.DebugF("Sent %s notice to %s", kind.Name, emailService.config.StaffMailbox)
	return nil
}

var _ service.EmailServiceInterface = (*EmailService)(nil)
