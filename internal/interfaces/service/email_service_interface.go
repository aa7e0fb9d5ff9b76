// Package service
package service

import "github.com/ro-aviation/skyhub/internal/interfaces/record"

// EmailServiceInterface sends staff-mailbox notices for newly submitted
// public requests. Implementations must be a no-op when email is not
// configured.
type EmailServiceInterface interface {
	SendRequestNotice(kind *record.Kind, fields record.Fields) error
}
