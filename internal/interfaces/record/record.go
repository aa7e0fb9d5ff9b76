// Package record
package record

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Fields is the flat field map of one record. All values are strings,
// matching what the site's forms produce.
type Fields map[string]string

func (f Fields) Clone() Fields {
	clone := make(Fields, len(f))
	for k, v := range f {
		clone[k] = v
	}
	return clone
}

// Record is one document of a collection as delivered by the record
// store. Timestamp is server-stamped at creation and renewed on every
// update; CreatedAt never changes after creation.
type Record struct {
	ID        string    `json:"id"`
	Fields    Fields    `json:"fields"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// Validate reports the kind's missing required fields. Values that are
// empty after trimming count as missing, so a blank form submit never
// reaches the store. Fields constrained by the kind's enum table must
// carry one of the allowed values.
func (kind *Kind) Validate(fields Fields) error {
	missing := make([]string, 0)
	for _, name := range kind.Required {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	for name, allowed := range kind.Enums {
		value := strings.TrimSpace(fields[name])
		if value == "" {
			continue
		}
		if !slices.Contains(allowed, value) {
			return fmt.Errorf("%w: %s must be one of %s", ErrInvalidFieldValue, name, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// Allowed reports whether a field name belongs to the kind at all.
func (kind *Kind) Allowed(name string) bool {
	for _, field := range kind.Required {
		if field == name {
			return true
		}
	}
	for _, field := range kind.Optional {
		if field == name {
			return true
		}
	}
	return false
}

// Prune drops fields the kind does not declare. The store never sees
// names outside its record shape.
func (kind *Kind) Prune(fields Fields) Fields {
	pruned := make(Fields, len(fields))
	for name, value := range fields {
		if kind.Allowed(name) {
			pruned[name] = value
		}
	}
	return pruned
}
