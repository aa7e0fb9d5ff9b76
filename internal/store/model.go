// Package store
package store

import "time"

// Document is one stored record of any collection. Fields is the JSON
// encoding of the record's flat field map. Stamped is renewed on every
// update and drives "newest first" display ordering; CreatedAt is
// assigned once and fixes the store insertion order.
type Document struct {
	ID         uint   `gorm:"primarykey"`
	Collection string `gorm:"uniqueIndex:idx_collection_doc,priority:1;size:128;not null"`
	DocId      string `gorm:"uniqueIndex:idx_collection_doc,priority:2;size:32;not null"`
	Fields     string `gorm:"type:text"`
	Stamped    time.Time
	UpdatedBy  string `gorm:"size:64"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
