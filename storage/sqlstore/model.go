// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package sqlstore

import (
	"time"
)

// Record is the database model holding one stored value.
//
// The auto-increment ID doubles as the insertion sequence: upserts keep the
// row and therefore its position. Keys embed caller supplied ids, so the key
// column has no length limit.
type Record struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	Collection string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_a2a_records_collection_key,priority:1"`
	Key        string    `gorm:"column:record_key;type:text;not null;uniqueIndex:idx_a2a_records_collection_key,priority:2"`
	Value      []byte    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM.
func (Record) TableName() string {
	return "a2a_records"
}
