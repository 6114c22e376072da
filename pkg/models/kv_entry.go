package model

import "time"

// KVEntry is a namespaced blob row used by the sqlite snapshot repository.
type KVEntry struct {
	Namespace string    `gorm:"primaryKey;size:191"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
