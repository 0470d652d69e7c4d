package model

import (
	"time"

	"github.com/jackc/pgtype"
)

const (
	TableBatch = "batches"
)

type Batch struct {
	TokenId     int64 `gorm:"primaryKey;autoIncrement"`
	Name        string
	Description string

	// Copy of the Status property, used for filtering
	Status string

	// Ordered list of {trait_type, value}
	Properties pgtype.JSONB

	// Incremented upon every update, guards against lost updates
	Version int64

	// Reference of the last write
	Receipt pgtype.Varchar

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Batch) TableName() string {
	return TableBatch
}
