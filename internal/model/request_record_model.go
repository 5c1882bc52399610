package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type RequestRecord struct {
	Id             int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Text           string           `gorm:"column:text;not null"`
	RequestType    string           `gorm:"column:request_type"`
	SubRequestType string           `gorm:"column:sub_request_type"`
	Embedding      *pgvector.Vector `gorm:"column:embedding;type:vector"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (RequestRecord) TableName() string {
	return "requests"
}
