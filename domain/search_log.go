package domain

import (
	"time"

	"gorm.io/datatypes"
)

// SearchQueryLog records one vibe search so staff can review what customers
// asked for. Written fire-and-forget; losing a row never fails a search.
type SearchQueryLog struct {
	ID             uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrganizationID string            `gorm:"column:organization_id;type:uuid;index;not null" json:"organization_id"`
	QueryText      string            `gorm:"column:query_text;type:text;not null" json:"query_text"`
	CallerRole     string            `gorm:"column:caller_role;type:text;not null" json:"caller_role"`
	ProductIDs     []uint64          `gorm:"column:product_ids;type:jsonb;serializer:json" json:"product_ids"`
	Context        datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context,omitempty"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SearchQueryLog) TableName() string {
	return "search_query_logs"
}
