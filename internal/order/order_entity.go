package order

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted:
		return true
	}
	return false
}

// Metadata is the project snapshot frozen into the order at creation time.
// Renaming or renumbering the project afterwards does not touch it; the
// generated document must match what the order looked like when drafted.
type Metadata struct {
	ProjectName      string  `gorm:"column:project_name"`
	ProjectNumber    string  `gorm:"column:project_number"`
	DesignerInitials *string `gorm:"column:designer_initials"`
	EngineerInitials *string `gorm:"column:engineer_initials"`
}

type Order struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID      uuid.UUID `gorm:"type:uuid;index:idx_orders_project"`
	DraftName      string
	DraftNumber    string
	OrderNumber    string
	ManufacturerID *string
	TemplateName   *string
	Metadata       Metadata `gorm:"embedded;embeddedPrefix:meta_"`
	Status         Status   `gorm:"type:varchar(20)"`
	TenantID       string   `gorm:"index:idx_orders_tenant"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Dimensions struct {
	Diameter *float64
	Length   *float64
	Width    *float64
	Height   *float64
}

type OrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;index:idx_order_items_order;uniqueIndex:uq_order_item_position,priority:1"`
	Position         int             `gorm:"uniqueIndex:uq_order_item_position,priority:2"`
	ArticleNumber    string
	Description      *string
	Quantity         int
	Dimensions       Dimensions      `gorm:"embedded;embeddedPrefix:dim_"`
	ManufacturerData json.RawMessage `gorm:"type:jsonb"`
	TenantID         string          `gorm:"index:idx_order_items_tenant"`
	CreatedAt        time.Time
}
