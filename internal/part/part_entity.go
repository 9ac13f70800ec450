package part

import (
	"time"

	"github.com/google/uuid"
)

type Part struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	ProjectID uuid.UUID `gorm:"type:uuid;index:idx_parts_project"`
	TenantID  string    `gorm:"index:idx_parts_tenant"`
	CreatedAt time.Time
}
