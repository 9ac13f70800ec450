package pendingcompany

import (
	"time"

	"github.com/viorizz/swom/internal/company"

	"github.com/google/uuid"
)

// PendingCompany is a promise to create a Company later. It is written only
// as a side effect of project creation when a role carried a free-text name
// instead of an existing company id, and it is destroyed when resolved or
// explicitly discarded. The unique index keeps re-entry from piling up more
// than one row per (project, role).
type PendingCompany struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID    `gorm:"type:uuid;index;uniqueIndex:uq_pending_project_role,priority:1"`
	Name      string
	Type      company.Type `gorm:"type:varchar(20);uniqueIndex:uq_pending_project_role,priority:2"`
	TenantID  string       `gorm:"index"`
	CreatedAt time.Time
}
