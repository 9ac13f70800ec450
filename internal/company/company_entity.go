package company

import (
	"time"

	"github.com/google/uuid"
)

// Type is the capacity in which a company participates in a project.
type Type string

const (
	TypeMasonry   Type = "masonry"
	TypeArchitect Type = "architect"
	TypeEngineer  Type = "engineer"
	TypeClient    Type = "client"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMasonry, TypeArchitect, TypeEngineer, TypeClient:
		return true
	}
	return false
}

// Types lists all company types in display order.
func Types() []Type {
	return []Type{TypeMasonry, TypeArchitect, TypeEngineer, TypeClient}
}

type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Type      Type      `gorm:"type:varchar(20);index:idx_companies_tenant_type,priority:2"`
	Address   *string
	Phone     *string
	Email     *string
	TenantID  string    `gorm:"index;index:idx_companies_tenant_type,priority:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
