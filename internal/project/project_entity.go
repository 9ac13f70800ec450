package project

import (
	"time"

	"github.com/viorizz/swom/internal/company"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on_hold"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Project carries one optional company reference per role. Each reference is
// either unset, resolved (a real company id), or pending (unset here, with a
// PendingCompany row existing for this project and role). No database-level
// foreign key backs these columns; a referenced company may be deleted
// independently and readers must tolerate the dangling id.
type Project struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string
	Number             string
	Description        *string
	MasonryCompanyID   *uuid.UUID `gorm:"type:uuid"`
	ArchitectCompanyID *uuid.UUID `gorm:"type:uuid"`
	EngineerCompanyID  *uuid.UUID `gorm:"type:uuid"`
	ClientCompanyID    *uuid.UUID `gorm:"type:uuid"`
	StartDate          *time.Time
	EndDate            *time.Time
	Status             Status `gorm:"type:varchar(20)"`
	TenantID           string `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RoleCompanyID returns the company reference for the given role.
func (p *Project) RoleCompanyID(role company.Type) *uuid.UUID {
	switch role {
	case company.TypeMasonry:
		return p.MasonryCompanyID
	case company.TypeArchitect:
		return p.ArchitectCompanyID
	case company.TypeEngineer:
		return p.EngineerCompanyID
	case company.TypeClient:
		return p.ClientCompanyID
	}
	return nil
}

// SetRoleCompanyID sets the company reference for the given role.
func (p *Project) SetRoleCompanyID(role company.Type, id *uuid.UUID) {
	switch role {
	case company.TypeMasonry:
		p.MasonryCompanyID = id
	case company.TypeArchitect:
		p.ArchitectCompanyID = id
	case company.TypeEngineer:
		p.EngineerCompanyID = id
	case company.TypeClient:
		p.ClientCompanyID = id
	}
}
