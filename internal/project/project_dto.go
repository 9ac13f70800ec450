package project

import (
	"github.com/viorizz/swom/internal/company"
)

// RoleAssignment is the explicit tagged variant for binding a company role
// on project creation: an existing company id, a free-text name for a
// company that does not exist yet, or neither (role left unassigned).
// Setting both fields is rejected; nothing is ever inferred from the shape
// of a string.
type RoleAssignment struct {
	ExistingID *string `json:"existing_id" binding:"omitempty,uuid"`
	NewName    *string `json:"new_name"`
}

// RoleAssignments carries one optional assignment per company role.
type RoleAssignments struct {
	Masonry   *RoleAssignment `json:"masonry"`
	Architect *RoleAssignment `json:"architect"`
	Engineer  *RoleAssignment `json:"engineer"`
	Client    *RoleAssignment `json:"client"`
}

// ByRole pairs each non-nil assignment with its role, in display order.
func (ra RoleAssignments) ByRole() []struct {
	Role       company.Type
	Assignment *RoleAssignment
} {
	return []struct {
		Role       company.Type
		Assignment *RoleAssignment
	}{
		{company.TypeMasonry, ra.Masonry},
		{company.TypeArchitect, ra.Architect},
		{company.TypeEngineer, ra.Engineer},
		{company.TypeClient, ra.Client},
	}
}

type CreateProjectRequest struct {
	Name               string  `json:"name" binding:"required"`
	Number             string  `json:"number" binding:"required"`
	Description        *string `json:"description"`
	MasonryCompanyID   *string `json:"masonry_company_id" binding:"omitempty,uuid"`
	ArchitectCompanyID *string `json:"architect_company_id" binding:"omitempty,uuid"`
	EngineerCompanyID  *string `json:"engineer_company_id" binding:"omitempty,uuid"`
	ClientCompanyID    *string `json:"client_company_id" binding:"omitempty,uuid"`
	StartDate          *string `json:"start_date"`
	EndDate            *string `json:"end_date"`
	Status             *string `json:"status" binding:"omitempty,oneof=planning active completed on_hold"`
}

type CreateProjectWithCompaniesRequest struct {
	Name        string          `json:"name" binding:"required"`
	Number      string          `json:"number" binding:"required"`
	Description *string         `json:"description"`
	Companies   RoleAssignments `json:"companies"`
	StartDate   *string         `json:"start_date"`
	EndDate     *string         `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name               *string `json:"name"`
	Number             *string `json:"number"`
	Description        *string `json:"description"`
	MasonryCompanyID   *string `json:"masonry_company_id" binding:"omitempty,uuid"`
	ArchitectCompanyID *string `json:"architect_company_id" binding:"omitempty,uuid"`
	EngineerCompanyID  *string `json:"engineer_company_id" binding:"omitempty,uuid"`
	ClientCompanyID    *string `json:"client_company_id" binding:"omitempty,uuid"`
	StartDate          *string `json:"start_date"`
	EndDate            *string `json:"end_date"`
	Status             *string `json:"status" binding:"omitempty,oneof=planning active completed on_hold"`
}

type ProjectResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Number             string  `json:"number"`
	Description        *string `json:"description,omitempty"`
	MasonryCompanyID   *string `json:"masonry_company_id,omitempty"`
	ArchitectCompanyID *string `json:"architect_company_id,omitempty"`
	EngineerCompanyID  *string `json:"engineer_company_id,omitempty"`
	ClientCompanyID    *string `json:"client_company_id,omitempty"`
	StartDate          *string `json:"start_date,omitempty"`
	EndDate            *string `json:"end_date,omitempty"`
	Status             string  `json:"status"`
}

// ProjectCompaniesResponse carries the resolved company per role; a role
// that is unassigned, pending, or dangling resolves to null.
type ProjectCompaniesResponse struct {
	Masonry   *company.CompanyResponse `json:"masonry"`
	Architect *company.CompanyResponse `json:"architect"`
	Engineer  *company.CompanyResponse `json:"engineer"`
	Client    *company.CompanyResponse `json:"client"`
}

type ProjectWithCompaniesResponse struct {
	ProjectResponse
	Companies ProjectCompaniesResponse `json:"companies"`
}

type PendingCompanySummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type CreateWithCompaniesResponse struct {
	ProjectID        string                  `json:"project_id"`
	PendingCompanies []PendingCompanySummary `json:"pending_companies"`
}
