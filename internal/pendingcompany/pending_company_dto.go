package pendingcompany

type CompletePendingCompanyRequest struct {
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
}

type PendingCompanyResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

type CompletePendingCompanyResponse struct {
	CompanyID string `json:"company_id"`
}
