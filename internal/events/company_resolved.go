package events

import "time"

const CompanyResolvedTopic = "bau.company.lifecycle.v1"

type CompanyResolvedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	CompanyID  string    `json:"company_id"`
	ProjectID  string    `json:"project_id"`
	Role       string    `json:"role"`
	TenantID   string    `json:"tenant_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
