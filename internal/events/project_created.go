package events

import "time"

const ProjectCreatedTopic = "bau.project.lifecycle.v1"

type PendingRole struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type ProjectCreatedEvent struct {
	EventType    string        `json:"event_type"`
	RequestID    string        `json:"request_id,omitempty"`
	ProjectID    string        `json:"project_id"`
	TenantID     string        `json:"tenant_id"`
	PendingRoles []PendingRole `json:"pending_roles,omitempty"`
	OccurredAt   time.Time     `json:"occurred_at"`
}
