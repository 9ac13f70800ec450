package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records server lifecycle events. Domain mutations are not
// audited; this covers startup and shutdown only.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
