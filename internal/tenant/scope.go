package tenant

import "gorm.io/gorm"

// Default is the tenant used on unauthenticated dev paths.
const Default = "default"

func Scope(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
