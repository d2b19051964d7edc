package services

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/HeyDYF/Money-Manager/internal/logger"
	"github.com/HeyDYF/Money-Manager/internal/models"
)

type auditService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewAuditService returns the audit trail. Every entry is written to the
// "audit" logger; when db is non-nil it is also stored in audit_logs.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db, log: logger.Named("audit")}
}

// Log records a ledger mutation. Failures are logged and swallowed so the
// mutation itself is never reported as failed.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	entry := models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      s.encode(action, changes),
	}

	s.log.Infow(action,
		"resource_type", resourceType,
		"resource_id", resourceID,
		"ip_address", ipAddress,
		"changes", entry.Changes,
	)
	if s.db == nil {
		return
	}
	if err := s.db.Create(&entry).Error; err != nil {
		s.log.Errorw("audit entry not stored", "action", action, "resource_id", resourceID, "error", err)
	}
}

// encode renders changes as a JSON object; nil stays empty.
func (s *auditService) encode(action string, changes map[string]interface{}) string {
	if changes == nil {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		s.log.Errorw("audit changes not encodable", "action", action, "error", err)
		return "{}"
	}
	return string(data)
}
