package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction describes one mutating operation for the audit trail.
type AuditAction struct {
	Action       string         `json:"action"`        // e.g. "panel_create", "user_delete"
	UserEmail    string         `json:"user_email"`    // acting user, when known
	ResourceID   string         `json:"resource_id"`   // affected record, when known
	ResourceType string         `json:"resource_type"` // e.g. "panel", "campaign"
	IP           string         `json:"ip"`
	UserAgent    string         `json:"user_agent"`
	Details      map[string]any `json:"details"`
	Timestamp    time.Time      `json:"timestamp"`
}

// LogAction writes an audit entry for a mutating request.
func LogAction(action, resourceType, resourceID string, c fiber.Ctx, details map[string]any) {
	audit := AuditAction{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IP:           c.IP(),
		UserAgent:    c.Get("User-Agent"),
		Details:      details,
		Timestamp:    time.Now(),
	}
	if email, ok := c.Locals("userEmail").(string); ok {
		audit.UserEmail = email
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"audit": audit,
	}).Info("audit")
}
