package models

import (
	"context"
	"encoding/json"
	"time"

	"bitbucket.org/medfocus/hms_backend/config"
	"bitbucket.org/medfocus/hms_backend/utils"
	"github.com/google/uuid"
)

// AuditLog is append-only. Every mutating operation emits one entry; writes are
// best-effort and must never fail the primary operation (failures are logged).
type AuditLog struct {
	ID            int       `gorm:"primary_key" json:"id"`
	UserId        int       `gorm:"index" json:"user_id"`
	UserName      string    `gorm:"size:100" json:"user_name"`
	Action        string    `gorm:"size:10;not null" json:"action"`
	Entity        string    `gorm:"index;size:100;not null" json:"entity"`
	EntityId      int       `gorm:"index" json:"entity_id"`
	Details       string    `gorm:"type:text" json:"details"`
	IPAddress     string    `gorm:"size:45" json:"ip_address"`
	UserAgent     string    `gorm:"size:255" json:"user_agent"`
	CorrelationId string    `gorm:"size:36;index" json:"correlation_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

func saveAudit(ctx context.Context, action string, entity string, entityId int, details interface{}) {
	var detailsJSON []byte
	if details != nil {
		detailsJSON, _ = json.Marshal(details)
	}

	entry := AuditLog{
		Action:        action,
		Entity:        entity,
		EntityId:      entityId,
		Details:       string(detailsJSON),
		CorrelationId: correlationIdFromContextOrNew(ctx),
	}
	if userId, ok := utils.GetUserIdFromContext(ctx); ok {
		entry.UserId = userId
	}
	if userName, ok := utils.GetUserNameFromContext(ctx); ok {
		entry.UserName = userName
	}
	if ip, ok := utils.GetIPAddressFromContext(ctx); ok {
		entry.IPAddress = ip
	}
	if ua, ok := utils.GetUserAgentFromContext(ctx); ok {
		entry.UserAgent = ua
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		config.LogError(config.GetLogger(), "models", "saveAudit", entity, entry, err)
	}
}

func SaveAuditCreate(ctx context.Context, entity string, entityId int, details interface{}) {
	saveAudit(ctx, "CREATE", entity, entityId, details)
}

func SaveAuditUpdate(ctx context.Context, entity string, entityId int, details interface{}) {
	saveAudit(ctx, "UPDATE", entity, entityId, details)
}

func SaveAuditDelete(ctx context.Context, entity string, entityId int, details interface{}) {
	saveAudit(ctx, "DELETE", entity, entityId, details)
}

func GetAuditLogs(ctx context.Context, entity *string, entityId *int, userId *int) ([]*AuditLog, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	if entity != nil && *entity != "" {
		dbCtx = dbCtx.Where("entity = ?", *entity)
	}
	if entityId != nil && *entityId > 0 {
		dbCtx = dbCtx.Where("entity_id = ?", *entityId)
	}
	if userId != nil && *userId > 0 {
		dbCtx = dbCtx.Where("user_id = ?", *userId)
	}

	var results []*AuditLog
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
