package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionCreateSession = "CREATE_SESSION"
	AuditActionCloseSession  = "CLOSE_SESSION"
	AuditActionUpdateRecord  = "UPDATE_RECORD"
	AuditActionBulkUpsert    = "BULK_UPSERT"
	AuditActionAckAlert      = "ACK_ALERT"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"user_id,omitempty"`
	Action    string    `db:"action" json:"action"`
	Payload   []byte    `db:"payload" json:"payload,omitempty"`
	IPAddress string    `db:"ip_address" json:"ip_address"`
	UserAgent string    `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
