package models

import "time"

// History action tags, one per lifecycle transition.
const (
	ActionCreatedDraft = "CREATED_DRAFT"
	ActionSubmitted    = "SUBMITTED"
	ActionApproved     = "APPROVED"
	ActionRejected     = "REJECTED"
	ActionPaid         = "PAID"
)

// ApprovalHistory is the append-only audit trail of claim status transitions.
// Rows are never updated or deleted; they are the sole record of how a claim
// reached its current status.
type ApprovalHistory struct {
	HistoryID  uint         `gorm:"primaryKey;column:history_id" json:"history_id"`
	ClaimID    string       `gorm:"column:claim_id" json:"claim_id"`
	UserID     string       `gorm:"column:user_id" json:"user_id"`
	Action     string       `gorm:"column:action" json:"action"`
	FromStatus *ClaimStatus `gorm:"column:from_status" json:"from_status,omitempty"`
	ToStatus   ClaimStatus  `gorm:"column:to_status" json:"to_status"`
	Comment    *string      `gorm:"column:comment" json:"comment,omitempty"`
	CreateAt   time.Time    `gorm:"column:create_at" json:"create_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table for ApprovalHistory.
func (ApprovalHistory) TableName() string {
	return "approval_history"
}
