package models

import "time"

// Approval records one approve/reject decision on a claim. Append-only.
type Approval struct {
	ApprovalID uint        `gorm:"primaryKey;column:approval_id" json:"approval_id"`
	ClaimID    string      `gorm:"column:claim_id" json:"claim_id"`
	ApproverID string      `gorm:"column:approver_id" json:"approver_id"`
	Status     ClaimStatus `gorm:"column:status" json:"status"`
	Comment    *string     `gorm:"column:comment" json:"comment,omitempty"`
	CreateAt   time.Time   `gorm:"column:create_at" json:"create_at"`

	Approver *User `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}

// TableName specifies the table name for Approval.
func (Approval) TableName() string {
	return "approvals"
}
