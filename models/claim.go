package models

import (
	"time"
)

// ClaimStatus is the lifecycle state of an expense claim.
type ClaimStatus string

const (
	StatusDraft    ClaimStatus = "DRAFT"
	StatusPending  ClaimStatus = "PENDING"
	StatusApproved ClaimStatus = "APPROVED"
	StatusRejected ClaimStatus = "REJECTED"
	StatusPaid     ClaimStatus = "PAID"
)

// StatusFilterAll is accepted by report filters to mean "no status filter".
const StatusFilterAll = "ALL"

// Valid reports whether s is a recognized claim status.
func (s ClaimStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusPaid:
		return true
	}
	return false
}

// Label returns the display label for a status.
func (s ClaimStatus) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPending:
		return "Pending review"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusPaid:
		return "Paid"
	}
	return string(s)
}

// claimStatusTransitions is the allowed transition graph. The APPROVED->PAID
// edge has no HTTP trigger yet; it is listed so the eventual payout flow
// passes the same guard as every other transition.
func claimStatusTransitions() map[ClaimStatus][]ClaimStatus {
	return map[ClaimStatus][]ClaimStatus{
		StatusDraft: {
			StatusPending,
		},
		StatusPending: {
			StatusApproved,
			StatusRejected,
		},
		StatusApproved: {
			StatusPaid,
		},
	}
}

// CanTransitionTo reports whether the transition s -> next is allowed.
func (s ClaimStatus) CanTransitionTo(next ClaimStatus) bool {
	for _, allowed := range claimStatusTransitions()[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Terminal reports whether a claim in this status can never transition again.
func (s ClaimStatus) Terminal() bool {
	return len(claimStatusTransitions()[s]) == 0
}

type Claim struct {
	ClaimID     string      `gorm:"primaryKey;column:claim_id" json:"claim_id"`
	UserID      string      `gorm:"column:user_id" json:"user_id"`
	Amount      float64     `gorm:"column:amount" json:"amount"`
	Purpose     string      `gorm:"column:purpose" json:"purpose"`
	Status      ClaimStatus `gorm:"column:status" json:"status"`
	ClaimDate   time.Time   `gorm:"column:claim_date" json:"claim_date"`
	SubmittedAt *time.Time  `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt    time.Time   `gorm:"column:create_at" json:"create_at"`
	UpdateAt    time.Time   `gorm:"column:update_at" json:"update_at"`

	// Relations
	User        *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Attachments []Attachment      `gorm:"foreignKey:ClaimID" json:"attachments,omitempty"`
	Approvals   []Approval        `gorm:"foreignKey:ClaimID" json:"approvals,omitempty"`
	History     []ApprovalHistory `gorm:"foreignKey:ClaimID" json:"history,omitempty"`
}

// TableName overrides
func (Claim) TableName() string {
	return "claims"
}
