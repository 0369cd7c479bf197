package services

import (
	"fmt"
	"log"

	"smartclaim-api/config"
	"smartclaim-api/models"

	"gorm.io/gorm"
)

// Notifier delivers the owner-facing notice after a claim decision. Delivery
// is best effort: implementations log failures and never return them, so a
// committed decision cannot be failed retroactively by its notice.
type Notifier interface {
	NotifyDecision(claim *models.Claim, owner, decider *models.User, decision models.ClaimStatus, comment *string)
}

// NoopNotifier drops every notice. Used in tests and as the fallback when no
// notifier is configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyDecision(*models.Claim, *models.User, *models.User, models.ClaimStatus, *string) {
}

// DecisionNotifier writes an in-app notification row for the claim owner and,
// when SMTP is configured, sends an email as well.
type DecisionNotifier struct {
	db *gorm.DB
}

func NewDecisionNotifier(db *gorm.DB) *DecisionNotifier {
	return &DecisionNotifier{db: db}
}

func (n *DecisionNotifier) NotifyDecision(claim *models.Claim, owner, decider *models.User, decision models.ClaimStatus, comment *string) {
	title := "Claim approved"
	noticeType := "success"
	if decision == models.StatusRejected {
		title = "Claim rejected"
		noticeType = "error"
	}

	message := fmt.Sprintf("Your claim %q (%.2f) was %s by %s.",
		claim.Purpose, claim.Amount, decision.Label(), decider.Name)
	if comment != nil && *comment != "" {
		message += " Comment: " + *comment
	}

	claimID := claim.ClaimID
	notification := models.Notification{
		UserID:         owner.UserID,
		Title:          title,
		Message:        message,
		Type:           noticeType,
		RelatedClaimID: &claimID,
	}
	notification.CreateAt = claim.UpdateAt
	if err := n.db.Create(&notification).Error; err != nil {
		log.Printf("failed to store decision notification for claim %s: %v", claim.ClaimID, err)
	}

	if !config.MailConfigured() {
		return
	}
	html := fmt.Sprintf("<p>%s</p>", message)
	if err := config.SendMail([]string{owner.Email}, title, html); err != nil {
		log.Printf("failed to email decision notice for claim %s: %v", claim.ClaimID, err)
	}
}
