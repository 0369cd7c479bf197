package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"smartclaim-api/models"
	"smartclaim-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Identity is the authenticated caller as resolved by the token layer. It is
// passed explicitly into every lifecycle operation; the service never reaches
// into ambient request state.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// AttachmentInput is the metadata of an already-uploaded receipt file.
type AttachmentInput struct {
	FileName string `json:"file_name" binding:"required"`
	FileURL  string `json:"file_url" binding:"required"`
	FileSize int64  `json:"file_size"`
	MimeType string `json:"mime_type" binding:"required"`
}

// CreateClaimInput carries the fields of a new claim. Attachments must be
// uploaded to object storage before the claim is created, so a failed upload
// can never leave a claim with missing files.
type CreateClaimInput struct {
	Amount      float64           `json:"amount"`
	Purpose     string            `json:"purpose"`
	ClaimDate   *time.Time        `json:"claim_date"`
	AsDraft     bool              `json:"as_draft"`
	Attachments []AttachmentInput `json:"attachments"`
}

// ClaimLifecycle validates and executes claim state transitions. Every
// successful transition writes the state mutation and its audit history row
// in one transaction.
type ClaimLifecycle struct {
	db       *gorm.DB
	notifier Notifier
}

func NewClaimLifecycle(db *gorm.DB, notifier Notifier) *ClaimLifecycle {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &ClaimLifecycle{db: db, notifier: notifier}
}

// ensureUser resolves the caller's user row by email, creating it on first
// claim action with the provider-assigned id from the token.
func (s *ClaimLifecycle) ensureUser(tx *gorm.DB, identity Identity) (*models.User, error) {
	var user models.User
	err := tx.Where("email = ?", identity.Email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistenceError(err)
	}

	name := identity.Name
	if name == "" {
		name = strings.SplitN(identity.Email, "@", 2)[0]
	}
	user = models.User{
		UserID:   identity.UserID,
		Email:    identity.Email,
		Name:     name,
		Role:     models.RoleEmployee,
		CreateAt: time.Now(),
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, persistenceError(err)
	}
	return &user, nil
}

// findUser resolves an existing user by email. Unlike ensureUser it never
// creates one: a missing row is a NotFound, distinct from an empty result.
func (s *ClaimLifecycle) findUser(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, persistenceError(err)
	}
	return &user, nil
}

func validateCreateClaim(input CreateClaimInput) error {
	if input.Amount <= 0 {
		return validationError("Amount must be greater than zero")
	}
	if utils.SanitizeInput(input.Purpose) == "" {
		return validationError("Purpose is required")
	}
	for _, att := range input.Attachments {
		if !models.AllowedAttachmentType(att.MimeType) {
			return validationError("Only JPG, PNG or PDF attachments are allowed")
		}
		if att.FileSize < 0 || att.FileSize > models.MaxAttachmentSize {
			return validationError("Attachment exceeds the maximum file size")
		}
	}
	return nil
}

// CreateClaim persists a new claim in DRAFT or PENDING together with its
// attachments and the first history row.
func (s *ClaimLifecycle) CreateClaim(identity Identity, input CreateClaimInput) (*models.Claim, error) {
	if err := validateCreateClaim(input); err != nil {
		return nil, err
	}

	now := time.Now()
	status := models.StatusPending
	action := models.ActionSubmitted
	var submittedAt *time.Time
	if input.AsDraft {
		status = models.StatusDraft
		action = models.ActionCreatedDraft
	} else {
		submittedAt = &now
	}

	claimDate := now
	if input.ClaimDate != nil {
		claimDate = *input.ClaimDate
	}

	claim := models.Claim{
		ClaimID:     uuid.NewString(),
		Amount:      input.Amount,
		Purpose:     utils.SanitizeInput(input.Purpose),
		Status:      status,
		ClaimDate:   claimDate,
		SubmittedAt: submittedAt,
		CreateAt:    now,
		UpdateAt:    now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.ensureUser(tx, identity)
		if err != nil {
			return err
		}
		claim.UserID = user.UserID

		for _, att := range input.Attachments {
			claim.Attachments = append(claim.Attachments, models.Attachment{
				FileName: att.FileName,
				FileURL:  att.FileURL,
				FileSize: att.FileSize,
				MimeType: att.MimeType,
				CreateAt: now,
			})
		}

		if err := tx.Create(&claim).Error; err != nil {
			return persistenceError(err)
		}

		history := models.ApprovalHistory{
			ClaimID:  claim.ClaimID,
			UserID:   user.UserID,
			Action:   action,
			ToStatus: status,
			CreateAt: now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return persistenceError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &claim, nil
}

// ListClaims returns the requester's own claims, newest first, including
// attachments and decisions. A requester without a user record gets a
// NotFound; a user with no claims gets an empty list.
func (s *ClaimLifecycle) ListClaims(identity Identity) ([]models.Claim, error) {
	user, err := s.findUser(identity.Email)
	if err != nil {
		return nil, err
	}

	var claims []models.Claim
	if err := s.db.
		Preload("Attachments").
		Preload("Approvals").
		Preload("Approvals.Approver").
		Where("user_id = ?", user.UserID).
		Order("create_at DESC").
		Find(&claims).Error; err != nil {
		return nil, persistenceError(err)
	}
	return claims, nil
}

// GetClaim returns one claim with its attachments, decisions and full audit
// history. Visible to the claim's owner and to approvers.
func (s *ClaimLifecycle) GetClaim(identity Identity, claimID string) (*models.Claim, error) {
	user, err := s.findUser(identity.Email)
	if err != nil {
		return nil, err
	}

	var claim models.Claim
	if err := s.db.
		Preload("User").
		Preload("Attachments").
		Preload("Approvals").
		Preload("Approvals.Approver").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("create_at ASC")
		}).
		Preload("History.User").
		Where("claim_id = ?", claimID).
		First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Claim not found")
		}
		return nil, persistenceError(err)
	}

	if claim.UserID != user.UserID && !models.RoleCanApprove(user.Role) {
		return nil, authorizationError("Insufficient permissions")
	}
	return &claim, nil
}

// SubmitClaim moves a draft to PENDING, stamping the submission time and
// appending the SUBMITTED history row.
func (s *ClaimLifecycle) SubmitClaim(identity Identity, claimID string) (*models.Claim, error) {
	user, err := s.findUser(identity.Email)
	if err != nil {
		return nil, err
	}

	var claim models.Claim
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("claim_id = ?", claimID).
			First(&claim).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("Claim not found")
			}
			return persistenceError(err)
		}

		if claim.UserID != user.UserID {
			return authorizationError("Only the claim owner can submit it")
		}
		if !claim.Status.CanTransitionTo(models.StatusPending) {
			return conflictError("Claim is not a draft")
		}

		now := time.Now()
		fromStatus := claim.Status
		claim.Status = models.StatusPending
		claim.SubmittedAt = &now
		claim.UpdateAt = now

		if err := tx.Model(&models.Claim{}).
			Where("claim_id = ?", claim.ClaimID).
			Updates(map[string]interface{}{
				"status":       claim.Status,
				"submitted_at": claim.SubmittedAt,
				"update_at":    now,
			}).Error; err != nil {
			return persistenceError(err)
		}

		history := models.ApprovalHistory{
			ClaimID:    claim.ClaimID,
			UserID:     user.UserID,
			Action:     models.ActionSubmitted,
			FromStatus: &fromStatus,
			ToStatus:   models.StatusPending,
			CreateAt:   now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return persistenceError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// Decide approves or rejects a pending claim. Preconditions are checked in a
// fixed order, each with its own failure; the claim row is re-read under a
// row lock inside the transaction so two racing approvers resolve to exactly
// one success and one conflict.
func (s *ClaimLifecycle) Decide(identity Identity, claimID string, decision models.ClaimStatus, comment *string) (*models.Claim, error) {
	decider, err := s.findUser(identity.Email)
	if err != nil {
		return nil, err
	}

	if !models.RoleCanApprove(decider.Role) {
		return nil, authorizationError("Insufficient permissions")
	}

	var claim models.Claim
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("claim_id = ?", claimID).
			First(&claim).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("Claim not found")
			}
			return persistenceError(err)
		}

		if claim.Status != models.StatusPending {
			return conflictError("Claim is not pending approval")
		}
		if claim.UserID == decider.UserID {
			return authorizationError("Cannot approve your own claim")
		}
		if decision != models.StatusApproved && decision != models.StatusRejected {
			return validationError("Invalid decision")
		}

		now := time.Now()
		claim.Status = decision
		claim.UpdateAt = now

		if err := tx.Model(&models.Claim{}).
			Where("claim_id = ?", claim.ClaimID).
			Updates(map[string]interface{}{
				"status":    decision,
				"update_at": now,
			}).Error; err != nil {
			return persistenceError(err)
		}

		approval := models.Approval{
			ClaimID:    claim.ClaimID,
			ApproverID: decider.UserID,
			Status:     decision,
			Comment:    comment,
			CreateAt:   now,
		}
		if err := tx.Create(&approval).Error; err != nil {
			return persistenceError(err)
		}
		claim.Approvals = append(claim.Approvals, approval)

		fromStatus := models.StatusPending
		action := models.ActionApproved
		if decision == models.StatusRejected {
			action = models.ActionRejected
		}
		history := models.ApprovalHistory{
			ClaimID:    claim.ClaimID,
			UserID:     decider.UserID,
			Action:     action,
			FromStatus: &fromStatus,
			ToStatus:   decision,
			Comment:    comment,
			CreateAt:   now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return persistenceError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Owner notification is best effort and must never undo a committed
	// decision.
	s.notifyOwner(&claim, decider, decision, comment)

	return &claim, nil
}

func (s *ClaimLifecycle) notifyOwner(claim *models.Claim, decider *models.User, decision models.ClaimStatus, comment *string) {
	var owner models.User
	if err := s.db.Where("user_id = ?", claim.UserID).First(&owner).Error; err != nil {
		log.Printf("decision notice skipped, owner %s not loaded: %v", claim.UserID, err)
		return
	}
	s.notifier.NotifyDecision(claim, &owner, decider, decision, comment)
}

// ChangeUserRole updates a user's role. Admin only; takes effect for the
// target's next authorization check and leaves past approvals untouched.
func (s *ClaimLifecycle) ChangeUserRole(identity Identity, targetUserID, newRole string) (*models.User, error) {
	actor, err := s.findUser(identity.Email)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin {
		return nil, authorizationError("Insufficient permissions")
	}
	if !models.RoleValid(newRole) {
		return nil, validationError("Invalid role")
	}

	var target models.User
	if err := s.db.Where("user_id = ?", targetUserID).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, persistenceError(err)
	}

	now := time.Now()
	target.Role = newRole
	target.UpdateAt = &now
	if err := s.db.Model(&models.User{}).
		Where("user_id = ?", target.UserID).
		Updates(map[string]interface{}{
			"role":      newRole,
			"update_at": now,
		}).Error; err != nil {
		return nil, persistenceError(err)
	}
	return &target, nil
}

// ListUsers returns every user, admin only.
func (s *ClaimLifecycle) ListUsers(identity Identity) ([]models.User, error) {
	actor, err := s.findUser(identity.Email)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin {
		return nil, authorizationError("Insufficient permissions")
	}

	var users []models.User
	if err := s.db.Order("create_at ASC").Find(&users).Error; err != nil {
		return nil, persistenceError(err)
	}
	return users, nil
}
