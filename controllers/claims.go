package controllers

import (
	"net/http"
	"time"

	"smartclaim-api/config"
	"smartclaim-api/services"

	"github.com/gin-gonic/gin"
)

func lifecycleService() *services.ClaimLifecycle {
	return services.NewClaimLifecycle(config.DB, services.NewDecisionNotifier(config.DB))
}

type CreateClaimRequest struct {
	Amount      float64                    `json:"amount" binding:"required"`
	Purpose     string                     `json:"purpose" binding:"required"`
	ClaimDate   string                     `json:"claim_date"`
	AsDraft     bool                       `json:"as_draft"`
	Attachments []services.AttachmentInput `json:"attachments" binding:"dive"`
}

// CreateClaim creates a claim in DRAFT or PENDING together with its
// attachment records. Attachment files must already be uploaded (see
// UploadAttachments); this handler only receives their metadata.
func CreateClaim(c *gin.Context) {
	var req CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateClaimInput{
		Amount:      req.Amount,
		Purpose:     req.Purpose,
		AsDraft:     req.AsDraft,
		Attachments: req.Attachments,
	}
	if req.ClaimDate != "" {
		claimDate, err := time.Parse("2006-01-02", req.ClaimDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid claim_date, expected YYYY-MM-DD"})
			return
		}
		input.ClaimDate = &claimDate
	}

	claim, err := lifecycleService().CreateClaim(identityFromContext(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, claim)
}

// ListClaims returns the caller's claims, newest first.
func ListClaims(c *gin.Context) {
	claims, err := lifecycleService().ListClaims(identityFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

// GetClaim returns one claim with attachments, decisions and history.
func GetClaim(c *gin.Context) {
	claim, err := lifecycleService().GetClaim(identityFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

// SubmitClaim moves a draft claim to PENDING.
func SubmitClaim(c *gin.Context) {
	claim, err := lifecycleService().SubmitClaim(identityFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}
