package controllers

import (
	"net/http"

	"smartclaim-api/models"

	"github.com/gin-gonic/gin"
)

type DecideClaimRequest struct {
	Status  string  `json:"status" binding:"required"`
	Comment *string `json:"comment"`
}

// DecideClaim approves or rejects a pending claim. The full precondition
// chain (known decider, approver role, existing claim, pending status, no
// self-approval, valid decision) lives in the lifecycle service so its order
// cannot drift per handler.
func DecideClaim(c *gin.Context) {
	var req DecideClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claim, err := lifecycleService().Decide(
		identityFromContext(c),
		c.Param("id"),
		models.ClaimStatus(req.Status),
		req.Comment,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}
