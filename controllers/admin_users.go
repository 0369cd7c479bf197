package controllers

import (
	"net/http"

	"smartclaim-api/config"
	"smartclaim-api/models"

	"github.com/gin-gonic/gin"
)

type userWithClaimCount struct {
	models.User
	ClaimCount int64 `json:"claim_count"`
}

// ListUsers returns every user account with its claim count. Admin only.
func ListUsers(c *gin.Context) {
	users, err := lifecycleService().ListUsers(identityFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	type countRow struct {
		UserID string `gorm:"column:user_id"`
		Count  int64  `gorm:"column:count"`
	}
	var counts []countRow
	if err := config.DB.Model(&models.Claim{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	countByUser := make(map[string]int64, len(counts))
	for _, row := range counts {
		countByUser[row.UserID] = row.Count
	}

	result := make([]userWithClaimCount, 0, len(users))
	for _, user := range users {
		result = append(result, userWithClaimCount{User: user, ClaimCount: countByUser[user.UserID]})
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeUserRole updates the target user's role. The new role is effective
// for the target's next request; past approvals are not revisited.
func ChangeUserRole(c *gin.Context) {
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := lifecycleService().ChangeUserRole(identityFromContext(c), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
