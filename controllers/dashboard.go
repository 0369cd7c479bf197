package controllers

import (
	"net/http"

	"smartclaim-api/config"
	"smartclaim-api/models"

	"github.com/gin-gonic/gin"
)

type statusCountRow struct {
	Status models.ClaimStatus `gorm:"column:status"`
	Count  int64              `gorm:"column:count"`
	Amount float64            `gorm:"column:amount"`
}

// GetDashboardStats returns the caller's claim counts and amounts grouped by
// status. Admins additionally get the system-wide pending queue and user
// count.
func GetDashboardStats(c *gin.Context) {
	email, _ := c.Get("email")

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var rows []statusCountRow
	if err := config.DB.Model(&models.Claim{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("user_id = ?", user.UserID).
		Group("status").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	byStatus := gin.H{}
	var total int64
	var totalAmount float64
	for _, row := range rows {
		byStatus[string(row.Status)] = gin.H{
			"count":  row.Count,
			"amount": row.Amount,
		}
		total += row.Count
		totalAmount += row.Amount
	}

	response := gin.H{
		"total":        total,
		"total_amount": totalAmount,
		"by_status":    byStatus,
	}

	if user.Role == models.RoleAdmin {
		var pendingClaims, totalUsers int64
		if err := config.DB.Model(&models.Claim{}).
			Where("status = ?", models.StatusPending).
			Count(&pendingClaims).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
			return
		}
		if err := config.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
			return
		}
		response["system"] = gin.H{
			"pending_claims": pendingClaims,
			"total_users":    totalUsers,
		}
	}

	c.JSON(http.StatusOK, response)
}
