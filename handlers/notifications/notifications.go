package notifications

import (
	"net/http"

	"school-fees-portal-server/models"
	"school-fees-portal-server/utils"

	"github.com/gin-gonic/gin"
)

func GetNotifications(c *gin.Context) {
	var notifications []models.Notification
	if err := utils.PortalDB.Order("created_at desc").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotification toggles a notification's unread flag.
func MarkNotification(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Unread *bool `json:"unread" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	var notification models.Notification
	if err := utils.PortalDB.First(&notification, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if err := utils.PortalDB.Model(&notification).Update("unread", *req.Unread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
