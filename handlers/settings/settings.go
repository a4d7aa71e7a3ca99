package settings

import (
	"net/http"
	"os"

	"school-fees-portal-server/models"
	"school-fees-portal-server/utils"

	"github.com/gin-gonic/gin"
)

func GetSettings(c *gin.Context) {
	var settings models.SchoolSetting
	if err := utils.PortalDB.First(&settings).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settings not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func UpdateSettings(c *gin.Context) {
	var input struct {
		SchoolName string `json:"school_name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Address    string `json:"address"`
		Currency   string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	var settings models.SchoolSetting
	if err := utils.PortalDB.First(&settings).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settings not found"})
		return
	}

	if err := utils.PortalDB.Model(&settings).Updates(map[string]interface{}{
		"school_name": input.SchoolName,
		"email":       input.Email,
		"phone":       input.Phone,
		"address":     input.Address,
		"currency":    input.Currency,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})
}

// GetConfigStatus reports which M-Pesa variables are present without ever
// echoing their values, so a deployment can be checked from the dashboard.
func GetConfigStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"hasConsumerKey":    os.Getenv("MPESA_CONSUMER_KEY") != "",
		"hasConsumerSecret": os.Getenv("MPESA_CONSUMER_SECRET") != "",
		"hasPasskey":        os.Getenv("MPESA_PASSKEY") != "",
		"hasCallbackUrl":    os.Getenv("MPESA_CALLBACK_URL") != "",
		"businessShortCode": os.Getenv("MPESA_BUSINESS_SHORT_CODE"),
		"environment":       os.Getenv("MPESA_ENVIRONMENT"),
	})
}
