package receipts

import (
	"net/http"

	"school-fees-portal-server/models"
	"school-fees-portal-server/utils"

	"github.com/gin-gonic/gin"
)

func GetReceipts(c *gin.Context) {
	var receipts []models.Receipt
	if err := utils.PortalDB.Order("created_at desc").Find(&receipts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch receipts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipts": receipts})
}

func GetReceipt(c *gin.Context) {
	receiptNo := c.Param("receipt_no")
	if receiptNo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt number is required"})
		return
	}

	var receipt models.Receipt
	if err := utils.PortalDB.Where("receipt_no = ?", receiptNo).First(&receipt).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}
