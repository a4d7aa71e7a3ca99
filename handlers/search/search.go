package search

import (
	"net/http"

	"school-fees-portal-server/models"
	"school-fees-portal-server/utils"

	"github.com/gin-gonic/gin"
)

// Search does a substring search across students and payments for the
// dashboard's search-as-you-type box.
func Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{
			"students": []models.Student{},
			"payments": []models.FeePayment{},
		})
		return
	}

	pattern := "%" + query + "%"

	var students []models.Student
	if err := utils.PortalDB.Where("name LIKE ? OR admission_no LIKE ? OR class LIKE ?", pattern, pattern, pattern).Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search students"})
		return
	}

	var payments []models.FeePayment
	if err := utils.PortalDB.Where("student_name LIKE ? OR admission_no LIKE ? OR reference LIKE ?", pattern, pattern, pattern).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students": students,
		"payments": payments,
	})
}
