package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
)

// Success writes a 200 response with the payload wrapped in the standard envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Paginated writes a 200 response with paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
}

// Error maps a domain error to its HTTP status code.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch domain.KindOf(err) {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict, domain.KindInvalidState:
		status = http.StatusConflict
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindInternal:
		message = "internal server error"
	}

	c.JSON(status, gin.H{"success": false, "error": message})
}
