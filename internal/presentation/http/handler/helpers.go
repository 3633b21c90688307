package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetStaffID extracts the staff ID from the Gin context
func GetStaffID(c *gin.Context) *uuid.UUID {
	staffIDVal, exists := c.Get("staff_id")
	if !exists {
		return nil
	}
	staffID, ok := staffIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &staffID
}

// GetStaffRole extracts the staff role from the Gin context
func GetStaffRole(c *gin.Context) string {
	role, exists := c.Get("staff_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// GetStaffUsername extracts the staff username from the Gin context
func GetStaffUsername(c *gin.Context) string {
	username, exists := c.Get("staff_username")
	if !exists {
		return ""
	}
	return username.(string)
}
