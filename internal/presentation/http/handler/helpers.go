package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	emailVal, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	email, ok := emailVal.(string)
	if !ok {
		return ""
	}
	return email
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	rolesVal, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	roles, ok := rolesVal.([]string)
	if !ok {
		return nil
	}
	return roles
}

// GetUserPermissions extracts the user permissions from the Gin context
func GetUserPermissions(c *gin.Context) []string {
	permissionsVal, exists := c.Get("user_permissions")
	if !exists {
		return nil
	}
	permissions, ok := permissionsVal.([]string)
	if !ok {
		return nil
	}
	return permissions
}

// HasPermission checks if the user carries the given permission
func HasPermission(c *gin.Context, permission string) bool {
	for _, p := range GetUserPermissions(c) {
		if p == permission {
			return true
		}
	}
	return false
}

// IsSuperAdmin checks if the user has the super-admin role
func IsSuperAdmin(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "super-admin" {
			return true
		}
	}
	return false
}
