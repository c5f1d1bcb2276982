package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/socialite/internal/middleware"
	"github.com/thereayou/socialite/internal/models"
	"github.com/thereayou/socialite/pkg/auth"
)

func identityFrom(c *gin.Context) auth.Identity {
	return c.MustGet(middleware.IdentityKey).(auth.Identity)
}

// formatUserResponse форматирует пользователя без password и role
func formatUserResponse(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"surname":    user.Surname,
		"nick":       user.Nick,
		"email":      user.Email,
		"image":      user.Image,
		"created_at": user.CreatedAt,
	}
}

// formatPublicUser форматирует пользователя для чужих списков: без email
func formatPublicUser(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"surname":    user.Surname,
		"nick":       user.Nick,
		"image":      user.Image,
		"created_at": user.CreatedAt,
	}
}

func formatPublicationResponse(publication *models.Publication) gin.H {
	response := gin.H{
		"id":         publication.ID,
		"user_id":    publication.UserID,
		"text":       publication.Text,
		"file":       publication.File,
		"created_at": publication.CreatedAt,
	}
	if publication.User.ID != uuid.Nil {
		response["user"] = formatPublicUser(&publication.User)
	}
	return response
}

// formatFollowEdge форматирует связь, nil-безопасно
func formatFollowEdge(follow *models.Follow) gin.H {
	if follow == nil {
		return nil
	}
	return gin.H{
		"id":          follow.ID,
		"user_id":     follow.UserID,
		"followed_id": follow.FollowedID,
		"created_at":  follow.CreatedAt,
	}
}

// formatFollowResponse форматирует связь с обеими сторонами
func formatFollowResponse(follow *models.Follow) gin.H {
	return gin.H{
		"id":         follow.ID,
		"user":       formatPublicUser(&follow.User),
		"followed":   formatPublicUser(&follow.Followed),
		"created_at": follow.CreatedAt,
	}
}
