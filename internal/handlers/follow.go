package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/socialite/internal/database"
	"github.com/thereayou/socialite/internal/handlers/dto"
	"github.com/thereayou/socialite/internal/models"
	"github.com/thereayou/socialite/internal/services"
	ws "github.com/thereayou/socialite/internal/websocket"
)

type FollowHandler struct {
	db      *database.Database
	follows *services.FollowService
	hub     *ws.Hub
}

func NewFollowHandler(db *database.Database, follows *services.FollowService, hub *ws.Hub) *FollowHandler {
	return &FollowHandler{db: db, follows: follows, hub: hub}
}

// Save создает подписку текущего пользователя на другого
func (h *FollowHandler) Save(c *gin.Context) {
	identity := identityFrom(c)

	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "missing or invalid fields"})
		return
	}

	followedID, err := uuid.Parse(req.Followed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid user id"})
		return
	}

	follow := &models.Follow{
		UserID:     identity.ID,
		FollowedID: followedID,
		CreatedAt:  time.Now(),
	}

	if err := h.db.SaveFollow(follow); err != nil {
		log.Printf("Save follow failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not follow user"})
		return
	}

	h.hub.NotifyUsers([]uuid.UUID{followedID}, ws.TypeFollow, identity.ID, formatFollowEdge(follow))

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"identity": gin.H{
			"id":   identity.ID,
			"name": identity.Name,
			"nick": identity.Nick,
		},
		"follow": formatFollowEdge(follow),
	})
}

// Unfollow удаляет подписку текущего пользователя
func (h *FollowHandler) Unfollow(c *gin.Context) {
	identity := identityFrom(c)
	followedID := c.Param("id")

	rows, err := h.db.DeleteFollow(identity.ID.String(), followedID)
	if err != nil || rows == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "you have not unfollowed anyone"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "follow deleted successfully",
	})
}

// Following возвращает страницу подписок пользователя
func (h *FollowHandler) Following(c *gin.Context) {
	identity := identityFrom(c)

	userID := identity.ID.String()
	if id := c.Param("id"); id != "" {
		userID = id
	}
	page := pageParam(c)

	follows, err := h.db.ListFollowing(userID, pageOffset(page), itemsPerPage)
	if err != nil {
		log.Printf("Following query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	total, err := h.db.CountFollowing(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	result := make([]gin.H, len(follows))
	for i := range follows {
		result[i] = formatFollowResponse(&follows[i])
	}

	followIDs := h.follows.FollowUserIDs(identity.ID.String())

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"message":        "users I am following",
		"follows":        result,
		"total":          total,
		"pages":          totalPages(total),
		"user_following": followIDs.Following,
		"user_follow_me": followIDs.Followers,
	})
}

// Followers возвращает страницу подписчиков пользователя
func (h *FollowHandler) Followers(c *gin.Context) {
	identity := identityFrom(c)

	userID := identity.ID.String()
	if id := c.Param("id"); id != "" {
		userID = id
	}
	page := pageParam(c)

	follows, err := h.db.ListFollowers(userID, pageOffset(page), itemsPerPage)
	if err != nil {
		log.Printf("Followers query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	total, err := h.db.CountFollowers(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	result := make([]gin.H, len(follows))
	for i := range follows {
		result[i] = formatFollowResponse(&follows[i])
	}

	followIDs := h.follows.FollowUserIDs(identity.ID.String())

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"message":        "users following me",
		"follows":        result,
		"total":          total,
		"pages":          totalPages(total),
		"user_following": followIDs.Following,
		"user_follow_me": followIDs.Followers,
	})
}
