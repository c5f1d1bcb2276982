package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/socialite/internal/database"
	"github.com/thereayou/socialite/internal/handlers/dto"
	"github.com/thereayou/socialite/internal/models"
	"github.com/thereayou/socialite/internal/services"
	ws "github.com/thereayou/socialite/internal/websocket"
)

type PublicationHandler struct {
	db       *database.Database
	follows  *services.FollowService
	hub      *ws.Hub
	mediaDir string
}

func NewPublicationHandler(db *database.Database, follows *services.FollowService, hub *ws.Hub, mediaDir string) *PublicationHandler {
	return &PublicationHandler{
		db:       db,
		follows:  follows,
		hub:      hub,
		mediaDir: mediaDir,
	}
}

// Save сохраняет новую публикацию и уведомляет подписчиков
func (h *PublicationHandler) Save(c *gin.Context) {
	identity := identityFrom(c)

	var req dto.PublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "publication text is required"})
		return
	}

	publication := &models.Publication{
		UserID:    identity.ID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}

	if err := h.db.SavePublication(publication); err != nil {
		log.Printf("Save publication failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	followIDs := h.follows.FollowUserIDs(identity.ID.String())
	h.hub.NotifyUsers(followIDs.Followers, ws.TypePublication, identity.ID, formatPublicationResponse(publication))

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     "publication saved",
		"publication": formatPublicationResponse(publication),
	})
}

// Detail возвращает публикацию по id
func (h *PublicationHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	publication, err := h.db.GetPublication(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "publication does not exist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"publication": formatPublicationResponse(publication),
	})
}

// Remove удаляет публикацию, если текущий пользователь - автор
func (h *PublicationHandler) Remove(c *gin.Context) {
	identity := identityFrom(c)
	id := c.Param("id")

	rows, err := h.db.DeleteOwnPublication(id, identity.ID.String())
	if err != nil || rows == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "publication has not been deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     "publication deleted",
		"publication": id,
	})
}

// User возвращает страницу публикаций пользователя
func (h *PublicationHandler) User(c *gin.Context) {
	userID := c.Param("id")
	page := pageParam(c)

	publications, err := h.db.ListUserPublications(userID, pageOffset(page), itemsPerPage)
	if err != nil {
		log.Printf("User publications query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	total, err := h.db.CountUserPublications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	// Пустой список считается ошибкой, а не пустым успехом
	if len(publications) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "no publications to show"})
		return
	}

	result := make([]gin.H, len(publications))
	for i := range publications {
		result[i] = formatPublicationResponse(&publications[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      "user publications",
		"page":         page,
		"total":        total,
		"pages":        totalPages(total),
		"publications": result,
	})
}

// Upload сохраняет медиафайл публикации
func (h *PublicationHandler) Upload(c *gin.Context) {
	identity := identityFrom(c)
	id := c.Param("id")

	file, err := c.FormFile("file0")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "request does not include an image"})
		return
	}

	filename, path, err := storeUpload(c, h.mediaDir, file)
	if err != nil {
		log.Printf("Upload publication media failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	if !validExtension(file.Filename) {
		os.Remove(path)
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid file extension"})
		return
	}

	rows, err := h.db.UpdatePublicationFile(id, identity.ID.String(), filename)
	if err != nil || rows == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "media upload failed"})
		return
	}

	publication, err := h.db.GetPublication(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "media upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"publication": formatPublicationResponse(publication),
		"file":        filename,
	})
}

// Media отдает медиафайл публикации
func (h *PublicationHandler) Media(c *gin.Context) {
	file := filepath.Base(c.Param("file"))
	path := filepath.Join(h.mediaDir, file)

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "image does not exist"})
		return
	}

	c.File(path)
}

// Feed возвращает страницу публикаций пользователей, на которых подписан текущий
func (h *PublicationHandler) Feed(c *gin.Context) {
	identity := identityFrom(c)
	page := pageParam(c)

	followIDs := h.follows.FollowUserIDs(identity.ID.String())

	publications, err := h.db.ListFeed(followIDs.Following, pageOffset(page), itemsPerPage)
	if err != nil {
		log.Printf("Feed query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to get followed users"})
		return
	}

	total, err := h.db.CountFeed(followIDs.Following)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "failed to get followed users"})
		return
	}

	// Пустая лента считается ошибкой, а не пустым успехом
	if len(publications) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "no publications to show"})
		return
	}

	result := make([]gin.H, len(publications))
	for i := range publications {
		result[i] = formatPublicationResponse(&publications[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      "publications feed",
		"following":    followIDs.Following,
		"total":        total,
		"page":         page,
		"pages":        totalPages(total),
		"publications": result,
	})
}
