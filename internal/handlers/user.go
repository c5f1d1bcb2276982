package handlers

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/socialite/internal/database"
	"github.com/thereayou/socialite/internal/handlers/dto"
	"github.com/thereayou/socialite/internal/models"
	"github.com/thereayou/socialite/internal/services"
	"github.com/thereayou/socialite/pkg/auth"
)

type UserHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	redis      *redis.Client
	follows    *services.FollowService
	avatarDir  string
}

func NewUserHandler(db *database.Database, jwtMgr *auth.JWTManager, rdb *redis.Client, follows *services.FollowService, avatarDir string) *UserHandler {
	return &UserHandler{
		db:         db,
		jwtManager: jwtMgr,
		redis:      rdb,
		follows:    follows,
		avatarDir:  avatarDir,
	}
}

// Register регистрирует нового пользователя
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "missing or invalid fields"})
		return
	}

	existing, err := h.db.FindUsersByEmailOrNick(req.Email, req.Nick)
	if err != nil {
		log.Printf("Register: duplicate lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	// Дубликат email или nick не считается ошибкой
	if len(existing) >= 1 {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "user already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "cannot hash password"})
		return
	}

	user := &models.User{
		Name:      req.Name,
		Surname:   req.Surname,
		Nick:      req.Nick,
		Email:     req.Email,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}

	if err := h.db.SaveUser(user); err != nil {
		log.Printf("Register: save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "user registered successfully",
		"user":    formatUserResponse(user),
	})
}

// Login проверяет учетные данные и выдает JWT
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "missing or invalid fields"})
		return
	}

	user, err := h.db.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "user does not exist"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "wrong credentials"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String(), user.Name, user.Nick)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "logged in successfully",
		"user": gin.H{
			"id":   user.ID,
			"name": user.Name,
			"nick": user.Nick,
		},
		"token": token,
	})
}

// Logout ставит токен в черный список в Redis до истечения
func (h *UserHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
		return
	}

	ttl := time.Until(exp)
	h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, ttl)

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "logged out"})
}

// Profile возвращает профиль пользователя и статус взаимной подписки
func (h *UserHandler) Profile(c *gin.Context) {
	identity := identityFrom(c)
	id := c.Param("id")

	user, err := h.db.GetUser(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "user does not exist"})
		return
	}

	following, follower := h.follows.FollowThisUser(identity.ID.String(), id)

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"user":      formatUserResponse(user),
		"following": formatFollowEdge(following),
		"follower":  formatFollowEdge(follower),
	})
}

// List возвращает страницу пользователей
func (h *UserHandler) List(c *gin.Context) {
	identity := identityFrom(c)
	page := pageParam(c)

	users, err := h.db.ListUsers(pageOffset(page), itemsPerPage)
	if err != nil {
		log.Printf("List: query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	total, err := h.db.CountUsers()
	if err != nil {
		log.Printf("List: count failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	result := make([]gin.H, len(users))
	for i := range users {
		result[i] = formatPublicUser(&users[i])
	}

	followIDs := h.follows.FollowUserIDs(identity.ID.String())

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"users":          result,
		"page":           page,
		"itemsPerPage":   itemsPerPage,
		"total":          total,
		"pages":          totalPages(total),
		"user_following": followIDs.Following,
		"user_follow_me": followIDs.Followers,
	})
}

// Update обновляет профиль текущего пользователя
func (h *UserHandler) Update(c *gin.Context) {
	identity := identityFrom(c)

	var req dto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "missing or invalid fields"})
		return
	}

	existing, err := h.db.FindUsersByEmailOrNick(req.Email, req.Nick)
	if err != nil {
		log.Printf("Update: duplicate lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	// Email или nick заняты другим пользователем — не ошибка
	for _, u := range existing {
		if u.ID != identity.ID {
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "user already exists"})
			return
		}
	}

	user, err := h.db.GetUser(identity.ID.String())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "failed to update user"})
		return
	}

	// Обновляем только переданные поля
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Surname != "" {
		user.Surname = req.Surname
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Nick != "" {
		user.Nick = req.Nick
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "cannot hash password"})
			return
		}
		user.Password = string(hash)
	}

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "user updated successfully",
		"user":    formatUserResponse(user),
	})
}

// Upload сохраняет аватар текущего пользователя
func (h *UserHandler) Upload(c *gin.Context) {
	identity := identityFrom(c)

	file, err := c.FormFile("file0")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "request does not include an image"})
		return
	}

	filename, path, err := storeUpload(c, h.avatarDir, file)
	if err != nil {
		log.Printf("Upload: store failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "internal server error"})
		return
	}

	if !validExtension(file.Filename) {
		os.Remove(path)
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid file extension"})
		return
	}

	rows, err := h.db.UpdateUserImage(identity.ID.String(), filename)
	if err != nil || rows == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "avatar upload failed"})
		return
	}

	user, err := h.db.GetUser(identity.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "avatar upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   formatUserResponse(user),
		"file":   filename,
	})
}

// Avatar отдает файл аватара
func (h *UserHandler) Avatar(c *gin.Context) {
	file := filepath.Base(c.Param("file"))
	path := filepath.Join(h.avatarDir, file)

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "image does not exist"})
		return
	}

	c.File(path)
}

// Counters возвращает счетчики подписок, подписчиков и публикаций
func (h *UserHandler) Counters(c *gin.Context) {
	identity := identityFrom(c)

	userID := identity.ID.String()
	if id := c.Param("id"); id != "" {
		userID = id
	}

	following, err := h.db.CountFollowing(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "counters failed"})
		return
	}

	followed, err := h.db.CountFollowers(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "counters failed"})
		return
	}

	publications, err := h.db.CountUserPublications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "counters failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"userId":       userID,
		"following":    following,
		"followed":     followed,
		"publications": publications,
	})
}
