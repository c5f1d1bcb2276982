package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/socialite/internal/database"
	"github.com/thereayou/socialite/internal/handlers"
	"github.com/thereayou/socialite/internal/middleware"
	"github.com/thereayou/socialite/internal/models"
	"github.com/thereayou/socialite/internal/services"
	ws "github.com/thereayou/socialite/internal/websocket"
	"github.com/thereayou/socialite/pkg/auth"
)

type testEnv struct {
	router    *gin.Engine
	db        *database.Database
	hub       *ws.Hub
	jwtMgr    *auth.JWTManager
	avatarDir string
	mediaDir  string

	identity auth.Identity
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Follow{}, &models.Publication{}))

	env := &testEnv{
		db:        database.NewDatabase(gdb),
		hub:       ws.NewHub(),
		jwtMgr:    auth.NewJWTManager("test-secret", time.Hour),
		avatarDir: t.TempDir(),
		mediaDir:  t.TempDir(),
	}

	followSvc := services.NewFollowService(env.db)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	userH := handlers.NewUserHandler(env.db, env.jwtMgr, rdb, followSvc, env.avatarDir)
	publicationH := handlers.NewPublicationHandler(env.db, followSvc, env.hub, env.mediaDir)
	followH := handlers.NewFollowHandler(env.db, followSvc, env.hub)

	// Вместо JWT middleware подставляем identity из окружения теста
	stubAuth := func(c *gin.Context) {
		c.Set(middleware.IdentityKey, env.identity)
		c.Next()
	}

	r := gin.New()
	api := r.Group("/api")

	user := api.Group("/user")
	user.POST("/register", userH.Register)
	user.POST("/login", userH.Login)
	user.POST("/logout", stubAuth, userH.Logout)
	user.GET("/profile/:id", stubAuth, userH.Profile)
	user.GET("/list", stubAuth, userH.List)
	user.GET("/list/:page", stubAuth, userH.List)
	user.PUT("/update", stubAuth, userH.Update)
	user.POST("/upload", stubAuth, userH.Upload)
	user.GET("/avatar/:file", stubAuth, userH.Avatar)
	user.GET("/counters", stubAuth, userH.Counters)
	user.GET("/counters/:id", stubAuth, userH.Counters)

	publication := api.Group("/publication", stubAuth)
	publication.POST("/save", publicationH.Save)
	publication.GET("/detail/:id", publicationH.Detail)
	publication.DELETE("/remove/:id", publicationH.Remove)
	publication.GET("/user/:id", publicationH.User)
	publication.GET("/user/:id/:page", publicationH.User)
	publication.POST("/upload/:id", publicationH.Upload)
	publication.GET("/media/:file", publicationH.Media)
	publication.GET("/feed", publicationH.Feed)
	publication.GET("/feed/:page", publicationH.Feed)

	follow := api.Group("/follow", stubAuth)
	follow.POST("/save", followH.Save)
	follow.DELETE("/unfollow/:id", followH.Unfollow)
	follow.GET("/following", followH.Following)
	follow.GET("/following/:id", followH.Following)
	follow.GET("/following/:id/:page", followH.Following)
	follow.GET("/followers", followH.Followers)
	follow.GET("/followers/:id", followH.Followers)
	follow.GET("/followers/:id/:page", followH.Followers)

	env.router = r
	return env
}

func (e *testEnv) as(user *models.User) {
	e.identity = auth.Identity{ID: user.ID, Name: user.Name, Nick: user.Nick}
}

func (e *testEnv) createUser(t *testing.T, name, nick, email string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:      name,
		Nick:      nick,
		Email:     email,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
	require.NoError(t, e.db.SaveUser(user))
	return user
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, w.Code, "body: %s", w.Body.String())
}

func (e *testEnv) upload(t *testing.T, path, filename string, content []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file0", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}
