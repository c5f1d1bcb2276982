package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/socialite/internal/handlers"
	"github.com/thereayou/socialite/internal/middleware"
	"github.com/thereayou/socialite/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	userH *handlers.UserHandler,
	publicationH *handlers.PublicationHandler,
	followH *handlers.FollowHandler,
	wsH *handlers.WebSocketHandler,
) {
	api := r.Group("/api")

	authRequired := middleware.AuthMiddleware(jwtMgr, rdb)

	// User endpoints
	user := api.Group("/user")
	{
		user.POST("/register", userH.Register)
		user.POST("/login", userH.Login)

		user.POST("/logout", authRequired, userH.Logout)
		user.GET("/profile/:id", authRequired, userH.Profile)
		user.GET("/list", authRequired, userH.List)
		user.GET("/list/:page", authRequired, userH.List)
		user.PUT("/update", authRequired, userH.Update)
		user.POST("/upload", authRequired, userH.Upload)
		user.GET("/avatar/:file", authRequired, userH.Avatar)
		user.GET("/counters", authRequired, userH.Counters)
		user.GET("/counters/:id", authRequired, userH.Counters)
	}

	// Publication endpoints
	publication := api.Group("/publication", authRequired)
	{
		publication.POST("/save", publicationH.Save)
		publication.GET("/detail/:id", publicationH.Detail)
		publication.DELETE("/remove/:id", publicationH.Remove)
		publication.GET("/user/:id", publicationH.User)
		publication.GET("/user/:id/:page", publicationH.User)
		publication.POST("/upload/:id", publicationH.Upload)
		publication.GET("/media/:file", publicationH.Media)
		publication.GET("/feed", publicationH.Feed)
		publication.GET("/feed/:page", publicationH.Feed)
	}

	// Follow endpoints
	follow := api.Group("/follow", authRequired)
	{
		follow.POST("/save", followH.Save)
		follow.DELETE("/unfollow/:id", followH.Unfollow)
		follow.GET("/following", followH.Following)
		follow.GET("/following/:id", followH.Following)
		follow.GET("/following/:id/:page", followH.Following)
		follow.GET("/followers", followH.Followers)
		follow.GET("/followers/:id", followH.Followers)
		follow.GET("/followers/:id/:page", followH.Followers)
	}

	// Живая лента по WebSocket
	api.GET("/feed/live", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleFeed)
}
