package router

import (
	"io/fs"
	"net/http"
	"strings"
	"time"
	"yatube/internal/config"
	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/services"
	"yatube/internal/storage"
	"yatube/internal/utils"
	"yatube/internal/view"
	"yatube/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	sessionCookieName = "yatube_session"
	sessionMaxAge     = 14 * 24 * 60 * 60
	indexCacheSize    = 128
)

// New builds the engine with every middleware and route.
func New(cfg *config.Config, db *gorm.DB, store storage.Storage) (*gin.Engine, error) {
	r := gin.Default()
	_ = r.SetTrustedProxies(nil)

	if cfg.Gzip {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/"})))
	}
	if cfg.DebugMode {
		r.Use(middleware.ErrorLogMiddleware)
	}

	// Setup Sessions
	var sessionStore sessions.Store
	if cfg.SessionStore == "db" {
		sessionStore = gormsessions.NewStore(db, true, []byte(cfg.SessionSecret))
	} else {
		sessionStore = cookie.NewStore([]byte(cfg.SessionSecret))
	}
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, sessionStore))

	renderer, err := view.LoadTemplates(web.FS, store)
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	// Static Assets
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))
	if disk, ok := store.(*storage.DiskStorage); ok && disk.URLPrefix != "" {
		r.Static(disk.URLPrefix, disk.BasePath)
	}

	r.Use(middleware.LoadUser(db))

	cache, err := utils.NewPageCache(indexCacheSize, cfg.IndexCacheTTL)
	if err != nil {
		return nil, err
	}
	images := services.NewImageService(store, cfg.ImageMaxWidth)
	follows := services.NewFollowService(db)

	authHandler := handlers.NewAuthHandler(db)
	postHandler := handlers.NewPostHandler(db, cfg.PostsPerPage, cache, images)
	commentHandler := handlers.NewCommentHandler(db)
	profileHandler := handlers.NewProfileHandler(db, cfg.PostsPerPage, follows)
	apiHandler := handlers.NewAPIHandler(db, images)

	// Public Routes
	r.GET("/", postHandler.Index)
	r.GET("/group/:slug/", postHandler.GroupPosts)
	r.GET("/profile/:username/", profileHandler.Profile)
	r.GET("/posts/:post_id/", postHandler.Detail)
	r.GET("/search/", postHandler.Search)

	r.GET("/auth/signup/", authHandler.ShowSignup)
	r.POST("/auth/signup/", authHandler.Signup)
	r.GET("/auth/login/", authHandler.ShowLogin)
	r.POST("/auth/login/", authHandler.Login)
	r.GET("/auth/logout/", authHandler.Logout)
	r.POST("/auth/logout/", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create/", postHandler.ShowCreate)
		authorized.POST("/create/", postHandler.Create)
		authorized.GET("/posts/:post_id/edit/", postHandler.ShowEdit)
		authorized.POST("/posts/:post_id/edit/", postHandler.Update)
		authorized.POST("/posts/:post_id/delete/", postHandler.Delete)

		authorized.POST("/posts/:post_id/comment/", commentHandler.Add)
		authorized.GET("/posts/:post_id/comment/:comment_id/edit/", commentHandler.ShowEdit)
		authorized.POST("/posts/:post_id/comment/:comment_id/edit/", commentHandler.Update)
		authorized.POST("/posts/:post_id/comment/:comment_id/delete/", commentHandler.Delete)

		authorized.GET("/follow/", profileHandler.FollowIndex)
		authorized.POST("/profile/:username/follow/", profileHandler.Follow)
		authorized.POST("/profile/:username/unfollow/", profileHandler.Unfollow)
	}

	api := r.Group("/api")
	api.Use(cors.New(corsConfig(cfg.CORSOrigins)), (&middleware.CacheControl{CacheTime: middleware.CacheNoCache}).Handler())
	{
		api.GET("/posts/:post_id/", apiHandler.PostDetail)
	}

	r.NoRoute(handlers.NotFound)

	return r, nil
}

func corsConfig(origins string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if origins == "" || origins == "*" {
		cc.AllowAllOrigins = true
		return cc
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cc.AllowOrigins = append(cc.AllowOrigins, o)
		}
	}
	return cc
}
