package router

import (
	"dailyfeed/controller"
	"dailyfeed/logger"
	"dailyfeed/middleware"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

var router *gin.Engine

func Init() {
	if !viper.GetBool("server.develop_mode") {
		gin.SetMode(gin.ReleaseMode)
	}

	router = New(
		viper.GetFloat64("server.ratelimit.rate"),
		viper.GetInt64("server.ratelimit.capacity"),
		viper.GetString("server.frontend_path"),
		viper.GetBool("server.metrics.enable"),
	)
}

// New 组装路由，handler 通过 logic.GetContentService 获取服务
func New(rate float64, capacity int64, frontendPath string, enableMetrics bool) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery(true), middleware.RateLimit(rate, capacity), middleware.CORF(frontendPath)) // 全局限流

	if enableMetrics {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/api/v1")

	/* Post */
	postGrp := v1.Group("/post")
	postGrp.Use(middleware.Auth())
	postGrp.POST("", controller.CreatePostHandler)
	postGrp.PUT("/:post_id", controller.UpdatePostHandler)
	postGrp.DELETE("/:post_id", controller.DeletePostHandler)
	postGrp.POST("/:post_id/like", controller.PostLikeHandler)
	postGrp.DELETE("/:post_id/like", controller.PostUnlikeHandler)

	v1.GET("/post/:post_id/history", controller.PostHistoryHandler) // 查看历史版本不需要登录

	/* Comment */
	commentGrp := v1.Group("/comment")
	commentGrp.Use(middleware.Auth())
	commentGrp.POST("", controller.CommentCreateHandler)
	commentGrp.PUT("/:comment_id", controller.CommentUpdateHandler)
	commentGrp.DELETE("/:comment_id", controller.CommentRemoveHandler)
	commentGrp.POST("/:comment_id/like", controller.CommentLikeHandler)
	commentGrp.DELETE("/:comment_id/like", controller.CommentUnlikeHandler)

	return r
}

func GetServer() *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", viper.GetString("server.ip"), viper.GetInt("server.port")),
		Handler: router,
	}
}
