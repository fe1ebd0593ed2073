package router

import (
	"net/http"
	"time"

	"contractai/api/handler"
	"contractai/api/middleware"
	"contractai/service"

	"github.com/gin-gonic/gin"
)

// New 创建 gin 引擎并注册全部路由
func New(manager *service.Manager) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"sessions":  manager.Len(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	RegisterRoutes(r, manager, handler.NewSessionHandler(manager), handler.NewContractHandler())
	return r
}

func RegisterRoutes(r *gin.Engine, manager *service.Manager, sessionH *handler.SessionHandler, contractH *handler.ContractHandler) {
	api := r.Group("/api/v1")
	api.POST("/session/login", sessionH.Login)

	protected := api.Group("/")
	protected.Use(middleware.Session(manager))
	{
		session := protected.Group("/session")
		{
			session.GET("", sessionH.State)
			session.POST("/view", sessionH.SwitchView)
		}
		contract := protected.Group("/contract")
		{
			contract.POST("/upload", contractH.Upload)
			contract.GET("/list", contractH.List)
			contract.POST("/select", contractH.Select)
		}
		retrieval := protected.Group("/retrieval")
		{
			retrieval.POST("/search", contractH.Search)
		}
		generate := protected.Group("/generate")
		{
			generate.POST("/draft", contractH.Generate)
		}
	}
}
