package controllers

import (
	"hms-http-service/internal/domain/services"
	"hms-http-service/internal/domain/services/container"
	"hms-http-service/internal/error/code"
	"hms-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	Container *container.ServiceContainer
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{Container: container}
}

// Ping 存活检查端点
// @Summary      存活检查
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /ping [get]
func (h *HealthCheckController) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Status 依赖状态检查端点，报告数据库连接池与Redis状态
// @Summary      依赖状态检查
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health/status [get]
func (h *HealthCheckController) Status(c *gin.Context) {
	status := gin.H{
		"status": "healthy",
	}

	db := h.Container.GetDB()
	sqlDB, err := db.DB()
	if err != nil {
		status["database"] = gin.H{"status": "error", "error": err.Error()}
	} else if err := sqlDB.Ping(); err != nil {
		status["status"] = "degraded"
		status["database"] = gin.H{"status": "error", "error": err.Error()}
	} else {
		stats := sqlDB.Stats()
		status["database"] = gin.H{
			"status":          "ok",
			"openConnections": stats.OpenConnections,
			"inUse":           stats.InUse,
			"idle":            stats.Idle,
		}
	}

	if redisService, ok := h.Container.GetService("redis").(services.InterfaceRedisService); ok && redisService != nil {
		if err := redisService.Ping(); err != nil {
			status["redis"] = gin.H{"status": "error", "error": err.Error()}
		} else {
			status["redis"] = gin.H{"status": "ok"}
		}
	} else {
		status["redis"] = gin.H{"status": "disabled"}
	}

	response.Success(c, status)
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthCheckController(container)

		switch method {
		case "ping":
			controller.Ping(ctx)
		case "status":
			controller.Status(ctx)
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}
