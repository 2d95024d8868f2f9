package controllers

import (
	"errors"
	"strconv"

	"hms-http-service/internal/app/middleware"
	"hms-http-service/internal/domain/services"
	"hms-http-service/internal/domain/services/container"
	"hms-http-service/internal/error/code"
	"hms-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceStatsController 定义统计控制器接口
type InterfaceStatsController interface {
	GetBuildingStats()
}

// StatsController 处理楼宇看板统计请求
type StatsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStatsController 创建一个新的统计控制器
func NewStatsController(ctx *gin.Context, container *container.ServiceContainer) *StatsController {
	return &StatsController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleStatsFunc 返回一个处理统计请求的Gin处理函数
func HandleStatsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStatsController(ctx, container)

		switch method {
		case "getBuildingStats":
			controller.GetBuildingStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetBuildingStats 获取楼宇看板统计
// @Summary      获取楼宇统计
// @Description  住户数、公寓占用情况、维修请求各状态计数和通知数；每次请求重新计算
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /stats [get]
func (c *StatsController) GetBuildingStats() {
	raw := c.Ctx.Query("buildingId")
	if raw == "" {
		response.Fail(c.Ctx, code.ErrBuildingIDRequired, nil)
		return
	}
	buildingID, err := strconv.Atoi(raw)
	if err != nil || buildingID < 1 {
		response.ParamError(c.Ctx, "无效的楼宇ID")
		return
	}

	statsService := c.Container.GetService("stats").(services.InterfaceStatsService)
	stats, err := statsService.GetBuildingStats(uint(buildingID), middleware.GetCallerID(c.Ctx), middleware.GetCallerRole(c.Ctx))
	if err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取楼宇统计失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, stats)
}
