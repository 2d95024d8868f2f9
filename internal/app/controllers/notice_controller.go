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

// InterfaceNoticeController 定义通知控制器接口
type InterfaceNoticeController interface {
	CreateNotice()
	GetNotices()
	GetRecentNotices()
}

// NoticeController 处理通知相关的请求
type NoticeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNoticeController 创建一个新的通知控制器
func NewNoticeController(ctx *gin.Context, container *container.ServiceContainer) *NoticeController {
	return &NoticeController{
		Ctx:       ctx,
		Container: container,
	}
}

// NoticeRequest 表示发布通知的请求
type NoticeRequest struct {
	Title       string `json:"title" binding:"required" example:"电梯年检停运通知"`
	Description string `json:"description" binding:"required" example:"本周六上午9点至12点电梯年检停运"`
}

// HandleNoticeFunc 返回一个处理通知请求的Gin处理函数
func HandleNoticeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNoticeController(ctx, container)

		switch method {
		case "createNotice":
			controller.CreateNotice()
		case "getNotices":
			controller.GetNotices()
		case "getRecentNotices":
			controller.GetRecentNotices()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// buildingIDFromQuery 从?buildingId=读取楼宇ID
func (c *NoticeController) buildingIDFromQuery() (uint, bool) {
	raw := c.Ctx.Query("buildingId")
	if raw == "" {
		response.Fail(c.Ctx, code.ErrBuildingIDRequired, nil)
		return 0, false
	}
	buildingID, err := strconv.Atoi(raw)
	if err != nil || buildingID < 1 {
		response.ParamError(c.Ctx, "无效的楼宇ID")
		return 0, false
	}
	return uint(buildingID), true
}

// 1. CreateNotice 发布楼宇通知
// @Summary      发布通知
// @Tags         Notice
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int true "楼宇ID"
// @Param        notice body NoticeRequest true "通知内容"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /notices [post]
func (c *NoticeController) CreateNotice() {
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	var req NoticeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	notice, err := noticeService.CreateNotice(buildingID, middleware.GetCallerID(c.Ctx), req.Title, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			// 原型行为：发布通知时未知楼宇按参数错误处理
			response.FailWithMessage(c.Ctx, code.ErrValidation, "楼宇不存在", nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "发布通知失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, notice)
}

// 2. GetNotices 获取楼宇的所有通知
// @Summary      获取通知列表
// @Tags         Notice
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /notices [get]
func (c *NoticeController) GetNotices() {
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	notices, err := noticeService.GetNotices(buildingID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取通知失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, notices)
}

// 3. GetRecentNotices 获取楼宇最近5条通知
// @Summary      获取最近通知
// @Description  楼宇管理员只能查看自己创建的楼宇；结果带短时缓存
// @Tags         Notice
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /notices/recent [get]
func (c *NoticeController) GetRecentNotices() {
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	// 楼宇必须存在且（对楼宇管理员）归属于调用者
	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	if _, err := buildingService.GetOwnedBuilding(buildingID, middleware.GetCallerID(c.Ctx), middleware.GetCallerRole(c.Ctx)); err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取楼宇失败: "+err.Error(), nil)
		return
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	notices, err := noticeService.GetRecentNotices(buildingID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取最近通知失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, notices)
}
