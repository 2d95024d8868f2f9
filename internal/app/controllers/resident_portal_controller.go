package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"hms-http-service/internal/app/middleware"
	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/domain/services"
	"hms-http-service/internal/domain/services/container"
	"hms-http-service/internal/error/code"
	"hms-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceResidentPortalController 定义住户门户控制器接口
type InterfaceResidentPortalController interface {
	GetInfo()
	CreateMaintenanceRequest()
	GetMaintenanceRequests()
	GetNotices()
	ToggleNoticeRead()
	GetUnreadCount()
}

// ResidentPortalController 处理住户自助门户的请求，调用者固定为resident角色
type ResidentPortalController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentPortalController 创建一个新的住户门户控制器
func NewResidentPortalController(ctx *gin.Context, container *container.ServiceContainer) *ResidentPortalController {
	return &ResidentPortalController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleResidentPortalFunc 返回一个处理住户门户请求的Gin处理函数
func HandleResidentPortalFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentPortalController(ctx, container)

		switch method {
		case "getInfo":
			controller.GetInfo()
		case "createMaintenanceRequest":
			controller.CreateMaintenanceRequest()
		case "getMaintenanceRequests":
			controller.GetMaintenanceRequests()
		case "getNotices":
			controller.GetNotices()
		case "toggleNoticeRead":
			controller.ToggleNoticeRead()
		case "getUnreadCount":
			controller.GetUnreadCount()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// imageDataURI 将存库图片投影为前端可直接使用的data URI
func imageDataURI(image *models.RequestImage) string {
	return fmt.Sprintf("data:%s;base64,%s", image.ContentType, image.Data)
}

func imageDataURIs(images []models.RequestImage) []string {
	uris := make([]string, 0, len(images))
	for i := range images {
		uris = append(uris, imageDataURI(&images[i]))
	}
	return uris
}

// 1. GetInfo 获取住户本人的门户信息
// @Summary      获取住户信息
// @Tags         ResidentPortal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /resident/info [get]
func (c *ResidentPortalController) GetInfo() {
	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.GetResidentByID(middleware.GetCallerID(c.Ctx))
	if err != nil {
		if errors.Is(err, services.ErrResidentNotFound) {
			response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户信息失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"name":            resident.FullName,
		"apartmentNumber": resident.ApartmentNumber,
		"floor":           resident.Floor,
		// 缴费模块尚未接入，返回占位的下次缴费日
		"nextPaymentDue": "2026-09-01",
	})
}

// 2. CreateMaintenanceRequest 住户提交维修请求（multipart表单，可附图片）
// @Summary      提交维修请求
// @Description  标题和描述为必填，最多5张图片，每张不超过1MB，仅支持jpeg/png
// @Tags         ResidentPortal
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "标题"
// @Param        description formData string true "描述"
// @Param        images formData file false "附带图片"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /resident/maintenance-requests [post]
func (c *ResidentPortalController) CreateMaintenanceRequest() {
	title := c.Ctx.PostForm("title")
	description := c.Ctx.PostForm("description")
	if title == "" || description == "" {
		response.ParamError(c.Ctx, "标题和描述均为必填项")
		return
	}

	images, err := middleware.ParseRequestImages(c.Ctx)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrImageInvalid, err.Error(), nil)
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	request, err := requestService.CreateRequest(middleware.GetCallerID(c.Ctx), title, description, images)
	if err != nil {
		if errors.Is(err, services.ErrResidentNotFound) {
			response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "提交维修请求失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, gin.H{
		"id":          request.ID,
		"title":       request.Title,
		"description": request.Description,
		"status":      request.Status,
		"createdAt":   request.CreatedAt,
		"images":      imageDataURIs(request.Images),
	})
}

// 3. GetMaintenanceRequests 获取住户自己提交的维修请求
// @Summary      获取本人维修请求
// @Tags         ResidentPortal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /resident/maintenance-requests [get]
func (c *ResidentPortalController) GetMaintenanceRequests() {
	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	requests, err := requestService.GetResidentRequests(middleware.GetCallerID(c.Ctx))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取维修请求失败: "+err.Error(), nil)
		return
	}

	views := make([]gin.H, 0, len(requests))
	for i := range requests {
		views = append(views, gin.H{
			"id":          requests[i].ID,
			"title":       requests[i].Title,
			"description": requests[i].Description,
			"status":      requests[i].Status,
			"createdAt":   requests[i].CreatedAt,
			"images":      imageDataURIs(requests[i].Images),
		})
	}
	response.Success(c.Ctx, views)
}

// 4. GetNotices 获取住户所在楼宇的通知，按时间倒序
// @Summary      获取楼宇通知
// @Tags         ResidentPortal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /resident/notices [get]
func (c *ResidentPortalController) GetNotices() {
	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	notices, err := noticeService.GetResidentNotices(middleware.GetCallerID(c.Ctx))
	if err != nil {
		if errors.Is(err, services.ErrResidentNotFound) {
			response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取通知失败: "+err.Error(), nil)
		return
	}

	views := make([]gin.H, 0, len(notices))
	for i := range notices {
		sender := "管理员"
		if notices[i].Creator != nil {
			sender = notices[i].Creator.Name
		}
		views = append(views, gin.H{
			"id":          notices[i].ID,
			"title":       notices[i].Title,
			"description": notices[i].Description,
			"sender":      sender,
			"date":        notices[i].CreatedAt,
		})
	}
	response.Success(c.Ctx, views)
}

// 5. ToggleNoticeRead 切换通知的已读状态
// @Summary      切换通知已读状态
// @Description  幂等取反：已读变未读，未读变已读
// @Tags         ResidentPortal
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "通知ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /resident/notices/{id}/read [patch]
func (c *ResidentPortalController) ToggleNoticeRead() {
	noticeID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的通知ID")
		return
	}

	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	if err := noticeService.ToggleRead(middleware.GetCallerID(c.Ctx), uint(noticeID)); err != nil {
		switch {
		case errors.Is(err, services.ErrResidentNotFound):
			response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
		case errors.Is(err, services.ErrNoticeNotFound):
			response.Fail(c.Ctx, code.ErrNoticeNotFound, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新已读状态失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, nil)
}

// 6. GetUnreadCount 获取未读通知数
// @Summary      获取未读通知数
// @Tags         ResidentPortal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /resident/notices/unread-count [get]
func (c *ResidentPortalController) GetUnreadCount() {
	noticeService := c.Container.GetService("notice").(services.InterfaceNoticeService)
	count, err := noticeService.UnreadCount(middleware.GetCallerID(c.Ctx))
	if err != nil {
		if errors.Is(err, services.ErrResidentNotFound) {
			response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取未读通知数失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"unreadCount": count})
}
