package controllers

import (
	"errors"
	"strconv"

	"hms-http-service/internal/app/middleware"
	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/domain/services"
	"hms-http-service/internal/domain/services/container"
	"hms-http-service/internal/error/code"
	"hms-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceRequestController 定义维修请求控制器接口
type InterfaceRequestController interface {
	GetRequests()
	UpdateStatus()
	GetRecentRequests()
}

// RequestController 处理管理端维修请求相关的请求
type RequestController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRequestController 创建一个新的维修请求控制器
func NewRequestController(ctx *gin.Context, container *container.ServiceContainer) *RequestController {
	return &RequestController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateStatusRequest 表示管理员更新维修请求状态的请求
type UpdateStatusRequest struct {
	Status          string `json:"status" binding:"required" example:"in_progress"` // pending, in_progress, resolved
	AssignedStaffID *uint  `json:"assignedStaffId" example:"3"`
}

// formatRequestViews 将维修请求投影为管理端列表格式
func formatRequestViews(requests []models.MaintenanceRequest) []gin.H {
	views := make([]gin.H, 0, len(requests))
	for i := range requests {
		r := &requests[i]

		residentName := ""
		contactNumber := ""
		if r.Resident != nil {
			residentName = r.Resident.FullName
			contactNumber = r.Resident.Phone
		}

		views = append(views, gin.H{
			"id":              r.ID,
			"title":           r.Title,
			"apartmentNumber": r.ApartmentNumber,
			"residentName":    residentName,
			"contactNumber":   contactNumber,
			"submissionDate":  r.CreatedAt,
			"status":          r.Status,
			"description":     r.Description,
			"images":          imageDataURIs(r.Images),
			"assignedStaffId": r.AssignedStaffID,
		})
	}
	return views
}

// HandleRequestFunc 返回一个处理维修请求的Gin处理函数
func HandleRequestFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRequestController(ctx, container)

		switch method {
		case "getRequests":
			controller.GetRequests()
		case "updateStatus":
			controller.UpdateStatus()
		case "getRecentRequests":
			controller.GetRecentRequests()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetRequests 获取维修请求列表
// @Summary      获取维修请求列表
// @Description  可按status和buildingId过滤；楼宇管理员未指定楼宇时只看到自己楼宇的请求
// @Tags         Request
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "状态过滤"
// @Param        buildingId query int false "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /requests [get]
func (c *RequestController) GetRequests() {
	filter := services.RequestFilter{
		Status:     c.Ctx.Query("status"),
		CallerID:   middleware.GetCallerID(c.Ctx),
		CallerRole: middleware.GetCallerRole(c.Ctx),
	}

	if raw := c.Ctx.Query("buildingId"); raw != "" {
		buildingID, err := strconv.Atoi(raw)
		if err != nil || buildingID < 1 {
			response.ParamError(c.Ctx, "无效的楼宇ID")
			return
		}
		filter.BuildingID = uint(buildingID)
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	requests, err := requestService.GetRequests(filter)
	if err != nil {
		if errors.Is(err, services.ErrRequestStatusInvalid) {
			response.Fail(c.Ctx, code.ErrRequestStatusInvalid, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取维修请求失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, formatRequestViews(requests))
}

// 2. UpdateStatus 管理员更新维修请求状态并可同时指派员工
// @Summary      更新维修请求状态
// @Description  置为in_progress且未指定员工时默认指派为调用者本人；状态转换不做校验
// @Tags         Request
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "维修请求ID"
// @Param        request body UpdateStatusRequest true "新状态与可选的指派员工"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/{id}/status [put]
func (c *RequestController) UpdateStatus() {
	requestID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的维修请求ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	request, err := requestService.UpdateStatus(uint(requestID), req.Status, req.AssignedStaffID, middleware.GetCallerID(c.Ctx))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			response.Fail(c.Ctx, code.ErrRequestNotFound, nil)
		case errors.Is(err, services.ErrRequestStatusInvalid):
			response.Fail(c.Ctx, code.ErrRequestStatusInvalid, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新状态失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, request)
}

// 3. GetRecentRequests 获取楼宇最近5条维修请求
// @Summary      获取最近维修请求
// @Description  楼宇管理员只能查看自己创建的楼宇
// @Tags         Request
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /requests/recent [get]
func (c *RequestController) GetRecentRequests() {
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

	// 楼宇必须存在且（对楼宇管理员）归属于调用者
	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	if _, err := buildingService.GetOwnedBuilding(uint(buildingID), middleware.GetCallerID(c.Ctx), middleware.GetCallerRole(c.Ctx)); err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取楼宇失败: "+err.Error(), nil)
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	requests, err := requestService.GetRecentRequests(uint(buildingID))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取最近维修请求失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, formatRequestViews(requests))
}
