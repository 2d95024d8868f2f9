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

// InterfaceStaffController 定义员工控制器接口
type InterfaceStaffController interface {
	CreateStaff()
	GetAllStaff()
	UpdateStaff()
	DeleteStaff()
	GetAssignedRequests()
	UpdateRequestStatus()
}

// StaffController 处理员工管理及员工工作台相关的请求
type StaffController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewStaffController 创建一个新的员工控制器
func NewStaffController(ctx *gin.Context, container *container.ServiceContainer) *StaffController {
	return &StaffController{
		Ctx:       ctx,
		Container: container,
	}
}

// StaffRequest 表示创建/更新员工的请求
type StaffRequest struct {
	Name     string `json:"name" example:"六"`
	Surname  string `json:"surname" example:"赵"`
	Email    string `json:"email" example:"zhaoliu@hms.local"`
	Password string `json:"password" example:"secret123"`
	Phone    string `json:"phone" example:"13600136000"`
}

// StaffStatusRequest 表示员工更新维修请求状态的请求
type StaffStatusRequest struct {
	Status string `json:"status" binding:"required" example:"resolved"` // pending, in_progress, resolved
}

// HandleStaffFunc 返回一个处理员工请求的Gin处理函数
func HandleStaffFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewStaffController(ctx, container)

		switch method {
		case "createStaff":
			controller.CreateStaff()
		case "getAllStaff":
			controller.GetAllStaff()
		case "updateStaff":
			controller.UpdateStaff()
		case "deleteStaff":
			controller.DeleteStaff()
		case "getAssignedRequests":
			controller.GetAssignedRequests()
		case "updateRequestStatus":
			controller.UpdateRequestStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. CreateStaff 创建新员工
// @Summary      创建员工
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int true "楼宇ID"
// @Param        staff body StaffRequest true "员工信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /staff [post]
func (c *StaffController) CreateStaff() {
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

	var req StaffRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}
	if req.Name == "" || req.Surname == "" || req.Email == "" || req.Phone == "" {
		response.ParamError(c.Ctx, "姓名、邮箱和电话均为必填项")
		return
	}
	if len(req.Password) < 6 {
		response.ParamError(c.Ctx, "密码长度至少为6位")
		return
	}

	staff := &models.Staff{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		BuildingID:   uint(buildingID),
		RegisteredBy: middleware.GetCallerID(c.Ctx),
	}

	staffService := c.Container.GetService("staff").(services.InterfaceStaffService)
	if err := staffService.CreateStaff(staff); err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			// 原型行为：未知楼宇在创建员工时按参数错误处理
			response.FailWithMessage(c.Ctx, code.ErrValidation, "楼宇不存在", nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建员工失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, staff)
}

// 2. GetAllStaff 获取所有员工
// @Summary      获取员工列表
// @Tags         Staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /staff [get]
func (c *StaffController) GetAllStaff() {
	staffService := c.Container.GetService("staff").(services.InterfaceStaffService)
	staff, err := staffService.GetAllStaff()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取员工列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, staff)
}

// 3. UpdateStaff 更新员工信息
// @Summary      更新员工
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "员工ID"
// @Param        staff body StaffRequest true "员工信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /staff/{id} [put]
func (c *StaffController) UpdateStaff() {
	staffID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的员工ID")
		return
	}

	var req StaffRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Surname != "" {
		updates["surname"] = req.Surname
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}

	staffService := c.Container.GetService("staff").(services.InterfaceStaffService)
	staff, err := staffService.UpdateStaff(uint(staffID), updates)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			response.Fail(c.Ctx, code.ErrStaffNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新员工失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, staff)
}

// 4. DeleteStaff 删除员工
// @Summary      删除员工
// @Tags         Staff
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "员工ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /staff/{id} [delete]
func (c *StaffController) DeleteStaff() {
	staffID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的员工ID")
		return
	}

	staffService := c.Container.GetService("staff").(services.InterfaceStaffService)
	if err := staffService.DeleteStaff(uint(staffID)); err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			response.Fail(c.Ctx, code.ErrStaffNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除员工失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// 5. GetAssignedRequests 员工工作台：获取分配给自己的维修请求
// @Summary      获取分配给本人的维修请求
// @Tags         Staff
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /staff/requests [get]
func (c *StaffController) GetAssignedRequests() {
	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	requests, err := requestService.GetRequests(services.RequestFilter{
		CallerID:   middleware.GetCallerID(c.Ctx),
		CallerRole: middleware.GetCallerRole(c.Ctx),
	})
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取维修请求失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, formatRequestViews(requests))
}

// 6. UpdateRequestStatus 员工工作台：仅更新维修请求状态
// @Summary      员工更新维修请求状态
// @Description  只改状态，不改动指派
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "维修请求ID"
// @Param        request body StaffStatusRequest true "新状态"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /staff/requests/{id} [patch]
func (c *StaffController) UpdateRequestStatus() {
	requestID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的维修请求ID")
		return
	}

	var req StaffStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	requestService := c.Container.GetService("request").(services.InterfaceRequestService)
	request, err := requestService.UpdateStatusOnly(uint(requestID), req.Status)
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
