package controllers

import (
	"errors"
	"strconv"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/domain/services"
	"hms-http-service/internal/domain/services/container"
	"hms-http-service/internal/error/code"
	"hms-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceResidentController 定义住户控制器接口
type InterfaceResidentController interface {
	CreateResident()
	GetResidents()
	GetBuildingResidents()
	ActivateResident()
}

// ResidentController 处理住户管理相关的请求
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController 创建一个新的住户控制器
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// ResidentRequest 表示管理员创建住户的请求
type ResidentRequest struct {
	FullName        string `json:"fullName" binding:"required" example:"王五"`
	Email           string `json:"email" binding:"required,email" example:"wangwu@example.com"`
	Phone           string `json:"phone" binding:"required" example:"13700137000"`
	ApartmentNumber string `json:"apartmentNumber" binding:"required" example:"803"`
	Floor           int    `json:"floor" binding:"required,min=1" example:"8"`
	BuildingID      uint   `json:"buildingId" binding:"required" example:"1"`
}

// ActivateResidentRequest 表示住户凭激活码激活账户的请求
type ActivateResidentRequest struct {
	ResidentCode string `json:"residentCode" binding:"required" example:"A3X9K"`
	Password     string `json:"password" binding:"required,min=6" example:"secret123"`
}

// HandleResidentFunc 返回一个处理住户请求的Gin处理函数
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "createResident":
			controller.CreateResident()
		case "getResidents":
			controller.GetResidents()
		case "getBuildingResidents":
			controller.GetBuildingResidents()
		case "activateResident":
			controller.ActivateResident()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. CreateResident 管理员直接创建住户
// @Summary      创建住户
// @Description  创建住户记录并生成激活码，住户此后凭激活码自助设置密码
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        resident body ResidentRequest true "住户信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /residents [post]
func (c *ResidentController) CreateResident() {
	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	resident := &models.Resident{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		ApartmentNumber: req.ApartmentNumber,
		Floor:           req.Floor,
		BuildingID:      req.BuildingID,
		RegisteredBy:    c.Ctx.GetUint("userID"),
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.CreateResident(resident); err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			// 原型行为：未知楼宇在创建住户时按参数错误处理
			response.FailWithMessage(c.Ctx, code.ErrValidation, "楼宇不存在", nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建住户失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, resident)
}

// 2. GetResidents 获取住户列表
// @Summary      获取住户列表
// @Tags         Resident
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int false "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /residents [get]
func (c *ResidentController) GetResidents() {
	var filter services.ResidentFilter
	if raw := c.Ctx.Query("buildingId"); raw != "" {
		buildingID, err := strconv.Atoi(raw)
		if err != nil || buildingID < 1 {
			response.ParamError(c.Ctx, "无效的楼宇ID")
			return
		}
		filter.BuildingID = uint(buildingID)
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	residents, err := residentService.GetResidents(filter)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, residents)
}

// 3. GetBuildingResidents 获取楼宇住户的精简列表（下拉框用）
// @Summary      获取楼宇住户精简列表
// @Tags         Resident
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /residents/residents [get]
func (c *ResidentController) GetBuildingResidents() {
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

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	residents, err := residentService.GetBuildingResidents(uint(buildingID))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户列表失败: "+err.Error(), nil)
		return
	}

	views := make([]gin.H, 0, len(residents))
	for _, r := range residents {
		views = append(views, gin.H{
			"id":              r.ID,
			"fullName":        r.FullName,
			"apartmentNumber": r.ApartmentNumber,
		})
	}
	response.Success(c.Ctx, views)
}

// 4. ActivateResident 住户凭激活码激活账户（公开接口）
// @Summary      住户激活
// @Description  按激活码找到预建的住户记录并写入密码哈希；路径中的id不参与匹配
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path string true "占位ID，激活按residentCode匹配"
// @Param        request body ActivateResidentRequest true "激活码与密码"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse  "激活码无效"
// @Router       /residents/{id} [put]
func (c *ResidentController) ActivateResident() {
	var req ActivateResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.ActivateByCode(req.ResidentCode, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrResidentCodeInvalid) {
			response.Fail(c.Ctx, code.ErrResidentCodeInvalid, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "激活住户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":       resident.ID,
		"fullName": resident.FullName,
		"email":    resident.Email,
	})
}
