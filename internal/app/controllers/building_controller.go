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

// InterfaceBuildingController 定义楼宇控制器接口
type InterfaceBuildingController interface {
	GetBuildings()
	GetBuilding()
	CreateBuilding()
}

// BuildingController 处理楼宇相关的请求
type BuildingController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBuildingController 创建一个新的楼宇控制器
func NewBuildingController(ctx *gin.Context, container *container.ServiceContainer) *BuildingController {
	return &BuildingController{
		Ctx:       ctx,
		Container: container,
	}
}

// BuildingRequest 表示创建楼宇的请求
type BuildingRequest struct {
	Name            string `json:"name" binding:"required" example:"阳光公寓A座"`
	Address         string `json:"address" binding:"required" example:"幸福路88号"`
	TotalFloors     int    `json:"totalFloors" binding:"required,min=1" example:"12"`
	TotalApartments int    `json:"totalApartments" binding:"required,min=1" example:"48"`
}

// HandleBuildingFunc 返回一个处理楼宇请求的Gin处理函数
func HandleBuildingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBuildingController(ctx, container)

		switch method {
		case "getBuildings":
			controller.GetBuildings()
		case "getBuilding":
			controller.GetBuilding()
		case "createBuilding":
			controller.CreateBuilding()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetBuildings 获取楼宇列表
// @Summary      获取楼宇列表
// @Description  楼宇管理员只能看到自己创建的楼宇，超级管理员可以看到全部
// @Tags         Building
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /buildings [get]
func (c *BuildingController) GetBuildings() {
	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)

	buildings, err := buildingService.GetBuildings(middleware.GetCallerID(c.Ctx), middleware.GetCallerRole(c.Ctx))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取楼宇列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, buildings)
}

// 2. GetBuilding 获取单个楼宇详情
// @Summary      获取楼宇详情
// @Tags         Building
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /buildings/{id} [get]
func (c *BuildingController) GetBuilding() {
	buildingID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的楼宇ID")
		return
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	building, err := buildingService.GetBuildingByID(uint(buildingID))
	if err != nil {
		if errors.Is(err, services.ErrBuildingNotFound) {
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取楼宇失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, building)
}

// 3. CreateBuilding 创建新楼宇
// @Summary      创建楼宇
// @Tags         Building
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        building body BuildingRequest true "楼宇信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /buildings [post]
func (c *BuildingController) CreateBuilding() {
	var req BuildingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	building := &models.Building{
		Name:            req.Name,
		Address:         req.Address,
		TotalFloors:     req.TotalFloors,
		TotalApartments: req.TotalApartments,
		CreatedBy:       middleware.GetCallerID(c.Ctx),
	}

	buildingService := c.Container.GetService("building").(services.InterfaceBuildingService)
	if err := buildingService.CreateBuilding(building); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建楼宇失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, building)
}
