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

// InterfaceApartmentController 定义公寓控制器接口
type InterfaceApartmentController interface {
	GetApartments()
	GetApartment()
	CreateApartment()
	UpdateApartment()
	DeleteApartment()
	AssignResident()
	RemoveResident()
}

// ApartmentController 处理公寓相关的请求
type ApartmentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewApartmentController 创建一个新的公寓控制器
func NewApartmentController(ctx *gin.Context, container *container.ServiceContainer) *ApartmentController {
	return &ApartmentController{
		Ctx:       ctx,
		Container: container,
	}
}

// ApartmentRequest 表示创建/更新公寓的请求
type ApartmentRequest struct {
	Number string `json:"number" binding:"required" example:"1201"`
	Floor  int    `json:"floor" binding:"required,min=1" example:"12"`
	Status string `json:"status" example:"vacant"` // vacant, occupied
}

// AssignResidentRequest 表示分配住户到公寓的请求
type AssignResidentRequest struct {
	Name            string `json:"name" binding:"required" example:"李四"`
	Email           string `json:"email" binding:"required,email" example:"lisi@example.com"`
	PhoneNumber     string `json:"phoneNumber" binding:"required" example:"13900139000"`
	ApartmentNumber string `json:"apartmentNumber" example:"1201"`
	Floor           int    `json:"floor" example:"12"`
}

// ApartmentView 公寓对外投影，带住户快照
type ApartmentView struct {
	ID         uint                     `json:"id"`
	Number     string                   `json:"number"`
	Floor      int                      `json:"floor"`
	Status     string                   `json:"status"`
	BuildingID uint                     `json:"buildingId"`
	Resident   *models.ResidentSnapshot `json:"resident,omitempty"`
}

func newApartmentView(apartment *models.Apartment) ApartmentView {
	return ApartmentView{
		ID:         apartment.ID,
		Number:     apartment.Number,
		Floor:      apartment.Floor,
		Status:     apartment.Status,
		BuildingID: apartment.BuildingID,
		Resident:   apartment.Snapshot(),
	}
}

// HandleApartmentFunc 返回一个处理公寓请求的Gin处理函数
func HandleApartmentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewApartmentController(ctx, container)

		switch method {
		case "getApartments":
			controller.GetApartments()
		case "getApartment":
			controller.GetApartment()
		case "createApartment":
			controller.CreateApartment()
		case "updateApartment":
			controller.UpdateApartment()
		case "deleteApartment":
			controller.DeleteApartment()
		case "assignResident":
			controller.AssignResident()
		case "removeResident":
			controller.RemoveResident()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// buildingIDFromQuery 从?buildingId=读取楼宇ID，缺失或非法时返回错误响应
func (c *ApartmentController) buildingIDFromQuery() (uint, bool) {
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

// apartmentIDFromPath 从路径参数读取公寓ID
func (c *ApartmentController) apartmentIDFromPath() (uint, bool) {
	apartmentID, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.ParamError(c.Ctx, "无效的公寓ID")
		return 0, false
	}
	return uint(apartmentID), true
}

// 1. GetApartments 获取楼宇的公寓列表
// @Summary      获取公寓列表
// @Tags         Apartment
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /apartments [get]
func (c *ApartmentController) GetApartments() {
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	apartments, err := apartmentService.GetApartments(buildingID)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取公寓列表失败: "+err.Error(), nil)
		return
	}

	views := make([]ApartmentView, 0, len(apartments))
	for i := range apartments {
		views = append(views, newApartmentView(&apartments[i]))
	}
	response.Success(c.Ctx, views)
}

// 2. GetApartment 获取单个公寓详情
// @Summary      获取公寓详情
// @Tags         Apartment
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公寓ID"
// @Param        buildingId query int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /apartments/{id} [get]
func (c *ApartmentController) GetApartment() {
	apartmentID, ok := c.apartmentIDFromPath()
	if !ok {
		return
	}
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	apartment, err := apartmentService.GetApartmentByID(apartmentID, buildingID)
	if err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			response.Fail(c.Ctx, code.ErrApartmentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取公寓失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, newApartmentView(apartment))
}

// 3. CreateApartment 创建新公寓
// @Summary      创建公寓
// @Tags         Apartment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        buildingId query int true "楼宇ID"
// @Param        apartment body ApartmentRequest true "公寓信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /apartments [post]
func (c *ApartmentController) CreateApartment() {
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	var req ApartmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	apartment := &models.Apartment{
		Number:     req.Number,
		Floor:      req.Floor,
		Status:     req.Status,
		BuildingID: buildingID,
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	if err := apartmentService.CreateApartment(apartment); err != nil {
		switch {
		case errors.Is(err, services.ErrBuildingNotFound):
			response.Fail(c.Ctx, code.ErrBuildingNotFound, nil)
		case errors.Is(err, services.ErrApartmentNumberTaken):
			response.Fail(c.Ctx, code.ErrApartmentAlreadyExist, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建公寓失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, newApartmentView(apartment))
}

// 4. UpdateApartment 更新公寓信息
// @Summary      更新公寓
// @Tags         Apartment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公寓ID"
// @Param        buildingId query int true "楼宇ID"
// @Param        apartment body ApartmentRequest true "公寓信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /apartments/{id} [put]
func (c *ApartmentController) UpdateApartment() {
	apartmentID, ok := c.apartmentIDFromPath()
	if !ok {
		return
	}
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	var req ApartmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	updates := make(map[string]interface{})
	if req.Number != "" {
		updates["number"] = req.Number
	}
	if req.Floor > 0 {
		updates["floor"] = req.Floor
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	apartment, err := apartmentService.UpdateApartment(apartmentID, buildingID, updates)
	if err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			response.Fail(c.Ctx, code.ErrApartmentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新公寓失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, newApartmentView(apartment))
}

// 5. DeleteApartment 删除公寓
// @Summary      删除公寓
// @Tags         Apartment
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公寓ID"
// @Param        buildingId query int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /apartments/{id} [delete]
func (c *ApartmentController) DeleteApartment() {
	apartmentID, ok := c.apartmentIDFromPath()
	if !ok {
		return
	}
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	if err := apartmentService.DeleteApartment(apartmentID, buildingID); err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			response.Fail(c.Ctx, code.ErrApartmentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除公寓失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}

// 6. AssignResident 分配住户到公寓
// @Summary      分配住户
// @Description  创建住户记录、生成激活码并将公寓标记为occupied，整个流程在一个事务内完成
// @Tags         Apartment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公寓ID"
// @Param        buildingId query int true "楼宇ID"
// @Param        resident body AssignResidentRequest true "住户信息"
// @Success      201  {object}  map[string]interface{}  "公寓与激活码"
// @Failure      404  {object}  ErrorResponse
// @Router       /apartments/{id}/assign-resident [post]
func (c *ApartmentController) AssignResident() {
	apartmentID, ok := c.apartmentIDFromPath()
	if !ok {
		return
	}
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	var req AssignResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	input := services.AssignResidentInput{
		Name:            req.Name,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		ApartmentNumber: req.ApartmentNumber,
		Floor:           req.Floor,
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	result, err := apartmentService.AssignResident(apartmentID, buildingID, c.Ctx.GetUint("userID"), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApartmentNotFound):
			response.Fail(c.Ctx, code.ErrApartmentNotFound, nil)
		case errors.Is(err, services.ErrResidentCodeExhausted):
			response.FailWithMessage(c.Ctx, code.ErrDatabase, err.Error(), nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "分配住户失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, gin.H{
		"apartment":    newApartmentView(result.Apartment),
		"residentCode": result.ResidentCode,
	})
}

// 7. RemoveResident 从公寓移除住户
// @Summary      移除住户
// @Description  删除住户记录并将公寓恢复为vacant，整个流程在一个事务内完成
// @Tags         Apartment
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公寓ID"
// @Param        buildingId query int true "楼宇ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /apartments/{id}/resident [delete]
func (c *ApartmentController) RemoveResident() {
	apartmentID, ok := c.apartmentIDFromPath()
	if !ok {
		return
	}
	buildingID, ok := c.buildingIDFromQuery()
	if !ok {
		return
	}

	apartmentService := c.Container.GetService("apartment").(services.InterfaceApartmentService)
	if err := apartmentService.RemoveResident(apartmentID, buildingID); err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			response.Fail(c.Ctx, code.ErrApartmentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "移除住户失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, nil)
}
