package controllers

import (
	"errors"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/domain/services"
	"hms-http-service/internal/domain/services/container"
	"hms-http-service/internal/error/code"
	"hms-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Login()
	Register()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@hms.local"`
	Password string `json:"password" binding:"required" example:"admin123"`
	Role     string `json:"role" binding:"required" example:"buildingAdmin"` // superAdmin, buildingAdmin, staff, resident
}

// RegisterRequest 表示注册请求
type RegisterRequest struct {
	Role     string `json:"role" binding:"required" example:"buildingAdmin"`
	Name     string `json:"name" example:"三"`
	Surname  string `json:"surname" example:"张"`
	Email    string `json:"email" example:"zhangsan@hms.local"`
	Password string `json:"password" example:"secret123"`
	Phone    string `json:"phone" example:"13800138000"`
}

// ErrorResponse 表示错误响应
type ErrorResponse struct {
	Code    int         `json:"code" example:"100003"`
	Message string      `json:"message" example:"请求参数验证错误"`
	Data    interface{} `json:"data"`
}

// HandleJWTFunc 返回一个处理认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "register":
			controller.Register()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. Login 处理用户登录
// @Summary      用户登录
// @Description  按角色在对应的表中查找用户并校验密码，成功返回JWT令牌
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录参数"
// @Success      200  {object}  map[string]interface{}  "token与用户信息"
// @Failure      400  {object}  ErrorResponse  "邮箱或密码错误"
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// 登录失败统一返回400，不暴露邮箱是否存在
			response.Fail(c.Ctx, code.ErrInvalidCredentials, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "登录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, result)
}

// 2. Register 处理楼宇管理员注册
// @Summary      用户注册
// @Description  注册楼宇管理员账户；住户不走注册，由管理员预建后凭激活码激活
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "注册参数"
// @Success      201  {object}  map[string]interface{}  "token与用户信息"
// @Failure      400  {object}  ErrorResponse  "参数错误或用户已存在"
// @Router       /auth/register [post]
func (c *JWTController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数: "+err.Error(), nil)
		return
	}

	switch req.Role {
	case models.RoleBuildingAdmin:
		// 继续下面的创建流程
	case models.RoleResident:
		// 住户记录由管理员预先创建，注册接口不创建住户
		response.ParamError(c.Ctx, "住户请使用激活码激活账户，而非注册")
		return
	default:
		response.ParamError(c.Ctx, "该角色不允许注册")
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

	user := &models.User{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.RegisterBuildingAdmin(user)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			response.Fail(c.Ctx, code.ErrUserAlreadyExist, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "注册失败: "+err.Error(), nil)
		return
	}

	response.Created(c.Ctx, result)
}
