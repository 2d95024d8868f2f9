package middleware

import (
	"errors"
	"fmt"
	"strings"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/domain/services"
	"hms-http-service/internal/error/code"
	"hms-http-service/internal/error/response"
	"hms-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	jwtService services.InterfaceJWTService
	authDB     *gorm.DB
)

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
	authDB = db
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// loadPrincipal 按角色在对应的表中确认主体仍然存在
// 令牌有效但主体已被删除时拒绝访问
func loadPrincipal(claims *services.JWTClaims) error {
	switch claims.Role {
	case models.RoleSuperAdmin, models.RoleBuildingAdmin:
		var user models.User
		return authDB.Where("id = ? AND role = ?", claims.UserID, claims.Role).First(&user).Error
	case models.RoleStaff:
		var staff models.Staff
		return authDB.First(&staff, claims.UserID).Error
	case models.RoleResident:
		var resident models.Resident
		return authDB.First(&resident, claims.UserID).Error
	default:
		return errors.New("未知角色")
	}
}

// Authenticate 通用的认证中间件
// 校验Bearer令牌并将userID、role、buildingID写入上下文
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "缺少Authorization头")
			c.Abort()
			return
		}

		tokenString := extractToken(authHeader)
		if tokenString == "" {
			response.Unauthorized(c, "令牌格式错误")
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			response.Unauthorized(c, "无效或过期的令牌")
			c.Abort()
			return
		}

		// 主体必须仍然存在
		if err := loadPrincipal(claims); err != nil {
			response.Unauthorized(c, "账户不存在或已被删除")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		if claims.BuildingID != nil {
			c.Set("buildingID", *claims.BuildingID)
		}
		c.Set("claims", claims)
		c.Next()
	}
}

// AuthorizeRoles 角色白名单检查，需在Authenticate之后使用
func AuthorizeRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		response.FailWithMessage(c, code.ErrForbidden, fmt.Sprintf("角色 %s 无权访问该接口", role), nil)
		c.Abort()
	}
}

// GetCallerID 从上下文读取调用者ID
func GetCallerID(c *gin.Context) uint {
	return c.GetUint("userID")
}

// GetCallerRole 从上下文读取调用者角色
func GetCallerRole(c *gin.Context) string {
	return c.GetString("role")
}
