package services

import (
	"errors"
	"fmt"
	"time"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"
	"hms-http-service/utils"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// 认证相关的哨兵错误
var (
	// ErrInvalidCredentials 登录失败，邮箱不存在或密码不匹配
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	// ErrUserAlreadyExists 注册时邮箱已被占用
	ErrUserAlreadyExists = errors.New("用户已存在")
	// ErrRoleNotAllowed 该角色不允许注册
	ErrRoleNotAllowed = errors.New("该角色不允许注册")
)

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(userID uint, role string, buildingID *uint) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
	Login(email, password, role string) (*LoginResult, error)
	RegisterBuildingAdmin(user *models.User) (*LoginResult, error)
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// UserPayload 登录/注册响应中对外暴露的用户投影
type UserPayload struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey string
	issuer    string
	expire    time.Duration
	DB        *gorm.DB
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	UserID     uint   `json:"user_id"`
	Role       string `json:"role"`
	BuildingID *uint  `json:"building_id,omitempty"` // 楼宇ID，员工和住户携带，标识所属楼宇
	jwt.RegisteredClaims
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "hms-http-service",
		expire:    time.Duration(cfg.JWTExpireHrs) * time.Hour,
		DB:        db,
	}
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(userID uint, role string, buildingID *uint) (string, error) {
	expirationTime := time.Now().Add(s.expire)

	claims := &JWTClaims{
		UserID:     userID,
		Role:       role,
		BuildingID: buildingID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken 验证JWT令牌
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
}

// ExtractClaims 从令牌中提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的令牌声明")
	}
	return claims, nil
}

// Login 按角色在对应的表中查找主体并校验密码
// 四种角色统一使用bcrypt比较；登录失败一律返回ErrInvalidCredentials，
// 不区分"邮箱不存在"和"密码错误"
func (s *JWTService) Login(email, password, role string) (*LoginResult, error) {
	switch role {
	case models.RoleResident:
		var resident models.Resident
		if err := s.DB.Where("email = ?", email).First(&resident).Error; err != nil {
			return nil, ErrInvalidCredentials
		}
		// 未激活的住户没有密码，不能登录
		if resident.Password == "" || !utils.CheckPasswordHash(password, resident.Password) {
			return nil, ErrInvalidCredentials
		}
		buildingID := resident.BuildingID
		token, err := s.GenerateToken(resident.ID, models.RoleResident, &buildingID)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			Token: token,
			User: UserPayload{
				ID:    resident.ID,
				Name:  resident.FullName,
				Email: resident.Email,
				Role:  models.RoleResident,
			},
		}, nil

	case models.RoleStaff:
		var staff models.Staff
		if err := s.DB.Where("email = ?", email).First(&staff).Error; err != nil {
			return nil, ErrInvalidCredentials
		}
		if !utils.CheckPasswordHash(password, staff.Password) {
			return nil, ErrInvalidCredentials
		}
		buildingID := staff.BuildingID
		token, err := s.GenerateToken(staff.ID, models.RoleStaff, &buildingID)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			Token: token,
			User: UserPayload{
				ID:    staff.ID,
				Name:  staff.Name,
				Email: staff.Email,
				Role:  models.RoleStaff,
			},
		}, nil

	case models.RoleSuperAdmin, models.RoleBuildingAdmin:
		var user models.User
		if err := s.DB.Where("email = ? AND role = ?", email, role).First(&user).Error; err != nil {
			return nil, ErrInvalidCredentials
		}
		if !utils.CheckPasswordHash(password, user.Password) {
			return nil, ErrInvalidCredentials
		}
		token, err := s.GenerateToken(user.ID, user.Role, nil)
		if err != nil {
			return nil, err
		}
		return &LoginResult{
			Token: token,
			User: UserPayload{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
				Role:  user.Role,
			},
		}, nil

	default:
		return nil, ErrInvalidCredentials
	}
}

// RegisterBuildingAdmin 注册楼宇管理员账户
// 住户的"注册"不走这里：住户记录由管理员预先创建，注册只是凭激活码补写密码，
// 见ResidentService.ActivateByCode
func (s *JWTService) RegisterBuildingAdmin(user *models.User) (*LoginResult, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserAlreadyExists
	}

	user.Role = models.RoleBuildingAdmin
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user.ID, user.Role, nil)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token: token,
		User: UserPayload{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
