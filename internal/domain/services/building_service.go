package services

import (
	"errors"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ErrBuildingNotFound 楼宇不存在或调用者无权访问
var ErrBuildingNotFound = errors.New("楼宇不存在或无权访问")

// InterfaceBuildingService defines the building service interface
type InterfaceBuildingService interface {
	CreateBuilding(building *models.Building) error
	GetBuildings(adminID uint, role string) ([]models.Building, error)
	GetBuildingByID(id uint) (*models.Building, error)
	GetOwnedBuilding(id uint, adminID uint, role string) (*models.Building, error)
}

// BuildingService 提供楼宇相关的服务
type BuildingService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBuildingService 创建一个新的楼宇服务
func NewBuildingService(db *gorm.DB, cfg *config.Config) InterfaceBuildingService {
	return &BuildingService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateBuilding 创建新楼宇
func (s *BuildingService) CreateBuilding(building *models.Building) error {
	return s.DB.Create(building).Error
}

// 2 GetBuildings 获取楼宇列表，楼宇管理员只能看到自己创建的楼宇
func (s *BuildingService) GetBuildings(adminID uint, role string) ([]models.Building, error) {
	var buildings []models.Building
	query := s.DB.Model(&models.Building{})

	if role == models.RoleBuildingAdmin {
		query = query.Where("created_by = ?", adminID)
	}

	if err := query.Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}

// 3 GetBuildingByID 根据ID获取楼宇
func (s *BuildingService) GetBuildingByID(id uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.First(&building, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return &building, nil
}

// 4 GetOwnedBuilding 获取楼宇并校验所有权
// 楼宇管理员只能访问自己创建的楼宇，超级管理员不受限制
func (s *BuildingService) GetOwnedBuilding(id uint, adminID uint, role string) (*models.Building, error) {
	query := s.DB.Where("id = ?", id)
	if role == models.RoleBuildingAdmin {
		query = query.Where("created_by = ?", adminID)
	}

	var building models.Building
	if err := query.First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	return &building, nil
}
