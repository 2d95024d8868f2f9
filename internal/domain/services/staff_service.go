package services

import (
	"errors"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ErrStaffNotFound 员工不存在
var ErrStaffNotFound = errors.New("员工不存在")

// InterfaceStaffService defines the staff service interface
type InterfaceStaffService interface {
	CreateStaff(staff *models.Staff) error
	GetAllStaff() ([]models.Staff, error)
	GetStaffByID(id uint) (*models.Staff, error)
	UpdateStaff(id uint, updates map[string]interface{}) (*models.Staff, error)
	DeleteStaff(id uint) error
}

// StaffService 提供物业员工相关的服务
type StaffService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewStaffService 创建一个新的员工服务
func NewStaffService(db *gorm.DB, cfg *config.Config) InterfaceStaffService {
	return &StaffService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateStaff 创建新员工
func (s *StaffService) CreateStaff(staff *models.Staff) error {
	// 验证楼宇是否存在
	var building models.Building
	if err := s.DB.First(&building, staff.BuildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBuildingNotFound
		}
		return err
	}

	return s.DB.Create(staff).Error
}

// 2 GetAllStaff 获取所有员工
func (s *StaffService) GetAllStaff() ([]models.Staff, error) {
	var staff []models.Staff
	if err := s.DB.Preload("Building").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// 3 GetStaffByID 根据ID获取员工
func (s *StaffService) GetStaffByID(id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := s.DB.First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return &staff, nil
}

// 4 UpdateStaff 更新员工信息，只覆盖提供了的字段
func (s *StaffService) UpdateStaff(id uint, updates map[string]interface{}) (*models.Staff, error) {
	staff, err := s.GetStaffByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(staff).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetStaffByID(id)
}

// 5 DeleteStaff 删除员工
func (s *StaffService) DeleteStaff(id uint) error {
	staff, err := s.GetStaffByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(staff).Error
}
