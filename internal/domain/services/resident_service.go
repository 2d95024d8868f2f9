package services

import (
	"errors"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"
	"hms-http-service/utils"

	"gorm.io/gorm"
)

// 住户相关的哨兵错误
var (
	// ErrResidentNotFound 住户不存在
	ErrResidentNotFound = errors.New("住户不存在")
	// ErrResidentCodeInvalid 激活码不匹配任何住户
	ErrResidentCodeInvalid = errors.New("住户激活码无效")
)

// ResidentFilter 住户列表过滤条件
type ResidentFilter struct {
	BuildingID uint
}

// InterfaceResidentService defines the resident service interface
type InterfaceResidentService interface {
	CreateResident(resident *models.Resident) error
	GetResidents(filter ResidentFilter) ([]models.Resident, error)
	GetResidentByID(id uint) (*models.Resident, error)
	GetBuildingResidents(buildingID uint) ([]models.Resident, error)
	ActivateByCode(residentCode, password string) (*models.Resident, error)
}

// ResidentService 提供住户相关的服务
type ResidentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewResidentService 创建一个新的住户服务
func NewResidentService(db *gorm.DB, cfg *config.Config) InterfaceResidentService {
	return &ResidentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateResident 管理员直接创建住户
// 激活码在此生成；该路径不更新公寓快照，分配住户到公寓请走
// ApartmentService.AssignResident
func (s *ResidentService) CreateResident(resident *models.Resident) error {
	// 验证楼宇是否存在
	var building models.Building
	if err := s.DB.First(&building, resident.BuildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBuildingNotFound
		}
		return err
	}

	if resident.ResidentCode == "" {
		resident.ResidentCode = utils.GenerateResidentCode()
	}
	return s.DB.Create(resident).Error
}

// 2 GetResidents 获取住户列表，可按楼宇过滤
func (s *ResidentService) GetResidents(filter ResidentFilter) ([]models.Resident, error) {
	var residents []models.Resident
	query := s.DB.Preload("Building")

	if filter.BuildingID > 0 {
		query = query.Where("building_id = ?", filter.BuildingID)
	}

	if err := query.Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// 3 GetResidentByID 根据ID获取住户
func (s *ResidentService) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return &resident, nil
}

// 4 GetBuildingResidents 获取楼宇下的住户（下拉列表用的精简投影）
func (s *ResidentService) GetBuildingResidents(buildingID uint) ([]models.Resident, error) {
	var residents []models.Resident
	if err := s.DB.Select("id", "full_name", "apartment_number").
		Where("building_id = ?", buildingID).
		Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// 5 ActivateByCode 凭激活码为预建住户补写密码
// 住户的"注册"就是这一步：记录必须已由管理员创建，激活只是挂上登录凭证
func (s *ResidentService) ActivateByCode(residentCode, password string) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.Where("resident_code = ?", residentCode).First(&resident).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentCodeInvalid
		}
		return nil, err
	}

	if password != "" {
		resident.Password = password
		// 密码哈希由模型的BeforeSave钩子完成
		if err := s.DB.Save(&resident).Error; err != nil {
			return nil, err
		}
	}
	return &resident, nil
}
