package services

import (
	"errors"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"
	"hms-http-service/utils"

	"gorm.io/gorm"
)

// 公寓相关的哨兵错误
var (
	// ErrApartmentNotFound 公寓不存在或不属于指定楼宇
	ErrApartmentNotFound = errors.New("公寓不存在")
	// ErrApartmentNumberTaken 楼宇内公寓编号重复
	ErrApartmentNumberTaken = errors.New("该楼宇内公寓编号已存在")
	// ErrResidentCodeExhausted 激活码生成重试耗尽
	ErrResidentCodeExhausted = errors.New("生成住户激活码失败，请重试")
)

// 激活码碰撞时的最大重试次数
const residentCodeMaxAttempts = 5

// AssignResidentInput 分配住户到公寓的输入
type AssignResidentInput struct {
	Name            string
	Email           string
	PhoneNumber     string
	ApartmentNumber string
	Floor           int
}

// AssignResidentResult 分配住户的结果
type AssignResidentResult struct {
	Apartment    *models.Apartment
	Resident     *models.Resident
	ResidentCode string
}

// InterfaceApartmentService defines the apartment service interface
type InterfaceApartmentService interface {
	GetApartments(buildingID uint) ([]models.Apartment, error)
	GetApartmentByID(id, buildingID uint) (*models.Apartment, error)
	CreateApartment(apartment *models.Apartment) error
	UpdateApartment(id, buildingID uint, updates map[string]interface{}) (*models.Apartment, error)
	DeleteApartment(id, buildingID uint) error
	AssignResident(apartmentID, buildingID, adminID uint, input AssignResidentInput) (*AssignResidentResult, error)
	RemoveResident(apartmentID, buildingID uint) error
}

// ApartmentService 提供公寓相关的服务
type ApartmentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewApartmentService 创建一个新的公寓服务
func NewApartmentService(db *gorm.DB, cfg *config.Config) InterfaceApartmentService {
	return &ApartmentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetApartments 获取指定楼宇的所有公寓
func (s *ApartmentService) GetApartments(buildingID uint) ([]models.Apartment, error) {
	var apartments []models.Apartment
	if err := s.DB.Where("building_id = ?", buildingID).Find(&apartments).Error; err != nil {
		return nil, err
	}
	return apartments, nil
}

// 2 GetApartmentByID 获取单个公寓，按楼宇过滤
func (s *ApartmentService) GetApartmentByID(id, buildingID uint) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := s.DB.Where("id = ? AND building_id = ?", id, buildingID).First(&apartment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return &apartment, nil
}

// 3 CreateApartment 创建新公寓
func (s *ApartmentService) CreateApartment(apartment *models.Apartment) error {
	// 验证楼宇是否存在
	var building models.Building
	if err := s.DB.First(&building, apartment.BuildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBuildingNotFound
		}
		return err
	}

	// 验证公寓编号在楼宇内唯一
	var count int64
	if err := s.DB.Model(&models.Apartment{}).
		Where("number = ? AND building_id = ?", apartment.Number, apartment.BuildingID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrApartmentNumberTaken
	}

	if apartment.Status == "" {
		apartment.Status = models.ApartmentStatusVacant
	}
	return s.DB.Create(apartment).Error
}

// 4 UpdateApartment 更新公寓信息
func (s *ApartmentService) UpdateApartment(id, buildingID uint, updates map[string]interface{}) (*models.Apartment, error) {
	apartment, err := s.GetApartmentByID(id, buildingID)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(apartment).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetApartmentByID(id, buildingID)
}

// 5 DeleteApartment 删除公寓
func (s *ApartmentService) DeleteApartment(id, buildingID uint) error {
	apartment, err := s.GetApartmentByID(id, buildingID)
	if err != nil {
		return err
	}
	return s.DB.Delete(apartment).Error
}

// 6 AssignResident 分配住户到公寓
// 创建Resident记录和更新公寓快照/状态在同一事务内完成，
// 两次写入之间不会留下"有住户无公寓"或"有公寓无住户"的中间状态
func (s *ApartmentService) AssignResident(apartmentID, buildingID, adminID uint, input AssignResidentInput) (*AssignResidentResult, error) {
	var result AssignResidentResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var apartment models.Apartment
		if err := tx.Where("id = ? AND building_id = ?", apartmentID, buildingID).First(&apartment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApartmentNotFound
			}
			return err
		}

		apartmentNumber := input.ApartmentNumber
		if apartmentNumber == "" {
			apartmentNumber = apartment.Number
		}
		floor := input.Floor
		if floor == 0 {
			floor = apartment.Floor
		}

		// 生成激活码，唯一索引冲突时重试
		resident := &models.Resident{
			FullName:        input.Name,
			Email:           input.Email,
			Phone:           input.PhoneNumber,
			ApartmentNumber: apartmentNumber,
			Floor:           floor,
			BuildingID:      buildingID,
			ApartmentID:     &apartment.ID,
			RegisteredBy:    adminID,
		}

		created := false
		for attempt := 0; attempt < residentCodeMaxAttempts; attempt++ {
			resident.ResidentCode = utils.GenerateResidentCode()

			var count int64
			if err := tx.Model(&models.Resident{}).
				Where("resident_code = ?", resident.ResidentCode).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			if err := tx.Create(resident).Error; err != nil {
				return err
			}
			created = true
			break
		}
		if !created {
			return ErrResidentCodeExhausted
		}

		// 更新公寓快照并标记为occupied
		apartment.SetSnapshot(input.Name, input.Email, input.PhoneNumber)
		if err := tx.Save(&apartment).Error; err != nil {
			return err
		}

		result.Apartment = &apartment
		result.Resident = resident
		result.ResidentCode = resident.ResidentCode
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// 7 RemoveResident 从公寓移除住户并删除住户记录
// 删除Resident记录和清空公寓快照在同一事务内完成
func (s *ApartmentService) RemoveResident(apartmentID, buildingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var apartment models.Apartment
		if err := tx.Where("id = ? AND building_id = ?", apartmentID, buildingID).First(&apartment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApartmentNotFound
			}
			return err
		}

		if apartment.Snapshot() != nil {
			// 优先按公寓回引删除；回引缺失时退回到按(编号,楼层,楼宇)匹配
			res := tx.Where("apartment_id = ?", apartment.ID).Delete(&models.Resident{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Where("apartment_number = ? AND floor = ? AND building_id = ?",
					apartment.Number, apartment.Floor, buildingID).
					Delete(&models.Resident{}).Error; err != nil {
					return err
				}
			}
		}

		apartment.ClearSnapshot()
		return tx.Save(&apartment).Error
	})
}
