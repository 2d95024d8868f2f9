package services

import (
	"errors"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"
	"hms-http-service/pkg/logger"

	"gorm.io/gorm"
)

// 维修请求相关的哨兵错误
var (
	// ErrRequestNotFound 维修请求不存在
	ErrRequestNotFound = errors.New("维修请求不存在")
	// ErrRequestStatusInvalid 非法的状态值
	ErrRequestStatusInvalid = errors.New("无效的维修请求状态")
)

// RequestFilter 维修请求列表过滤条件
type RequestFilter struct {
	Status     string
	BuildingID uint
	// 调用者身份，决定默认的范围收窄
	CallerID   uint
	CallerRole string
}

// InterfaceRequestService defines the maintenance request service interface
type InterfaceRequestService interface {
	CreateRequest(residentID uint, title, description string, images []models.RequestImage) (*models.MaintenanceRequest, error)
	GetRequests(filter RequestFilter) ([]models.MaintenanceRequest, error)
	GetRequestByID(id uint) (*models.MaintenanceRequest, error)
	GetResidentRequests(residentID uint) ([]models.MaintenanceRequest, error)
	GetRecentRequests(buildingID uint) ([]models.MaintenanceRequest, error)
	UpdateStatus(id uint, status string, assignedStaffID *uint, callerID uint) (*models.MaintenanceRequest, error)
	UpdateStatusOnly(id uint, status string) (*models.MaintenanceRequest, error)
}

// RequestService 提供维修请求相关的服务
type RequestService struct {
	DB       *gorm.DB
	Config   *config.Config
	Notifier InterfaceNotifyService // 可为nil，事件推送为尽力而为
}

// NewRequestService 创建一个新的维修请求服务
func NewRequestService(db *gorm.DB, cfg *config.Config, notifier InterfaceNotifyService) InterfaceRequestService {
	return &RequestService{
		DB:       db,
		Config:   cfg,
		Notifier: notifier,
	}
}

// 1 CreateRequest 住户提交维修请求
// 楼宇和公寓编号在创建时从住户记录冗余到请求上，后续不再重算
func (s *RequestService) CreateRequest(residentID uint, title, description string, images []models.RequestImage) (*models.MaintenanceRequest, error) {
	var resident models.Resident
	if err := s.DB.First(&resident, residentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}

	request := &models.MaintenanceRequest{
		Title:           title,
		Description:     description,
		Status:          models.RequestStatusPending,
		ResidentID:      resident.ID,
		ApartmentNumber: resident.ApartmentNumber,
		BuildingID:      resident.BuildingID,
		CreatedBy:       resident.ID,
		Images:          images,
	}

	if err := s.DB.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// 2 GetRequests 获取维修请求列表
// 楼宇管理员未指定楼宇时收窄到自己创建的楼宇；员工只能看到分配给自己的请求
func (s *RequestService) GetRequests(filter RequestFilter) ([]models.MaintenanceRequest, error) {
	query := s.DB.Preload("Resident").Preload("Building").Preload("AssignedStaff").Preload("Images")

	if filter.Status != "" {
		status, ok := models.NormalizeRequestStatus(filter.Status)
		if !ok {
			return nil, ErrRequestStatusInvalid
		}
		query = query.Where("status = ?", status)
	}

	if filter.BuildingID > 0 {
		query = query.Where("building_id = ?", filter.BuildingID)
	} else if filter.CallerRole == models.RoleBuildingAdmin {
		// 未指定楼宇时，楼宇管理员只能看到自己楼宇的请求
		sub := s.DB.Model(&models.Building{}).Select("id").Where("created_by = ?", filter.CallerID)
		query = query.Where("building_id IN (?)", sub)
	}

	if filter.CallerRole == models.RoleStaff {
		query = query.Where("assigned_staff_id = ?", filter.CallerID)
	}

	var requests []models.MaintenanceRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// 3 GetRequestByID 根据ID获取维修请求
func (s *RequestService) GetRequestByID(id uint) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := s.DB.Preload("Images").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// 4 GetResidentRequests 获取住户自己提交的维修请求
func (s *RequestService) GetResidentRequests(residentID uint) ([]models.MaintenanceRequest, error) {
	var requests []models.MaintenanceRequest
	if err := s.DB.Preload("Images").
		Where("created_by = ?", residentID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// 5 GetRecentRequests 获取楼宇最近5条维修请求
func (s *RequestService) GetRecentRequests(buildingID uint) ([]models.MaintenanceRequest, error) {
	var requests []models.MaintenanceRequest
	if err := s.DB.Preload("Resident").
		Where("building_id = ?", buildingID).
		Order("created_at DESC").
		Limit(5).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// 6 UpdateStatus 管理员更新状态并可同时指派员工
// 状态转换不做校验，任意跳转均被接受；置为in_progress且未指定员工时，
// 默认指派为调用者本人
func (s *RequestService) UpdateStatus(id uint, status string, assignedStaffID *uint, callerID uint) (*models.MaintenanceRequest, error) {
	normalized, ok := models.NormalizeRequestStatus(status)
	if !ok {
		return nil, ErrRequestStatusInvalid
	}

	request, err := s.GetRequestByID(id)
	if err != nil {
		return nil, err
	}

	request.Status = normalized
	if normalized == models.RequestStatusInProgress {
		if assignedStaffID != nil {
			request.AssignedStaffID = assignedStaffID
		} else {
			caller := callerID
			request.AssignedStaffID = &caller
		}
	} else if assignedStaffID != nil {
		request.AssignedStaffID = assignedStaffID
	}

	if err := s.DB.Save(request).Error; err != nil {
		return nil, err
	}

	s.publishStatusChange(request)
	return request, nil
}

// 7 UpdateStatusOnly 员工只更新状态，不改动指派
func (s *RequestService) UpdateStatusOnly(id uint, status string) (*models.MaintenanceRequest, error) {
	normalized, ok := models.NormalizeRequestStatus(status)
	if !ok {
		return nil, ErrRequestStatusInvalid
	}

	request, err := s.GetRequestByID(id)
	if err != nil {
		return nil, err
	}

	request.Status = normalized
	if err := s.DB.Save(request).Error; err != nil {
		return nil, err
	}

	s.publishStatusChange(request)
	return request, nil
}

// publishStatusChange 尽力而为地推送状态变更事件，失败只记日志
func (s *RequestService) publishStatusChange(request *models.MaintenanceRequest) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.PublishRequestStatusChanged(request); err != nil {
		logger.Warning("维修请求事件推送失败: %v", err)
	}
}
