package services

import (
	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// BuildingStats 楼宇看板统计数据，每次请求重新计算，不做缓存
type BuildingStats struct {
	TotalResidents     int64 `json:"totalResidents"`
	TotalApartments    int   `json:"totalApartments"`
	VacantApartments   int64 `json:"vacantApartments"`
	OccupiedApartments int64 `json:"occupiedApartments"`
	TotalRequests      int64 `json:"totalRequests"`
	PendingRequests    int64 `json:"pendingRequests"`
	InProgressRequests int64 `json:"inProgressRequests"`
	CompletedRequests  int64 `json:"completedRequests"`
	NoticesCount       int64 `json:"noticesCount"`
}

// InterfaceStatsService defines the stats service interface
type InterfaceStatsService interface {
	GetBuildingStats(buildingID, callerID uint, callerRole string) (*BuildingStats, error)
}

// StatsService 提供楼宇看板的只读统计
type StatsService struct {
	DB       *gorm.DB
	Config   *config.Config
	Building InterfaceBuildingService
}

// NewStatsService 创建一个新的统计服务
func NewStatsService(db *gorm.DB, cfg *config.Config, building InterfaceBuildingService) InterfaceStatsService {
	return &StatsService{
		DB:       db,
		Config:   cfg,
		Building: building,
	}
}

// GetBuildingStats 计算单个楼宇的看板统计
// 楼宇必须存在，且楼宇管理员只能查看自己创建的楼宇
func (s *StatsService) GetBuildingStats(buildingID, callerID uint, callerRole string) (*BuildingStats, error) {
	building, err := s.Building.GetOwnedBuilding(buildingID, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	stats := &BuildingStats{
		TotalApartments: building.TotalApartments,
	}

	if err := s.DB.Model(&models.Resident{}).
		Where("building_id = ?", building.ID).
		Count(&stats.TotalResidents).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Apartment{}).
		Where("building_id = ? AND status = ?", building.ID, models.ApartmentStatusVacant).
		Count(&stats.VacantApartments).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Apartment{}).
		Where("building_id = ? AND status = ?", building.ID, models.ApartmentStatusOccupied).
		Count(&stats.OccupiedApartments).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.MaintenanceRequest{}).
		Where("building_id = ?", building.ID).
		Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.MaintenanceRequest{}).
		Where("building_id = ? AND status = ?", building.ID, models.RequestStatusPending).
		Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.MaintenanceRequest{}).
		Where("building_id = ? AND status = ?", building.ID, models.RequestStatusInProgress).
		Count(&stats.InProgressRequests).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.MaintenanceRequest{}).
		Where("building_id = ? AND status = ?", building.ID, models.RequestStatusResolved).
		Count(&stats.CompletedRequests).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Notice{}).
		Where("building_id = ?", building.ID).
		Count(&stats.NoticesCount).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
