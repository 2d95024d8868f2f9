package services

import (
	"errors"
	"fmt"
	"time"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"
	"hms-http-service/pkg/logger"

	"gorm.io/gorm"
)

// ErrNoticeNotFound 通知不存在
var ErrNoticeNotFound = errors.New("通知不存在")

// 最近通知的缓存有效期
const recentNoticeCacheTTL = 30 * time.Second

// InterfaceNoticeService defines the notice service interface
type InterfaceNoticeService interface {
	CreateNotice(buildingID, authorID uint, title, description string) (*models.Notice, error)
	GetNotices(buildingID uint) ([]models.Notice, error)
	GetRecentNotices(buildingID uint) ([]models.Notice, error)
	GetResidentNotices(residentID uint) ([]models.Notice, error)
	ToggleRead(residentID, noticeID uint) error
	UnreadCount(residentID uint) (int64, error)
}

// NoticeService 提供通知及住户已读状态相关的服务
type NoticeService struct {
	DB       *gorm.DB
	Config   *config.Config
	Redis    InterfaceRedisService  // 可为nil，缓存不可用时直接查库
	Notifier InterfaceNotifyService // 可为nil，通知发布为尽力而为
}

// NewNoticeService 创建一个新的通知服务
func NewNoticeService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService, notifier InterfaceNotifyService) InterfaceNoticeService {
	return &NoticeService{
		DB:       db,
		Config:   cfg,
		Redis:    redis,
		Notifier: notifier,
	}
}

func recentNoticeCacheKey(buildingID uint) string {
	return fmt.Sprintf("notices:recent:%d", buildingID)
}

// 1 CreateNotice 管理员发布楼宇通知
func (s *NoticeService) CreateNotice(buildingID, authorID uint, title, description string) (*models.Notice, error) {
	// 验证楼宇是否存在
	var building models.Building
	if err := s.DB.First(&building, buildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}

	notice := &models.Notice{
		Title:       title,
		Description: description,
		CreatedBy:   authorID,
		BuildingID:  buildingID,
	}
	if err := s.DB.Create(notice).Error; err != nil {
		return nil, err
	}

	// 新通知使最近通知缓存失效
	if s.Redis != nil {
		if err := s.Redis.Delete(recentNoticeCacheKey(buildingID)); err != nil {
			logger.Warning("最近通知缓存失效失败: %v", err)
		}
	}

	// 尽力而为地推送MQTT事件，发布失败只记日志，不影响请求
	if s.Notifier != nil {
		if err := s.Notifier.PublishNoticeCreated(notice); err != nil {
			logger.Warning("通知事件推送失败: %v", err)
		}
	}

	return notice, nil
}

// 2 GetNotices 获取楼宇的所有通知
func (s *NoticeService) GetNotices(buildingID uint) ([]models.Notice, error) {
	var notices []models.Notice
	if err := s.DB.Preload("Creator").Preload("Building").
		Where("building_id = ?", buildingID).
		Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

// 3 GetRecentNotices 获取楼宇最近5条通知，带短时缓存
func (s *NoticeService) GetRecentNotices(buildingID uint) ([]models.Notice, error) {
	key := recentNoticeCacheKey(buildingID)

	if s.Redis != nil {
		var cached []models.Notice
		if err := s.Redis.Get(key, &cached); err == nil {
			return cached, nil
		}
	}

	var notices []models.Notice
	if err := s.DB.Preload("Creator").
		Where("building_id = ?", buildingID).
		Order("created_at DESC").
		Limit(5).
		Find(&notices).Error; err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(key, notices, recentNoticeCacheTTL); err != nil {
			logger.Warning("最近通知写入缓存失败: %v", err)
		}
	}

	return notices, nil
}

// 4 GetResidentNotices 获取住户所在楼宇的通知，按时间倒序
func (s *NoticeService) GetResidentNotices(residentID uint) ([]models.Notice, error) {
	var resident models.Resident
	if err := s.DB.First(&resident, residentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}

	var notices []models.Notice
	if err := s.DB.Preload("Creator").
		Where("building_id = ?", resident.BuildingID).
		Order("created_at DESC").
		Find(&notices).Error; err != nil {
		return nil, err
	}
	return notices, nil
}

// 5 ToggleRead 切换住户对某条通知的已读状态
// 幂等取反：已在已读列表则移除（标记未读），否则追加（标记已读）；
// 连续调用两次会回到原状态
func (s *NoticeService) ToggleRead(residentID, noticeID uint) error {
	var resident models.Resident
	if err := s.DB.First(&resident, residentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResidentNotFound
		}
		return err
	}

	var notice models.Notice
	if err := s.DB.First(&notice, noticeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}

	var count int64
	if err := s.DB.Table("resident_read_notices").
		Where("resident_id = ? AND notice_id = ?", residentID, noticeID).
		Count(&count).Error; err != nil {
		return err
	}

	assoc := s.DB.Model(&resident).Association("ReadNotices")
	if count > 0 {
		return assoc.Delete(&notice)
	}
	return assoc.Append(&notice)
}

// 6 UnreadCount 计算住户未读通知数
// 定义为：楼宇通知总数 - 已读列表长度
func (s *NoticeService) UnreadCount(residentID uint) (int64, error) {
	var resident models.Resident
	if err := s.DB.First(&resident, residentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrResidentNotFound
		}
		return 0, err
	}

	var totalNotices int64
	if err := s.DB.Model(&models.Notice{}).
		Where("building_id = ?", resident.BuildingID).
		Count(&totalNotices).Error; err != nil {
		return 0, err
	}

	var readCount int64
	if err := s.DB.Table("resident_read_notices").
		Where("resident_id = ?", residentID).
		Count(&readCount).Error; err != nil {
		return 0, err
	}

	return totalNotices - readCount, nil
}
