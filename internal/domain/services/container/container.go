package container

import (
	"context"
	"log"
	"sync"
	"time"

	"hms-http-service/internal/domain/services"
	"hms-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储服务
	redisService services.InterfaceRedisService

	// MQTT事件推送服务
	notifyService services.InterfaceNotifyService

	// 业务服务
	buildingService  services.InterfaceBuildingService
	apartmentService services.InterfaceApartmentService
	residentService  services.InterfaceResidentService
	staffService     services.InterfaceStaffService
	requestService   services.InterfaceRequestService
	noticeService    services.InterfaceNoticeService
	statsService     services.InterfaceStatsService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)

	// 初始化Redis服务，未提供客户端时不启用缓存
	if c.redis != nil {
		c.redisService = services.NewRedisService(c.config)
	}

	// 初始化MQTT事件推送服务，未启用时为nil
	c.notifyService = services.NewMQTTNotifyService(c.config)
	if c.notifyService != nil {
		if err := c.notifyService.Connect(); err != nil {
			log.Printf("MQTT服务连接失败: %v", err)
		}
	}

	// 初始化业务服务
	c.buildingService = services.NewBuildingService(c.db, c.config)
	c.apartmentService = services.NewApartmentService(c.db, c.config)
	c.residentService = services.NewResidentService(c.db, c.config)
	c.staffService = services.NewStaffService(c.db, c.config)
	c.requestService = services.NewRequestService(c.db, c.config, c.notifyService)
	c.noticeService = services.NewNoticeService(c.db, c.config, c.redisService, c.notifyService)
	c.statsService = services.NewStatsService(c.db, c.config, c.buildingService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "notify":
		return c.notifyService
	case "building":
		return c.buildingService
	case "apartment":
		return c.apartmentService
	case "resident":
		return c.residentService
	case "staff":
		return c.staffService
	case "request":
		return c.requestService
	case "notice":
		return c.noticeService
	case "stats":
		return c.statsService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
