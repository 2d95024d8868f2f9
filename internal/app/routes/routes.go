package routes

import (
	_ "hms-http-service/docs"
	"hms-http-service/internal/app/controllers"
	"hms-http-service/internal/app/middleware"
	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/domain/services/container"
	"hms-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由
	api.GET("/health/status", controllers.HandleHealthFunc(container, "status"))

	// 认证路由
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.CombinedRateLimiter(5, 10)) // 登录注册单独收紧限流
	authGroup.POST("/login", controllers.HandleJWTFunc(container, "login"))
	authGroup.POST("/register", controllers.HandleJWTFunc(container, "register"))

	// 住户激活路由：公开接口，按激活码匹配，不要求登录
	api.PUT("/residents/:id", controllers.HandleResidentFunc(container, "activateResident"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.Authenticate())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 角色白名单
	admins := middleware.AuthorizeRoles(models.RoleSuperAdmin, models.RoleBuildingAdmin)
	buildingAdmin := middleware.AuthorizeRoles(models.RoleBuildingAdmin)
	staffOnly := middleware.AuthorizeRoles(models.RoleStaff)
	residentOnly := middleware.AuthorizeRoles(models.RoleResident)

	// 楼宇路由
	buildingGroup := auth.Group("/buildings")
	buildingGroup.Use(admins)
	buildingGroup.GET("", controllers.HandleBuildingFunc(container, "getBuildings"))
	buildingGroup.GET("/:id", controllers.HandleBuildingFunc(container, "getBuilding"))
	buildingGroup.POST("", controllers.HandleBuildingFunc(container, "createBuilding"))

	// 公寓路由，统一通过?buildingId=限定楼宇
	apartmentGroup := auth.Group("/apartments")
	apartmentGroup.Use(admins)
	apartmentGroup.GET("", controllers.HandleApartmentFunc(container, "getApartments"))
	apartmentGroup.GET("/:id", controllers.HandleApartmentFunc(container, "getApartment"))
	apartmentGroup.POST("", controllers.HandleApartmentFunc(container, "createApartment"))
	apartmentGroup.PUT("/:id", controllers.HandleApartmentFunc(container, "updateApartment"))
	apartmentGroup.DELETE("/:id", controllers.HandleApartmentFunc(container, "deleteApartment"))
	apartmentGroup.POST("/:id/assign-resident", controllers.HandleApartmentFunc(container, "assignResident"))
	apartmentGroup.DELETE("/:id/resident", controllers.HandleApartmentFunc(container, "removeResident"))

	// 住户管理路由（PUT /residents/:id是公开的激活接口，注册在公共路由中）
	residentGroup := auth.Group("/residents")
	residentGroup.POST("", buildingAdmin, controllers.HandleResidentFunc(container, "createResident"))
	residentGroup.GET("", buildingAdmin, controllers.HandleResidentFunc(container, "getResidents"))
	residentGroup.GET("/residents", buildingAdmin, controllers.HandleResidentFunc(container, "getBuildingResidents"))

	// 员工管理与员工工作台路由
	staffGroup := auth.Group("/staff")
	staffGroup.POST("", buildingAdmin, controllers.HandleStaffFunc(container, "createStaff"))
	staffGroup.GET("", buildingAdmin, controllers.HandleStaffFunc(container, "getAllStaff"))
	staffGroup.PUT("/:id", buildingAdmin, controllers.HandleStaffFunc(container, "updateStaff"))
	staffGroup.DELETE("/:id", buildingAdmin, controllers.HandleStaffFunc(container, "deleteStaff"))
	staffGroup.GET("/requests", staffOnly, controllers.HandleStaffFunc(container, "getAssignedRequests"))
	staffGroup.PATCH("/requests/:id", staffOnly, controllers.HandleStaffFunc(container, "updateRequestStatus"))

	// 维修请求管理路由
	requestGroup := auth.Group("/requests")
	requestGroup.GET("", middleware.AuthorizeRoles(models.RoleBuildingAdmin, models.RoleStaff), controllers.HandleRequestFunc(container, "getRequests"))
	requestGroup.PUT("/:id/status", buildingAdmin, controllers.HandleRequestFunc(container, "updateStatus"))
	requestGroup.GET("/recent", admins, controllers.HandleRequestFunc(container, "getRecentRequests"))

	// 通知路由
	noticeGroup := auth.Group("/notices")
	noticeGroup.POST("", buildingAdmin, controllers.HandleNoticeFunc(container, "createNotice"))
	noticeGroup.GET("", middleware.AuthorizeRoles(models.RoleBuildingAdmin, models.RoleResident), controllers.HandleNoticeFunc(container, "getNotices"))
	noticeGroup.GET("/recent", admins, controllers.HandleNoticeFunc(container, "getRecentNotices"))

	// 统计路由
	auth.GET("/stats", admins, controllers.HandleStatsFunc(container, "getBuildingStats"))

	// 住户门户路由
	portalGroup := auth.Group("/resident")
	portalGroup.Use(residentOnly)
	portalGroup.GET("/info", controllers.HandleResidentPortalFunc(container, "getInfo"))
	portalGroup.POST("/maintenance-requests", controllers.HandleResidentPortalFunc(container, "createMaintenanceRequest"))
	portalGroup.GET("/maintenance-requests", controllers.HandleResidentPortalFunc(container, "getMaintenanceRequests"))
	portalGroup.GET("/notices", controllers.HandleResidentPortalFunc(container, "getNotices"))
	portalGroup.PATCH("/notices/:id/read", controllers.HandleResidentPortalFunc(container, "toggleNoticeRead"))
	portalGroup.GET("/notices/unread-count", controllers.HandleResidentPortalFunc(container, "getUnreadCount"))
}
