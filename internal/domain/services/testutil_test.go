package services

import (
	"testing"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/infrastructure/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 创建内存sqlite数据库并迁移全部模型
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Building{},
		&models.Apartment{},
		&models.Resident{},
		&models.Staff{},
		&models.MaintenanceRequest{},
		&models.RequestImage{},
		&models.Notice{},
	)
	require.NoError(t, err)

	return db
}

// testConfig 测试用配置
func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret-key",
		JWTExpireHrs: 1,
	}
}

// createTestAdmin 创建一个楼宇管理员
func createTestAdmin(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	admin := &models.User{
		Name:     "测试",
		Surname:  "管理员",
		Email:    email,
		Password: "admin123",
		Phone:    "13800138000",
		Role:     models.RoleBuildingAdmin,
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

// createTestBuilding 创建一栋测试楼宇
func createTestBuilding(t *testing.T, db *gorm.DB, adminID uint) *models.Building {
	t.Helper()

	building := &models.Building{
		Name:            "测试楼宇",
		Address:         "测试路1号",
		TotalFloors:     10,
		TotalApartments: 40,
		CreatedBy:       adminID,
	}
	require.NoError(t, db.Create(building).Error)
	return building
}

// createTestResident 创建一个已激活的测试住户
func createTestResident(t *testing.T, db *gorm.DB, buildingID uint, email, code string) *models.Resident {
	t.Helper()

	resident := &models.Resident{
		FullName:        "测试住户",
		Email:           email,
		Password:        "resident123",
		ResidentCode:    code,
		ApartmentNumber: "801",
		Floor:           8,
		Phone:           "13900139000",
		BuildingID:      buildingID,
		RegisteredBy:    1,
	}
	require.NoError(t, db.Create(resident).Error)
	return resident
}
