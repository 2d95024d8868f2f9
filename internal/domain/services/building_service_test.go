package services

import (
	"testing"

	"hms-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 楼宇管理员只能看到自己创建的楼宇，超级管理员看到全部
func TestGetBuildingsScopedByRole(t *testing.T) {
	db := setupTestDB(t)
	service := NewBuildingService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	otherAdmin := createTestAdmin(t, db, "other@test.local")

	mine := createTestBuilding(t, db, admin.ID)
	createTestBuilding(t, db, otherAdmin.ID)

	buildings, err := service.GetBuildings(admin.ID, models.RoleBuildingAdmin)
	require.NoError(t, err)
	require.Len(t, buildings, 1)
	assert.Equal(t, mine.ID, buildings[0].ID)

	all, err := service.GetBuildings(admin.ID, models.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetOwnedBuilding(t *testing.T) {
	db := setupTestDB(t)
	service := NewBuildingService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	otherAdmin := createTestAdmin(t, db, "other@test.local")
	building := createTestBuilding(t, db, admin.ID)

	owned, err := service.GetOwnedBuilding(building.ID, admin.ID, models.RoleBuildingAdmin)
	require.NoError(t, err)
	assert.Equal(t, building.ID, owned.ID)

	// 别人的楼宇等同于不存在
	_, err = service.GetOwnedBuilding(building.ID, otherAdmin.ID, models.RoleBuildingAdmin)
	assert.ErrorIs(t, err, ErrBuildingNotFound)

	_, err = service.GetOwnedBuilding(9999, admin.ID, models.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrBuildingNotFound)
}

func TestCreateBuilding(t *testing.T) {
	db := setupTestDB(t)
	service := NewBuildingService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")

	building := &models.Building{
		Name:            "和平小区3号楼",
		Address:         "和平路88号",
		TotalFloors:     18,
		TotalApartments: 72,
		CreatedBy:       admin.ID,
	}
	require.NoError(t, service.CreateBuilding(building))
	assert.NotZero(t, building.ID)

	fetched, err := service.GetBuildingByID(building.ID)
	require.NoError(t, err)
	assert.Equal(t, "和平小区3号楼", fetched.Name)
}
