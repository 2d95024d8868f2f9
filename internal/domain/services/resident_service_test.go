package services

import (
	"testing"

	"hms-http-service/internal/domain/models"
	"hms-http-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateResidentGeneratesCode(t *testing.T) {
	db := setupTestDB(t)
	service := NewResidentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	resident := &models.Resident{
		FullName:        "张三",
		Email:           "zhangsan@test.local",
		ApartmentNumber: "502",
		Floor:           5,
		Phone:           "13700137000",
		BuildingID:      building.ID,
		RegisteredBy:    admin.ID,
	}
	require.NoError(t, service.CreateResident(resident))
	assert.Regexp(t, residentCodePattern, resident.ResidentCode)
}

func TestCreateResidentUnknownBuilding(t *testing.T) {
	db := setupTestDB(t)
	service := NewResidentService(db, testConfig())

	resident := &models.Resident{
		FullName:   "张三",
		Email:      "zhangsan@test.local",
		BuildingID: 9999,
	}
	assert.ErrorIs(t, service.CreateResident(resident), ErrBuildingNotFound)
}

func TestGetResidentsFilterByBuilding(t *testing.T) {
	db := setupTestDB(t)
	service := NewResidentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	other := createTestBuilding(t, db, admin.ID)

	createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")
	createTestResident(t, db, other.ID, "r2@test.local", "BBBB2")

	// 不过滤时返回全部
	all, err := service.GetResidents(ResidentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// 按楼宇过滤
	filtered, err := service.GetResidents(ResidentFilter{BuildingID: building.ID})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "r1@test.local", filtered[0].Email)
	assert.Equal(t, building.ID, filtered[0].Building.ID)
}

// 下拉列表用的精简投影只带id、姓名和公寓编号
func TestGetBuildingResidents(t *testing.T) {
	db := setupTestDB(t)
	service := NewResidentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	created := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	residents, err := service.GetBuildingResidents(building.ID)
	require.NoError(t, err)
	require.Len(t, residents, 1)
	assert.Equal(t, created.ID, residents[0].ID)
	assert.Equal(t, created.FullName, residents[0].FullName)
	assert.Equal(t, created.ApartmentNumber, residents[0].ApartmentNumber)
	assert.Empty(t, residents[0].Email)
}

func TestActivateByCodeInvalid(t *testing.T) {
	db := setupTestDB(t)
	service := NewResidentService(db, testConfig())

	_, err := service.ActivateByCode("ZZZZZ", "newpass123")
	assert.ErrorIs(t, err, ErrResidentCodeInvalid)
}

func TestGetResidentByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewResidentService(db, testConfig())

	_, err := service.GetResidentByID(9999)
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

func TestGenerateResidentCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := utils.GenerateResidentCode()
		assert.Regexp(t, residentCodePattern, code)
		seen[code] = true
	}
	// 100次生成不应全部相同
	assert.Greater(t, len(seen), 1)
}
