package services

import (
	"regexp"
	"testing"

	"hms-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var residentCodePattern = regexp.MustCompile(`^[A-Z0-9]{5}$`)

func TestCreateApartment(t *testing.T) {
	db := setupTestDB(t)
	service := NewApartmentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	apartment := &models.Apartment{
		Number:     "1201",
		Floor:      12,
		BuildingID: building.ID,
	}
	require.NoError(t, service.CreateApartment(apartment))
	assert.Equal(t, models.ApartmentStatusVacant, apartment.Status)

	// 同一楼宇内编号重复
	dup := &models.Apartment{Number: "1201", Floor: 12, BuildingID: building.ID}
	assert.ErrorIs(t, service.CreateApartment(dup), ErrApartmentNumberTaken)

	// 未知楼宇
	orphan := &models.Apartment{Number: "101", Floor: 1, BuildingID: 9999}
	assert.ErrorIs(t, service.CreateApartment(orphan), ErrBuildingNotFound)
}

// 分配住户的后置条件三元组：住户记录存在、公寓occupied、快照与输入一致
func TestAssignResident(t *testing.T) {
	db := setupTestDB(t)
	service := NewApartmentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	apartment := &models.Apartment{Number: "1201", Floor: 12, BuildingID: building.ID}
	require.NoError(t, service.CreateApartment(apartment))

	input := AssignResidentInput{
		Name:        "李四",
		Email:       "lisi@test.local",
		PhoneNumber: "13900139000",
	}
	result, err := service.AssignResident(apartment.ID, building.ID, admin.ID, input)
	require.NoError(t, err)

	// 激活码为5位大写字母数字
	assert.Regexp(t, residentCodePattern, result.ResidentCode)

	// 住户记录存在且字段从公寓补全
	var resident models.Resident
	require.NoError(t, db.Where("email = ?", "lisi@test.local").First(&resident).Error)
	assert.Equal(t, "1201", resident.ApartmentNumber)
	assert.Equal(t, 12, resident.Floor)
	assert.Equal(t, building.ID, resident.BuildingID)
	require.NotNil(t, resident.ApartmentID)
	assert.Equal(t, apartment.ID, *resident.ApartmentID)
	assert.Equal(t, result.ResidentCode, resident.ResidentCode)

	// 公寓状态与快照
	var stored models.Apartment
	require.NoError(t, db.First(&stored, apartment.ID).Error)
	assert.Equal(t, models.ApartmentStatusOccupied, stored.Status)
	snapshot := stored.Snapshot()
	require.NotNil(t, snapshot)
	assert.Equal(t, "李四", snapshot.Name)
	assert.Equal(t, "lisi@test.local", snapshot.Email)
	assert.Equal(t, "13900139000", snapshot.PhoneNumber)
}

func TestAssignResidentApartmentNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewApartmentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	_, err := service.AssignResident(9999, building.ID, admin.ID, AssignResidentInput{
		Name: "李四", Email: "lisi@test.local", PhoneNumber: "13900139000",
	})
	assert.ErrorIs(t, err, ErrApartmentNotFound)
}

// 楼宇不匹配时公寓视为不存在
func TestAssignResidentWrongBuilding(t *testing.T) {
	db := setupTestDB(t)
	service := NewApartmentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	other := createTestBuilding(t, db, admin.ID)

	apartment := &models.Apartment{Number: "1201", Floor: 12, BuildingID: building.ID}
	require.NoError(t, service.CreateApartment(apartment))

	_, err := service.AssignResident(apartment.ID, other.ID, admin.ID, AssignResidentInput{
		Name: "李四", Email: "lisi@test.local", PhoneNumber: "13900139000",
	})
	assert.ErrorIs(t, err, ErrApartmentNotFound)
}

func TestRemoveResident(t *testing.T) {
	db := setupTestDB(t)
	service := NewApartmentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	apartment := &models.Apartment{Number: "1201", Floor: 12, BuildingID: building.ID}
	require.NoError(t, service.CreateApartment(apartment))

	_, err := service.AssignResident(apartment.ID, building.ID, admin.ID, AssignResidentInput{
		Name: "李四", Email: "lisi@test.local", PhoneNumber: "13900139000",
	})
	require.NoError(t, err)

	require.NoError(t, service.RemoveResident(apartment.ID, building.ID))

	// 住户记录被删除
	var count int64
	require.NoError(t, db.Model(&models.Resident{}).Where("email = ?", "lisi@test.local").Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// 公寓恢复为vacant且快照清空
	var stored models.Apartment
	require.NoError(t, db.First(&stored, apartment.ID).Error)
	assert.Equal(t, models.ApartmentStatusVacant, stored.Status)
	assert.Nil(t, stored.Snapshot())
}

// 移除空置公寓的住户是幂等的空操作
func TestRemoveResidentVacantApartment(t *testing.T) {
	db := setupTestDB(t)
	service := NewApartmentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	apartment := &models.Apartment{Number: "1201", Floor: 12, BuildingID: building.ID}
	require.NoError(t, service.CreateApartment(apartment))

	require.NoError(t, service.RemoveResident(apartment.ID, building.ID))

	var stored models.Apartment
	require.NoError(t, db.First(&stored, apartment.ID).Error)
	assert.Equal(t, models.ApartmentStatusVacant, stored.Status)
}

func TestUpdateAndDeleteApartment(t *testing.T) {
	db := setupTestDB(t)
	service := NewApartmentService(db, testConfig())
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	apartment := &models.Apartment{Number: "1201", Floor: 12, BuildingID: building.ID}
	require.NoError(t, service.CreateApartment(apartment))

	updated, err := service.UpdateApartment(apartment.ID, building.ID, map[string]interface{}{"floor": 11})
	require.NoError(t, err)
	assert.Equal(t, 11, updated.Floor)

	require.NoError(t, service.DeleteApartment(apartment.ID, building.ID))
	_, err = service.GetApartmentByID(apartment.ID, building.ID)
	assert.ErrorIs(t, err, ErrApartmentNotFound)
}
