package services

import (
	"testing"

	"hms-http-service/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestStampsResidentContext(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	images := []models.RequestImage{
		{UUID: uuid.New().String(), Data: "aGVsbG8=", ContentType: "image/jpeg", Filename: "a.jpg", Size: 5},
		{UUID: uuid.New().String(), Data: "d29ybGQ=", ContentType: "image/png", Filename: "b.png", Size: 5},
	}

	request, err := service.CreateRequest(resident.ID, "水管漏水", "厨房水管接口处持续滴水", images)
	require.NoError(t, err)

	// 楼宇和公寓编号从住户记录冗余
	assert.Equal(t, building.ID, request.BuildingID)
	assert.Equal(t, resident.ApartmentNumber, request.ApartmentNumber)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, resident.ID, request.CreatedBy)

	// 图片随请求级联落库
	var imageCount int64
	require.NoError(t, db.Model(&models.RequestImage{}).Where("request_id = ?", request.ID).Count(&imageCount).Error)
	assert.Equal(t, int64(2), imageCount)
}

func TestCreateRequestUnknownResident(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)

	_, err := service.CreateRequest(9999, "标题", "描述", nil)
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

// 置为in progress（空格写法）且未指定员工时，默认指派为调用者本人
func TestUpdateStatusDefaultAssignee(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	request, err := service.CreateRequest(resident.ID, "电路故障", "客厅插座没电", nil)
	require.NoError(t, err)

	updated, err := service.UpdateStatus(request.ID, "in progress", nil, admin.ID)
	require.NoError(t, err)

	// 空格写法被归一为规范值
	assert.Equal(t, models.RequestStatusInProgress, updated.Status)
	require.NotNil(t, updated.AssignedStaffID)
	assert.Equal(t, admin.ID, *updated.AssignedStaffID)
}

func TestUpdateStatusExplicitAssignee(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	request, err := service.CreateRequest(resident.ID, "电路故障", "客厅插座没电", nil)
	require.NoError(t, err)

	staffID := uint(33)
	updated, err := service.UpdateStatus(request.ID, models.RequestStatusInProgress, &staffID, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedStaffID)
	assert.Equal(t, staffID, *updated.AssignedStaffID)
}

func TestUpdateStatusInvalid(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)

	_, err := service.UpdateStatus(1, "finished", nil, 1)
	assert.ErrorIs(t, err, ErrRequestStatusInvalid)

	_, err = service.UpdateStatusOnly(1, "finished")
	assert.ErrorIs(t, err, ErrRequestStatusInvalid)
}

// 状态转换不做校验，resolved可以直接跳回pending
func TestUpdateStatusAnyJumpAccepted(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	request, err := service.CreateRequest(resident.ID, "门禁损坏", "单元门禁刷卡无反应", nil)
	require.NoError(t, err)

	_, err = service.UpdateStatusOnly(request.ID, models.RequestStatusResolved)
	require.NoError(t, err)

	updated, err := service.UpdateStatusOnly(request.ID, models.RequestStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, updated.Status)
}

func TestGetRequestsStaffSeesOnlyAssigned(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	r1, err := service.CreateRequest(resident.ID, "请求1", "描述1", nil)
	require.NoError(t, err)
	_, err = service.CreateRequest(resident.ID, "请求2", "描述2", nil)
	require.NoError(t, err)

	staffID := uint(5)
	_, err = service.UpdateStatus(r1.ID, models.RequestStatusInProgress, &staffID, admin.ID)
	require.NoError(t, err)

	requests, err := service.GetRequests(RequestFilter{
		CallerID:   staffID,
		CallerRole: models.RoleStaff,
	})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, r1.ID, requests[0].ID)
}

// 楼宇管理员未指定楼宇时只看到自己楼宇的请求
func TestGetRequestsBuildingAdminScope(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	otherAdmin := createTestAdmin(t, db, "other@test.local")

	myBuilding := createTestBuilding(t, db, admin.ID)
	otherBuilding := createTestBuilding(t, db, otherAdmin.ID)

	myResident := createTestResident(t, db, myBuilding.ID, "r1@test.local", "AAAA1")
	otherResident := createTestResident(t, db, otherBuilding.ID, "r2@test.local", "BBBB2")

	mine, err := service.CreateRequest(myResident.ID, "我的请求", "描述", nil)
	require.NoError(t, err)
	_, err = service.CreateRequest(otherResident.ID, "别人的请求", "描述", nil)
	require.NoError(t, err)

	requests, err := service.GetRequests(RequestFilter{
		CallerID:   admin.ID,
		CallerRole: models.RoleBuildingAdmin,
	})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, mine.ID, requests[0].ID)

	// 显式指定楼宇时按楼宇过滤
	requests, err = service.GetRequests(RequestFilter{
		BuildingID: otherBuilding.ID,
		CallerID:   admin.ID,
		CallerRole: models.RoleBuildingAdmin,
	})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "别人的请求", requests[0].Title)
}

func TestGetRequestsStatusFilterNormalized(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	request, err := service.CreateRequest(resident.ID, "请求", "描述", nil)
	require.NoError(t, err)
	_, err = service.UpdateStatusOnly(request.ID, models.RequestStatusInProgress)
	require.NoError(t, err)

	// 过滤参数的空格写法同样被归一
	requests, err := service.GetRequests(RequestFilter{Status: "in progress", BuildingID: building.ID})
	require.NoError(t, err)
	assert.Len(t, requests, 1)

	// 非法状态报错
	_, err = service.GetRequests(RequestFilter{Status: "finished"})
	assert.ErrorIs(t, err, ErrRequestStatusInvalid)
}

func TestGetRecentRequestsLimit(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	for i := 0; i < 7; i++ {
		_, err := service.CreateRequest(resident.ID, "请求", "描述", nil)
		require.NoError(t, err)
	}

	requests, err := service.GetRecentRequests(building.ID)
	require.NoError(t, err)
	assert.Len(t, requests, 5)
}

func TestGetResidentRequests(t *testing.T) {
	db := setupTestDB(t)
	service := NewRequestService(db, testConfig(), nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	r1 := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")
	r2 := createTestResident(t, db, building.ID, "r2@test.local", "BBBB2")

	_, err := service.CreateRequest(r1.ID, "r1的请求", "描述", nil)
	require.NoError(t, err)
	_, err = service.CreateRequest(r2.ID, "r2的请求", "描述", nil)
	require.NoError(t, err)

	requests, err := service.GetResidentRequests(r1.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "r1的请求", requests[0].Title)
}
