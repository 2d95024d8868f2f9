package services

import (
	"testing"

	"hms-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotice(t *testing.T) {
	db := setupTestDB(t)
	service := NewNoticeService(db, testConfig(), nil, nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	notice, err := service.CreateNotice(building.ID, admin.ID, "停水通知", "明天上午9点至12点停水")
	require.NoError(t, err)
	assert.Equal(t, building.ID, notice.BuildingID)
	assert.Equal(t, admin.ID, notice.CreatedBy)

	// 未知楼宇
	_, err = service.CreateNotice(9999, admin.ID, "标题", "描述")
	assert.ErrorIs(t, err, ErrBuildingNotFound)
}

// toggleRead是对合：连续调用两次回到原状态
func TestToggleReadInvolution(t *testing.T) {
	db := setupTestDB(t)
	service := NewNoticeService(db, testConfig(), nil, nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	notice, err := service.CreateNotice(building.ID, admin.ID, "通知", "内容")
	require.NoError(t, err)

	before, err := service.UnreadCount(resident.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), before)

	// 第一次：标记已读
	require.NoError(t, service.ToggleRead(resident.ID, notice.ID))
	after, err := service.UnreadCount(resident.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after)

	// 第二次：回到未读
	require.NoError(t, service.ToggleRead(resident.ID, notice.ID))
	restored, err := service.UnreadCount(resident.ID)
	require.NoError(t, err)
	assert.Equal(t, before, restored)
}

func TestToggleReadUnknownEntities(t *testing.T) {
	db := setupTestDB(t)
	service := NewNoticeService(db, testConfig(), nil, nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	assert.ErrorIs(t, service.ToggleRead(9999, 1), ErrResidentNotFound)
	assert.ErrorIs(t, service.ToggleRead(resident.ID, 9999), ErrNoticeNotFound)
}

// unreadCount = 楼宇通知总数 - 已读列表长度
func TestUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	service := NewNoticeService(db, testConfig(), nil, nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	var notices []*models.Notice
	for i := 0; i < 3; i++ {
		notice, err := service.CreateNotice(building.ID, admin.ID, "通知", "内容")
		require.NoError(t, err)
		notices = append(notices, notice)
	}

	require.NoError(t, service.ToggleRead(resident.ID, notices[0].ID))

	count, err := service.UnreadCount(resident.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGetResidentNoticesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	service := NewNoticeService(db, testConfig(), nil, nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)
	other := createTestBuilding(t, db, admin.ID)
	resident := createTestResident(t, db, building.ID, "r1@test.local", "AAAA1")

	_, err := service.CreateNotice(building.ID, admin.ID, "本楼通知", "内容")
	require.NoError(t, err)
	_, err = service.CreateNotice(other.ID, admin.ID, "别楼通知", "内容")
	require.NoError(t, err)

	notices, err := service.GetResidentNotices(resident.ID)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "本楼通知", notices[0].Title)
}

// 最近通知最多5条；Redis不可用时直接查库
func TestGetRecentNoticesLimit(t *testing.T) {
	db := setupTestDB(t)
	service := NewNoticeService(db, testConfig(), nil, nil)
	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	for i := 0; i < 7; i++ {
		_, err := service.CreateNotice(building.ID, admin.ID, "通知", "内容")
		require.NoError(t, err)
	}

	notices, err := service.GetRecentNotices(building.ID)
	require.NoError(t, err)
	assert.Len(t, notices, 5)
}
