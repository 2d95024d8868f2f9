package services

import (
	"testing"

	"hms-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractClaims(t *testing.T) {
	db := setupTestDB(t)
	jwtService := NewJWTService(testConfig(), db)

	buildingID := uint(7)
	token, err := jwtService.GenerateToken(42, models.RoleResident, &buildingID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtService.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleResident, claims.Role)
	require.NotNil(t, claims.BuildingID)
	assert.Equal(t, uint(7), *claims.BuildingID)
}

func TestExtractClaimsRejectsGarbage(t *testing.T) {
	db := setupTestDB(t)
	jwtService := NewJWTService(testConfig(), db)

	_, err := jwtService.ExtractClaims("not-a-token")
	assert.Error(t, err)
}

func TestLoginBuildingAdmin(t *testing.T) {
	db := setupTestDB(t)
	jwtService := NewJWTService(testConfig(), db)
	admin := createTestAdmin(t, db, "admin@test.local")

	// 密码正确
	result, err := jwtService.Login("admin@test.local", "admin123", models.RoleBuildingAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, admin.ID, result.User.ID)
	assert.Equal(t, models.RoleBuildingAdmin, result.User.Role)

	// 密码错误
	_, err = jwtService.Login("admin@test.local", "wrong", models.RoleBuildingAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 邮箱不存在
	_, err = jwtService.Login("nobody@test.local", "admin123", models.RoleBuildingAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 角色错配：用superAdmin角色登录楼宇管理员账户
	_, err = jwtService.Login("admin@test.local", "admin123", models.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	jwtService := NewJWTService(testConfig(), db)

	_, err := jwtService.Login("x@test.local", "secret", "janitor")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// 住户激活往返：激活前不能登录，凭激活码设置密码后可以登录
func TestResidentActivationLoginRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	jwtService := NewJWTService(cfg, db)
	residentService := NewResidentService(db, cfg)

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
	require.NoError(t, residentService.CreateResident(resident))
	require.NotEmpty(t, resident.ResidentCode)

	// 未激活（无密码）的住户不能登录
	_, err := jwtService.Login("zhangsan@test.local", "newpass123", models.RoleResident)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// 凭激活码设置密码
	activated, err := residentService.ActivateByCode(resident.ResidentCode, "newpass123")
	require.NoError(t, err)
	assert.Equal(t, resident.ID, activated.ID)

	// 激活后可以登录
	result, err := jwtService.Login("zhangsan@test.local", "newpass123", models.RoleResident)
	require.NoError(t, err)
	assert.Equal(t, resident.ID, result.User.ID)
	require.NotEmpty(t, result.Token)

	claims, err := jwtService.ExtractClaims(result.Token)
	require.NoError(t, err)
	require.NotNil(t, claims.BuildingID)
	assert.Equal(t, building.ID, *claims.BuildingID)

	// 密码仍然错误时不能登录
	_, err = jwtService.Login("zhangsan@test.local", "wrongpass", models.RoleResident)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginStaff(t *testing.T) {
	db := setupTestDB(t)
	jwtService := NewJWTService(testConfig(), db)

	admin := createTestAdmin(t, db, "admin@test.local")
	building := createTestBuilding(t, db, admin.ID)

	staff := &models.Staff{
		Name:         "五",
		Surname:      "王",
		Email:        "wangwu@test.local",
		Password:     "staff123",
		Phone:        "13600136000",
		BuildingID:   building.ID,
		RegisteredBy: admin.ID,
	}
	require.NoError(t, db.Create(staff).Error)

	result, err := jwtService.Login("wangwu@test.local", "staff123", models.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, result.User.Role)
}

func TestRegisterBuildingAdmin(t *testing.T) {
	db := setupTestDB(t)
	jwtService := NewJWTService(testConfig(), db)

	user := &models.User{
		Name:     "四",
		Surname:  "李",
		Email:    "lisi@test.local",
		Password: "secret123",
		Phone:    "13500135000",
	}
	result, err := jwtService.RegisterBuildingAdmin(user)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleBuildingAdmin, result.User.Role)

	// 注册后即可登录
	_, err = jwtService.Login("lisi@test.local", "secret123", models.RoleBuildingAdmin)
	assert.NoError(t, err)

	// 邮箱重复
	dup := &models.User{
		Name:     "四",
		Surname:  "李",
		Email:    "lisi@test.local",
		Password: "secret456",
		Phone:    "13500135001",
	}
	_, err = jwtService.RegisterBuildingAdmin(dup)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}
