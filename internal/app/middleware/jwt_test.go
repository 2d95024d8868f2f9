package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hms-http-service/internal/domain/models"
	"hms-http-service/internal/domain/services"
	"hms-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Staff{}, &models.Resident{}))

	InitAuthMiddleware(authTestConfig(), db)
	return db
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret-key",
		JWTExpireHrs: 1,
	}
}

// newAuthRouter 挂一个回显调用者身份的受保护接口
func newAuthRouter(roles ...string) *gin.Engine {
	r := gin.New()
	group := r.Group("/", Authenticate())
	if len(roles) > 0 {
		group.Use(AuthorizeRoles(roles...))
	}
	group.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": GetCallerID(c),
			"role":   GetCallerRole(c),
		})
	})
	return r
}

func createAuthUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "测试",
		Surname:  "管理员",
		Email:    "admin@test.local",
		Password: "admin123",
		Phone:    "13800138000",
		Role:     models.RoleBuildingAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestAuthenticateMissingHeader(t *testing.T) {
	setupAuthTest(t)
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	setupAuthTest(t)
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	db := setupAuthTest(t)
	user := createAuthUser(t, db)
	r := newAuthRouter()

	token, err := services.NewJWTService(authTestConfig(), db).
		GenerateToken(user.ID, models.RoleBuildingAdmin, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "buildingAdmin")
}

// 令牌有效但主体已被删除时拒绝访问
func TestAuthenticateDeletedPrincipal(t *testing.T) {
	db := setupAuthTest(t)
	user := createAuthUser(t, db)
	r := newAuthRouter()

	token, err := services.NewJWTService(authTestConfig(), db).
		GenerateToken(user.ID, models.RoleBuildingAdmin, nil)
	require.NoError(t, err)

	require.NoError(t, db.Unscoped().Delete(user).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeRolesForbidden(t *testing.T) {
	db := setupAuthTest(t)
	user := createAuthUser(t, db)
	r := newAuthRouter(models.RoleSuperAdmin)

	token, err := services.NewJWTService(authTestConfig(), db).
		GenerateToken(user.ID, models.RoleBuildingAdmin, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizeRolesAllowed(t *testing.T) {
	db := setupAuthTest(t)
	user := createAuthUser(t, db)
	r := newAuthRouter(models.RoleSuperAdmin, models.RoleBuildingAdmin)

	token, err := services.NewJWTService(authTestConfig(), db).
		GenerateToken(user.ID, models.RoleBuildingAdmin, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
