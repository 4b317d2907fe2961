package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"table-service-api/config"
	"table-service-api/events"
	"table-service-api/handlers"
	"table-service-api/middleware"
	"table-service-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	r := gin.New()
	SetupRoutes(r, handlers.New(db, events.NewHub()))
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: username, Username: username, PasswordHash: string(hash), Role: role}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return token
}

func request(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r, db := setupRouter(t)
	adminToken := seedUser(t, db, "boss", models.RoleAdmin)
	kitchenToken := seedUser(t, db, "cook", models.RoleKitchen)

	body := map[string]interface{}{"table_number": 1}

	w := request(r, "POST", "/api/admin/tables", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, "POST", "/api/admin/tables", kitchenToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, "POST", "/api/admin/tables", adminToken, body)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestKitchenRoutesAllowKitchenAndRunner(t *testing.T) {
	r, db := setupRouter(t)
	kitchenToken := seedUser(t, db, "cook", models.RoleKitchen)
	runnerToken := seedUser(t, db, "runner", models.RoleRunner)

	for _, token := range []string{kitchenToken, runnerToken} {
		w := request(r, "GET", "/api/kitchen/orders", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := request(r, "GET", "/api/kitchen/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := request(r, "GET", "/api/menu", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, "GET", "/api/state-machine", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	r, db := setupRouter(t)
	seedUser(t, db, "boss", models.RoleAdmin)

	w := request(r, "POST", "/api/auth/login", "", map[string]string{
		"username": "boss", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	w = request(r, "GET", "/api/profile", resp.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(r, "POST", "/api/auth/login", "", map[string]string{
		"username": "boss", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
