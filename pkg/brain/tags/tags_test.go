package tags

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/auth"
	"github.com/secondbrain-dev/secondbrain/pkg/brain/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testSecret = []byte("test-secret")

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	hash, _ := auth.HashPassword("password123")
	user := models.User{Username: username, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	protected := r.Group("/api", auth.Middleware(testSecret))
	handler.RegisterRoutes(protected)
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		buf = bytes.NewBuffer(payload)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func tokenFor(t *testing.T, user models.User) string {
	token, err := auth.GenerateToken(user.ID, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return token
}

func TestCreateTag(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	token := tokenFor(t, createTestUser(t, db, "alice"))

	resp := doJSON(t, router, "POST", "/api/tags", token, CreateTagRequest{Title: "golang"})

	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created TagResponse
	json.Unmarshal(resp.Body.Bytes(), &created)

	if created.Title != "golang" {
		t.Errorf("Expected title golang, got %s", created.Title)
	}
}

func TestCreateTagEmptyTitle(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	token := tokenFor(t, createTestUser(t, db, "alice"))

	if resp := doJSON(t, router, "POST", "/api/tags", token, map[string]string{}); resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing title, got %d", resp.Code)
	}

	if resp := doJSON(t, router, "POST", "/api/tags", token, CreateTagRequest{Title: "   "}); resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for blank title, got %d", resp.Code)
	}
}

func TestCreateTagDuplicate(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	token := tokenFor(t, createTestUser(t, db, "alice"))

	doJSON(t, router, "POST", "/api/tags", token, CreateTagRequest{Title: "golang"})
	resp := doJSON(t, router, "POST", "/api/tags", token, CreateTagRequest{Title: "golang"})

	if resp.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate tag, got %d", resp.Code)
	}
}

func TestDuplicateTitleAcrossUsersAllowed(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	doJSON(t, router, "POST", "/api/tags", tokenFor(t, alice), CreateTagRequest{Title: "golang"})
	resp := doJSON(t, router, "POST", "/api/tags", tokenFor(t, bob), CreateTagRequest{Title: "golang"})

	if resp.Code != http.StatusCreated {
		t.Errorf("Expected status 201, titles are only unique per user, got %d", resp.Code)
	}
}

func TestListScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	doJSON(t, router, "POST", "/api/tags", tokenFor(t, alice), CreateTagRequest{Title: "golang"})
	doJSON(t, router, "POST", "/api/tags", tokenFor(t, bob), CreateTagRequest{Title: "rust"})

	resp := doJSON(t, router, "GET", "/api/tags", tokenFor(t, alice), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	var tagList []TagResponse
	json.Unmarshal(resp.Body.Bytes(), &tagList)

	if len(tagList) != 1 || tagList[0].Title != "golang" {
		t.Errorf("Expected only alice's tags, got %+v", tagList)
	}
}

func TestListWithoutAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/tags", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", resp.Code)
	}
}
