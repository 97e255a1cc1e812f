package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/albaz/internal/config"
	"github.com/example/albaz/internal/routes"
	"github.com/example/albaz/internal/storage"
	"github.com/example/albaz/internal/store"
)

func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	s := store.New(store.Options{Engine: storage.NewMemory()})
	s.Load(context.Background())
	t.Cleanup(s.Wait)

	app := fiber.New()
	routes.Register(app, s, &config.Config{
		GeminiBaseURL: "http://127.0.0.1:0",
		GeminiModel:   "gemini-2.0-flash",
	})
	return app, s
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()

	body := bytes.NewBuffer(nil)
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func login(t *testing.T, app *fiber.App, identifier, password string) {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"identifier": identifier,
		"password":   password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLoginAndProfile(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/profile", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	login(t, app, store.SeedStudentEmail, store.SeedStudentPassword)

	resp = doJSON(t, app, "GET", "/api/profile", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)["data"].(map[string]any)
	assert.Equal(t, "student-002", data["id"])
	assert.Empty(t, data["password_hash"])
}

func TestLoginFailures(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"identifier": "nobody@test.com", "password": "x",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"identifier": store.SeedStudentEmail, "password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/auth/login", fiber.Map{"identifier": store.SeedStudentEmail})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterConflict(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"name": "New User", "identifier": "new@test.com", "password": "pw",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"name": "Clone", "identifier": "new@test.com", "password": "pw",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestListCourses(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/courses", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeData(t, resp)["data"].([]any), 5)
}

func TestGetCourseNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/courses/ghost", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminGuard(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/admin/users", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	login(t, app, store.SeedStudentEmail, store.SeedStudentPassword)
	resp = doJSON(t, app, "GET", "/api/admin/users", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	login(t, app, store.SeedAdminEmail, store.SeedAdminPassword)
	resp = doJSON(t, app, "GET", "/api/admin/users", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminCreateCourse(t *testing.T) {
	app, s := newTestApp(t)
	login(t, app, store.SeedAdminEmail, store.SeedAdminPassword)

	resp := doJSON(t, app, "POST", "/api/admin/courses", fiber.Map{
		"id":    "go-201",
		"title": "Advanced Go",
		"price": 1800,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	course, ok := s.Course("go-201")
	require.True(t, ok)
	assert.Equal(t, "Advanced Go", course.Title)

	resp = doJSON(t, app, "POST", "/api/admin/courses", fiber.Map{
		"title": "Bad", "price": -5,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReviewConflict(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, store.SeedStudentEmail, store.SeedStudentPassword)

	resp := doJSON(t, app, "POST", "/api/courses/1/reviews", fiber.Map{
		"rating": 5, "comment": "Great!",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/courses/1/reviews", fiber.Map{
		"rating": 4, "comment": "Again?",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestVisaCheckoutOverHTTP(t *testing.T) {
	app, s := newTestApp(t)
	login(t, app, store.SeedStudentEmail, store.SeedStudentPassword)

	resp := doJSON(t, app, "POST", "/api/cart", fiber.Map{"course_id": "2"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/checkout/visa", fiber.Map{"card_number": "4111111111111111"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)["data"].(map[string]any)
	assert.Equal(t, "success", data["step"])

	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.Contains(t, user.PurchasedCourses, "2")
}

func TestFawryCheckoutOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, store.SeedStudentEmail, store.SeedStudentPassword)

	resp := doJSON(t, app, "POST", "/api/cart", fiber.Map{"course_id": "3"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/checkout/fawry", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	code := decodeData(t, resp)["data"].(map[string]any)["fawry_code"].(string)
	assert.Len(t, code, 9)

	resp = doJSON(t, app, "POST", "/api/checkout/fawry/confirm", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Confirming twice conflicts with the finished state.
	resp = doJSON(t, app, "POST", "/api/checkout/fawry/confirm", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, store.SeedStudentEmail, store.SeedStudentPassword)

	resp := doJSON(t, app, "POST", "/api/cart", fiber.Map{"course_id": "1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/cart", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)["data"].(map[string]any)
	assert.Equal(t, 1200.0, data["total"])

	resp = doJSON(t, app, "DELETE", "/api/cart/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/cart", nil)
	data = decodeData(t, resp)["data"].(map[string]any)
	assert.Equal(t, 0.0, data["total"])
}

func TestAdminCouponRoutes(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, store.SeedAdminEmail, store.SeedAdminPassword)

	resp := doJSON(t, app, "POST", "/api/admin/coupons", fiber.Map{
		"code":             "SAVE20",
		"discount_percent": 20,
		"expiry_date":      time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/admin/coupons", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeData(t, resp)["data"].([]any), 2)
}

func TestExportUsersRoute(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, store.SeedAdminEmail, store.SeedAdminPassword)

	req := httptest.NewRequest("GET", "/api/admin/users/export", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
}

func TestNotificationRoutes(t *testing.T) {
	app, _ := newTestApp(t)
	login(t, app, store.SeedAdminEmail, store.SeedAdminPassword)

	resp := doJSON(t, app, "POST", "/api/admin/notifications", fiber.Map{
		"title": "Maintenance", "message": "Back soon", "type": "alert",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/notifications", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeData(t, resp)["data"].([]any), 1)
}
