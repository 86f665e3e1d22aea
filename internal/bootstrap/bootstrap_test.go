package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/atauni/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(upstream string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.ShutdownTimeout = "1s"
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "integration-secret"
	cfg.JWT.AccessTokenExpiration = "168h"
	cfg.JWT.Issuer = "atauni.test"
	cfg.Security.BcryptCost = 4
	cfg.Students.NumberGenAttempts = 5
	cfg.Seed.AdminUsername = "admin"
	cfg.Seed.AdminEmail = "admin@ata.edu.tr"
	cfg.Seed.AdminPassword = "admin123"
	cfg.Seed.AdminFullName = "System Administrator"
	cfg.Weather.ForecastURL = upstream + "/forecast"
	cfg.Weather.GeocodeURL = upstream + "/reverse"
	cfg.Weather.Timeout = "2s"
	cfg.Weather.GeocodeTimeout = "1s"
	return cfg
}

type apiClient struct {
	t      *testing.T
	router http.Handler
}

type apiResult struct {
	Status int
	Body   map[string]interface{}
}

func (r apiResult) data() map[string]interface{} {
	d, _ := r.Body["data"].(map[string]interface{})
	return d
}

func (r apiResult) list() []interface{} {
	l, _ := r.Body["data"].([]interface{})
	return l
}

func (r apiResult) errorCode() string {
	e, _ := r.Body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}

func (c *apiClient) do(method, path, token string, body interface{}) apiResult {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	res := apiResult{Status: w.Code}
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &res.Body), w.Body.String())
	}
	return res
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/forecast":
			_, _ = w.Write([]byte(`{"current":{"temperature_2m":-4.4,"relative_humidity_2m":80,"apparent_temperature":-9.6,"weather_code":73}}`))
		case "/reverse":
			_, _ = w.Write([]byte(`{"address":{"city":"Erzurum","country":"Türkiye","country_code":"tr"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	cfg := testConfig(upstream.URL)
	lgr := zerolog.New(io.Discard)
	repos, database, err := SetupStore(context.Background(), cfg, lgr)
	require.NoError(t, err)
	require.Nil(t, database)

	deps := BuildDependencies(cfg, repos, database, lgr)
	return &apiClient{t: t, router: SetupRouter(cfg, deps)}
}

func (c *apiClient) staffToken(login, password string) string {
	c.t.Helper()
	res := c.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": login, "password": password})
	require.Equal(c.t, http.StatusOK, res.Status, res.Body)
	token, _ := res.data()["access_token"].(string)
	require.NotEmpty(c.t, token)
	return token
}

func registration(tcNo string) map[string]string {
	return map[string]string{
		"tc_no":       tcNo,
		"first_name":  "Mehmet",
		"last_name":   "Kaya",
		"email":       "mehmet@ogr.atauni.edu.tr",
		"phone":       "05551112233",
		"department":  "Bilgisayar Mühendisliği",
		"class_level": "2",
		"password":    "parola1",
	}
}

func TestStudentLifecycle(t *testing.T) {
	api := newTestAPI(t)
	admin := api.staffToken("admin", "admin123")

	res := api.do(http.MethodPost, "/api/students/register", "", registration("12345678901"))
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	student := res.data()
	id := student["id"].(string)
	studentNo := student["student_no"].(string)
	assert.Equal(t, fmt.Sprintf("%04d0001", time.Now().Year()), studentNo)
	assert.Equal(t, "pending", student["status"])
	assert.NotContains(t, student, "password")

	res = api.do(http.MethodPost, "/api/students/register", "", registration("12345678901"))
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "RES_002", res.errorCode())

	login := map[string]string{"student_no": studentNo, "password": "parola1"}
	res = api.do(http.MethodPost, "/api/students/login", "", login)
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Equal(t, "AUTH_002", res.errorCode())

	res = api.do(http.MethodPut, "/api/students/"+id+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, res.Status, res.Body)

	res = api.do(http.MethodPost, "/api/students/login", "", login)
	require.Equal(t, http.StatusOK, res.Status, res.Body)
	studentToken := res.data()["access_token"].(string)

	res = api.do(http.MethodGet, "/api/students/me", studentToken, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, studentNo, res.data()["student_no"])
	assert.Equal(t, "admin", res.data()["approved_by"])

	// tokens of one kind never open the other kind's endpoints
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/students/me", admin, nil).Status)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/students", studentToken, nil).Status)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/auth/me", studentToken, nil).Status)

	res = api.do(http.MethodPost, "/api/students/grades", admin, map[string]interface{}{
		"student_id": id, "course_name": "Veri Yapıları", "course_code": "BIL201",
		"credit": 4, "midterm": 70, "final": 85, "grade": "BA", "semester": "Güz 2025",
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	gradeID := res.data()["id"].(string)

	res = api.do(http.MethodGet, "/api/students/"+id, admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, 3.5, res.data()["gpa"])

	res = api.do(http.MethodPut, "/api/students/grades/"+gradeID, admin, map[string]interface{}{"grade": "AA"})
	require.Equal(t, http.StatusOK, res.Status, res.Body)
	assert.Equal(t, 4.0, api.do(http.MethodGet, "/api/students/"+id, admin, nil).data()["gpa"])

	res = api.do(http.MethodPost, "/api/students/attendance", admin, map[string]interface{}{
		"student_id": id, "course_name": "Veri Yapıları", "total_hours": 56, "attended_hours": 52,
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	assert.Equal(t, 7.14, res.data()["absence_percentage"])

	res = api.do(http.MethodPost, "/api/students/attendance", admin, map[string]interface{}{
		"student_id": id, "course_name": "Fizik", "total_hours": 0, "attended_hours": 0,
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "VAL_001", res.errorCode())

	// grade and attendance reads are public
	assert.Len(t, api.do(http.MethodGet, "/api/students/"+id+"/grades", "", nil).list(), 1)
	assert.Len(t, api.do(http.MethodGet, "/api/students/"+id+"/attendance", "", nil).list(), 1)

	res = api.do(http.MethodDelete, "/api/students/"+id, admin, nil)
	require.Equal(t, http.StatusOK, res.Status)

	res = api.do(http.MethodGet, "/api/students/"+id+"/grades", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Empty(t, res.list())
	assert.Empty(t, api.do(http.MethodGet, "/api/students/"+id+"/attendance", "", nil).list())
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/students/"+id, admin, nil).Status)
}

func TestRegistrationValidation(t *testing.T) {
	api := newTestAPI(t)

	body := registration("12345678901")
	body["class_level"] = "7"
	delete(body, "email")

	res := api.do(http.MethodPost, "/api/students/register", "", body)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "VAL_001", res.errorCode())

	details, _ := res.Body["error"].(map[string]interface{})["details"].([]interface{})
	var fields []string
	for _, d := range details {
		fields = append(fields, d.(map[string]interface{})["field"].(string))
	}
	assert.ElementsMatch(t, []string{"email", "class_level"}, fields)
}

func TestStaffManagement(t *testing.T) {
	api := newTestAPI(t)
	admin := api.staffToken("admin@ata.edu.tr", "admin123")

	res := api.do(http.MethodGet, "/api/auth/me", admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	adminID := res.data()["id"].(string)
	assert.Equal(t, "admin", res.data()["role"])

	res = api.do(http.MethodPost, "/api/users", admin, map[string]string{
		"username": "ogrenciisleri", "email": "oi@ata.edu.tr", "password": "yazar123", "full_name": "Öğrenci İşleri",
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	assert.Equal(t, "writer", res.data()["role"])
	writerID := res.data()["id"].(string)

	writer := api.staffToken("ogrenciisleri", "yazar123")
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/auth/me", writer, nil).Status)

	res = api.do(http.MethodGet, "/api/users", writer, nil)
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Equal(t, "AUTH_009", res.errorCode())

	res = api.do(http.MethodDelete, "/api/users/"+adminID, admin, nil)
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = api.do(http.MethodPut, "/api/users/"+adminID, admin, map[string]string{"full_name": "Başka"})
	assert.Equal(t, http.StatusForbidden, res.Status)

	res = api.do(http.MethodPost, "/api/users", admin, map[string]string{
		"username": "ogrenciisleri", "email": "x@ata.edu.tr", "password": "yazar123", "full_name": "Kopya",
	})
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "RES_002", res.errorCode())

	assert.Len(t, api.do(http.MethodGet, "/api/users", admin, nil).list(), 2)

	require.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/api/users/"+writerID, admin, nil).Status)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/users/"+writerID, admin, nil).Status)

	// the writer's token no longer resolves to a user
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/auth/me", writer, nil).Status)

	res = api.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "AUTH_001", res.errorCode())
}

func TestAdminRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/students", "/api/users", "/api/auth/me"} {
		res := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.Status, path)
	}
	res := api.do(http.MethodPost, "/api/students/grades", "not.a.token", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestWeatherAndHealth(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(http.MethodGet, "/api/weather?lat=39.9&lon=41.27", "", nil)
	require.Equal(t, http.StatusOK, res.Status, res.Body)
	data := res.data()
	assert.Equal(t, -4.0, data["temp"])
	assert.Equal(t, -10.0, data["feels_like"])
	assert.Equal(t, "Karlı", data["description"])
	assert.Equal(t, "13d", data["icon"])
	assert.Equal(t, "Erzurum", data["city"])

	res = api.do(http.MethodGet, "/api/weather?lat=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = api.do(http.MethodGet, "/api/weather?lat=91&lon=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/ping", "", nil).Status)
	res = api.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "healthy", res.data()["status"])
	assert.Equal(t, Version, res.data()["version"])
}

func TestStudentNumbersIncrease(t *testing.T) {
	api := newTestAPI(t)
	year := time.Now().Year()

	for i := 1; i <= 3; i++ {
		res := api.do(http.MethodPost, "/api/students/register", "", registration(strconv.Itoa(10000000000+i)))
		require.Equal(t, http.StatusCreated, res.Status, res.Body)
		no := res.data()["student_no"].(string)
		assert.True(t, strings.HasPrefix(no, strconv.Itoa(year)))
		assert.Equal(t, fmt.Sprintf("%d%04d", year, i), no)
	}
}
