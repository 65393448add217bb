package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-admin-api/internal/fixtures"
	internalmiddleware "github.com/noah-isme/academy-admin-api/internal/middleware"
	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/service"
)

var (
	seoul   = time.FixedZone("KST", 9*60*60)
	testNow = time.Date(2025, 1, 20, 10, 0, 0, 0, seoul)
)

const testSessionHeader = "X-Test-Session"

type testEnv struct {
	router   *gin.Engine
	students *service.StudentService
	teachers *service.TeacherService
	notices  *service.NoticeService
	popups   *service.PopupService
}

// newTestEnv mounts the admin handlers over seeded stores. Requests carrying
// X-Test-Session are treated as logged in under that session id.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	params := service.RecordManagerParams{
		Validator: validator.New(),
		Logger:    zap.NewNop(),
		Clock:     func() time.Time { return testNow },
		Location:  seoul,
	}
	stores := fixtures.NewStores(true)
	env := &testEnv{
		students: service.NewStudentService(stores.Students, params),
		teachers: service.NewTeacherService(stores.Teachers, params),
		notices:  service.NewNoticeService(stores.Notices, params),
		popups:   service.NewPopupService(stores.Popups, params),
	}
	exports := service.NewExportService(env.students, env.teachers, "", zap.NewNop())
	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Students: env.students,
		Teachers: env.teachers,
		Notices:  env.notices,
		Popups:   env.popups,
		Clock:    params.Clock,
	})

	students := NewStudentHandler(env.students, exports)
	teachers := NewTeacherHandler(env.teachers, exports)
	notices := NewNoticeHandler(env.notices)
	popups := NewPopupHandler(env.popups)
	public := NewPublicHandler(env.notices, env.popups, "/api/v1")

	r := gin.New()
	r.Use(internalmiddleware.WithResponseMeta())
	r.GET("/", public.Landing)
	r.NoRoute(public.RedirectHome)
	r.GET("/public/popups", public.Popups)
	r.GET("/public/notices", public.Notices)
	r.GET("/public/notices/:id", public.Notice)

	admin := r.Group("")
	admin.Use(fakeSession)
	admin.GET("/dashboard", NewDashboardHandler(dashboard).Admin)

	mountRecords(admin.Group("/students"), students)
	admin.GET("/students/export", students.Export)
	admin.POST("/students/import", students.Import)
	mountRecords(admin.Group("/teachers"), teachers)
	admin.GET("/teachers/export", teachers.Export)
	mountRecords(admin.Group("/notices"), notices)
	mountRecords(admin.Group("/popups"), popups)
	admin.POST("/popups/:id/toggle", popups.Toggle)

	env.router = r
	return env
}

type recordHandler interface {
	List(*gin.Context)
	Stats(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
	OpenCreateForm(*gin.Context)
	OpenEditForm(*gin.Context)
	GetForm(*gin.Context)
	UpdateForm(*gin.Context)
	ToggleFormOption(*gin.Context)
	SubmitForm(*gin.Context)
	CancelForm(*gin.Context)
}

func mountRecords(g *gin.RouterGroup, h recordHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/stats", h.Stats)
	g.GET("/form", h.GetForm)
	g.POST("/form", h.OpenCreateForm)
	g.PUT("/form", h.UpdateForm)
	g.DELETE("/form", h.CancelForm)
	g.POST("/form/toggle", h.ToggleFormOption)
	g.POST("/form/submit", h.SubmitForm)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/form", h.OpenEditForm)
}

func fakeSession(c *gin.Context) {
	if id := c.GetHeader(testSessionHeader); id != "" {
		c.Set(internalmiddleware.ContextSessionKey, &models.SessionClaims{
			AdminID:          "test",
			RegisteredClaims: jwt.RegisteredClaims{ID: id},
		})
	}
	c.Next()
}

func (e *testEnv) do(method, path string, body interface{}, session string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(testSessionHeader, session)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	Data  T `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
