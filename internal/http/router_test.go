package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/courseforge-backend/internal/data/repos"
	"github.com/yungbote/courseforge-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/courseforge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/courseforge-backend/internal/http/middleware"
	"github.com/yungbote/courseforge-backend/internal/learning/prompts"
	"github.com/yungbote/courseforge-backend/internal/platform/openai"
	"github.com/yungbote/courseforge-backend/internal/platform/ratelimit"
	"github.com/yungbote/courseforge-backend/internal/services"
)

const testSecret = "router-test-secret"

type cannedLLM struct{ text string }

func (l cannedLLM) GenerateText(context.Context, openai.ChatRequest) (string, error) {
	return l.text, nil
}

func newTestRouter(t *testing.T, llm openai.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	courseRepo := repos.NewCourseRepo(db, log)
	moduleRepo := repos.NewModuleRepo(db, log)
	lessonRepo := repos.NewLessonRepo(db, log)

	gate := services.NewOwnershipGate(log, courseRepo, moduleRepo, lessonRepo)
	identity := services.NewIdentityService(db, log, userRepo)
	auth := services.NewAuthService(log, identity, testSecret, "")
	courseSvc := services.NewCourseService(db, log, gate, courseRepo, moduleRepo, lessonRepo)
	moduleSvc := services.NewModuleService(db, log, gate, courseRepo, moduleRepo, lessonRepo)
	lessonSvc := services.NewLessonService(db, log, gate, moduleRepo, lessonRepo)
	registry, err := prompts.Load()
	if err != nil {
		t.Fatalf("prompts.Load: %v", err)
	}
	genSvc := services.NewGenerationService(log, llm, registry, ratelimit.Noop())

	return NewRouter(RouterConfig{
		Log:               log,
		AuthMiddleware:    httpMW.NewAuthMiddleware(log, auth),
		HealthHandler:     httpH.NewHealthHandler(db),
		UserHandler:       httpH.NewUserHandler(log, services.NewUserService(log, userRepo)),
		CourseHandler:     httpH.NewCourseHandler(log, courseSvc, moduleSvc),
		ModuleHandler:     httpH.NewModuleHandler(log, moduleSvc, lessonSvc),
		LessonHandler:     httpH.NewLessonHandler(log, lessonSvc),
		GenerationHandler: httpH.NewGenerationHandler(log, genSvc),
	})
}

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	claims := services.SessionClaims{
		Email: email,
		Name:  "Test Author",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

type apiResult struct {
	code int
	body map[string]any
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body any) apiResult {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	out := apiResult{code: rec.Code, body: map[string]any{}}
	if rec.Header().Get("Content-Type") != "" && rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(rec.Body.Bytes(), &out.body); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return out
}

func errorCode(res apiResult) string {
	e, _ := res.body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func field(res apiResult, key, sub string) any {
	obj, _ := res.body[key].(map[string]any)
	return obj[sub]
}

func TestHealthcheckIsPublic(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(nethttp.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != nethttp.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck = %d %q", rec.Code, rec.Body.String())
	}
}

func TestAPIRequiresSession(t *testing.T) {
	r := newTestRouter(t, nil)
	res := call(t, r, nethttp.MethodGet, "/api/courses", "", nil)
	if res.code != nethttp.StatusUnauthorized || errorCode(res) != "unauthenticated" {
		t.Fatalf("got %d %v", res.code, res.body)
	}
}

func TestCourseAuthoringFlow(t *testing.T) {
	r := newTestRouter(t, nil)
	author := tokenFor(t, "author@example.com")

	me := call(t, r, nethttp.MethodGet, "/api/me", author, nil)
	if me.code != nethttp.StatusOK || field(me, "me", "email") != "author@example.com" {
		t.Fatalf("me = %d %v", me.code, me.body)
	}

	created := call(t, r, nethttp.MethodPost, "/api/courses", author, map[string]any{
		"title":       "Intro to Algebra",
		"description": "Variables and equations",
		"difficulty":  "beginner",
	})
	if created.code != nethttp.StatusCreated {
		t.Fatalf("create course = %d %v", created.code, created.body)
	}
	courseID, _ := field(created, "course", "id").(string)
	if field(created, "course", "difficulty") != "beginner" {
		t.Fatalf("course = %v", created.body)
	}

	m1 := call(t, r, nethttp.MethodPost, "/api/modules", author, map[string]any{"courseId": courseID, "title": "Variables", "description": "x"})
	m2 := call(t, r, nethttp.MethodPost, "/api/modules", author, map[string]any{"courseId": courseID, "title": "Equations", "description": "y"})
	if m1.code != nethttp.StatusCreated || m2.code != nethttp.StatusCreated {
		t.Fatalf("create modules = %d, %d", m1.code, m2.code)
	}
	if field(m1, "module", "order") != float64(1) || field(m2, "module", "order") != float64(2) {
		t.Fatalf("orders = %v, %v", field(m1, "module", "order"), field(m2, "module", "order"))
	}
	m1ID, _ := field(m1, "module", "id").(string)
	m2ID, _ := field(m2, "module", "id").(string)

	lesson := call(t, r, nethttp.MethodPost, "/api/lessons", author, map[string]any{
		"moduleId": m2ID, "title": "Linear", "description": "ax+b", "content": "# Linear equations",
	})
	if lesson.code != nethttp.StatusCreated || field(lesson, "lesson", "estimatedTime") != float64(30) {
		t.Fatalf("create lesson = %d %v", lesson.code, lesson.body)
	}

	del := call(t, r, nethttp.MethodDelete, "/api/modules/"+m1ID, author, nil)
	if del.code != nethttp.StatusOK || del.body["message"] != "Module deleted successfully" {
		t.Fatalf("delete module = %d %v", del.code, del.body)
	}

	got := call(t, r, nethttp.MethodGet, "/api/courses/"+courseID, author, nil)
	if got.code != nethttp.StatusOK {
		t.Fatalf("get course = %d %v", got.code, got.body)
	}
	modules, _ := field(got, "course", "modules").([]any)
	if len(modules) != 1 {
		t.Fatalf("course modules = %v", modules)
	}
	only, _ := modules[0].(map[string]any)
	if only["id"] != m2ID || only["order"] != float64(2) {
		t.Fatalf("remaining module = %v", only)
	}

	list := call(t, r, nethttp.MethodGet, "/api/modules/"+m2ID+"/lessons", author, nil)
	if lessons, _ := list.body["lessons"].([]any); list.code != nethttp.StatusOK || len(lessons) != 1 {
		t.Fatalf("module lessons = %d %v", list.code, list.body)
	}

	mine := call(t, r, nethttp.MethodGet, "/api/courses", author, nil)
	if courses, _ := mine.body["courses"].([]any); len(courses) != 1 {
		t.Fatalf("my courses = %v", mine.body)
	}

	gone := call(t, r, nethttp.MethodDelete, "/api/courses/"+courseID, author, nil)
	if gone.code != nethttp.StatusOK || gone.body["message"] != "Course deleted successfully" {
		t.Fatalf("delete course = %d %v", gone.code, gone.body)
	}
	if res := call(t, r, nethttp.MethodGet, "/api/modules/"+m2ID, author, nil); res.code != nethttp.StatusNotFound {
		t.Fatalf("module after course delete = %d", res.code)
	}
}

func TestErrorMapping(t *testing.T) {
	r := newTestRouter(t, nil)
	owner := tokenFor(t, "owner@example.com")
	other := tokenFor(t, "other@example.com")

	created := call(t, r, nethttp.MethodPost, "/api/courses", owner, map[string]any{"title": "Mine", "description": "d"})
	courseID, _ := field(created, "course", "id").(string)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		code   string
	}{
		{"foreign update", nethttp.MethodPut, "/api/courses/" + courseID, other, map[string]any{"title": "x"}, nethttp.StatusForbidden, "unauthorized"},
		{"foreign delete", nethttp.MethodDelete, "/api/courses/" + courseID, other, nil, nethttp.StatusForbidden, "unauthorized"},
		{"malformed id", nethttp.MethodGet, "/api/courses/not-a-uuid", owner, nil, nethttp.StatusBadRequest, "validation"},
		{"malformed body", nethttp.MethodPost, "/api/courses", owner, "{not json", nethttp.StatusBadRequest, "validation"},
		{"empty body", nethttp.MethodPost, "/api/courses", owner, nil, nethttp.StatusBadRequest, "validation"},
		{"missing course", nethttp.MethodGet, "/api/courses/6f1c1a4e-2b1e-4c57-9d1c-0d3b7b1f0a11", owner, nil, nethttp.StatusNotFound, "not_found"},
		{"module without course", nethttp.MethodPost, "/api/modules", owner, map[string]any{"title": "t", "description": "d"}, nethttp.StatusBadRequest, "validation"},
		{"no model configured", nethttp.MethodPost, "/api/lessons/generate", owner, map[string]any{
			"topic": "Variables", "targetAudience": "teens", "learningLevel": "beginner", "desiredOutcomes": "define",
		}, nethttp.StatusBadGateway, "generation_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := call(t, r, tc.method, tc.path, tc.token, tc.body)
			if res.code != tc.status || errorCode(res) != tc.code {
				t.Fatalf("got %d %v, want %d %s", res.code, res.body, tc.status, tc.code)
			}
		})
	}
}

func TestGenerateModulesEndpoint(t *testing.T) {
	llm := cannedLLM{text: `[{"title":"Foundations","description":"Core.","order":1,"lessonTopics":["Variables"]}]`}
	r := newTestRouter(t, llm)
	tok := tokenFor(t, "author@example.com")

	res := call(t, r, nethttp.MethodPost, "/api/modules/generate", tok, map[string]any{
		"courseTitle":       "Intro to Algebra",
		"courseDescription": "Variables and equations",
		"numberOfModules":   1,
		"targetAudience":    "teens",
		"learningLevel":     "beginner",
	})
	if res.code != nethttp.StatusOK {
		t.Fatalf("generate = %d %v", res.code, res.body)
	}
	modules, _ := res.body["modules"].([]any)
	if len(modules) != 1 {
		t.Fatalf("modules = %v", res.body)
	}
	first, _ := modules[0].(map[string]any)
	if first["title"] != "Foundations" {
		t.Fatalf("draft = %v", first)
	}

	bad := call(t, r, nethttp.MethodPost, "/api/modules/generate", tok, map[string]any{
		"courseTitle": "x", "courseDescription": "y", "numberOfModules": 11, "targetAudience": "z", "learningLevel": "beginner",
	})
	if bad.code != nethttp.StatusBadRequest || errorCode(bad) != "validation" {
		t.Fatalf("out of range = %d %v", bad.code, bad.body)
	}
}

func TestLessonUpdateStoresZeroValues(t *testing.T) {
	r := newTestRouter(t, nil)
	author := tokenFor(t, "author@example.com")

	course := call(t, r, nethttp.MethodPost, "/api/courses", author, map[string]any{"title": "Algebra", "description": "d"})
	courseID, _ := field(course, "course", "id").(string)
	module := call(t, r, nethttp.MethodPost, "/api/modules", author, map[string]any{"courseId": courseID, "title": "Basics", "description": "d"})
	moduleID, _ := field(module, "module", "id").(string)
	lesson := call(t, r, nethttp.MethodPost, "/api/lessons", author, map[string]any{
		"moduleId": moduleID, "title": "Variables", "description": "about variables", "content": "# Variables",
	})
	lessonID, _ := field(lesson, "lesson", "id").(string)
	if lesson.code != nethttp.StatusCreated || field(lesson, "lesson", "estimatedTime") != float64(30) {
		t.Fatalf("create lesson = %d %v", lesson.code, lesson.body)
	}

	updated := call(t, r, nethttp.MethodPut, "/api/lessons/"+lessonID, author, map[string]any{
		"estimatedTime": 0, "description": "", "order": 0,
	})
	if updated.code != nethttp.StatusOK {
		t.Fatalf("update lesson = %d %v", updated.code, updated.body)
	}
	got := call(t, r, nethttp.MethodGet, "/api/lessons/"+lessonID, author, nil)
	if field(got, "lesson", "estimatedTime") != float64(0) || field(got, "lesson", "description") != "" || field(got, "lesson", "order") != float64(0) {
		t.Fatalf("zero values not stored: %v", got.body)
	}
	if field(got, "lesson", "title") != "Variables" {
		t.Fatalf("absent title changed: %v", got.body)
	}

	blank := call(t, r, nethttp.MethodPut, "/api/courses/"+courseID, author, map[string]any{"title": ""})
	if blank.code != nethttp.StatusBadRequest || errorCode(blank) != "validation" {
		t.Fatalf("blank title = %d %v", blank.code, blank.body)
	}
}
