package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalil-mashhad/dalil-backend/config"
	"github.com/dalil-mashhad/dalil-backend/internal/app/controller"
	"github.com/dalil-mashhad/dalil-backend/internal/app/model"
	"github.com/dalil-mashhad/dalil-backend/internal/app/repository"
	"github.com/dalil-mashhad/dalil-backend/internal/app/service"
	"github.com/dalil-mashhad/dalil-backend/internal/db"
	"github.com/dalil-mashhad/dalil-backend/internal/middleware"
	"github.com/dalil-mashhad/dalil-backend/internal/router"
	ws "github.com/dalil-mashhad/dalil-backend/internal/websocket"
	"github.com/dalil-mashhad/dalil-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "integration-test-secret"

type memoryBlacklist struct {
	revoked map[string]bool
}

func (b *memoryBlacklist) Revoke(_ context.Context, token string, _ time.Duration) error {
	b.revoked[token] = true
	return nil
}

func (b *memoryBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	return b.revoked[token], nil
}

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
	Hub    *ws.Hub
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cfg := &config.Config{
		Server:  config.ServerConfig{GinMode: gin.TestMode},
		JWT:     config.JWTConfig{Secret: testJWTSecret, TokenExpiry: time.Hour},
		Session: config.SessionConfig{CookieName: "dalil_session"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Feed:    config.FeedConfig{SiteURL: "https://dalil.example", Title: "Dalil", CacheMaxAge: time.Minute},
	}

	userRepo := repository.NewUserRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	attractionCategoryRepo := repository.NewAttractionCategoryRepository(testDB)
	doctorRepo := repository.NewDoctorRepository(testDB)
	attractionRepo := repository.NewAttractionRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	likeRepo := repository.NewLikeRepository(testDB)
	subjectRepo := repository.NewSubjectRepository(testDB)
	analyticsRepo := repository.NewAnalyticsRepository(testDB)

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	analyticsService := service.NewAnalyticsService(analyticsRepo, doctorRepo, categoryRepo, attractionRepo, attractionCategoryRepo, reviewRepo)
	authService := service.NewAuthService(userRepo, &memoryBlacklist{revoked: map[string]bool{}}, testJWTSecret, time.Hour)
	doctorService := service.NewDoctorService(doctorRepo, categoryRepo, subjectRepo, reviewRepo, analyticsService)
	attractionService := service.NewAttractionService(attractionRepo, attractionCategoryRepo, subjectRepo, reviewRepo, analyticsService)

	r := router.NewRouter(router.Controllers{
		Auth:       controller.NewAuthController(authService, cfg.Session, cfg.JWT.TokenExpiry),
		User:       controller.NewUserController(service.NewUserService(userRepo)),
		Doctor:     controller.NewDoctorController(doctorService),
		Attraction: controller.NewAttractionController(attractionService),
		Category:   controller.NewCategoryController(service.NewCategoryService(categoryRepo, attractionCategoryRepo)),
		Review:     controller.NewReviewController(service.NewReviewService(testDB, reviewRepo, subjectRepo, analyticsService, hub)),
		Engagement: controller.NewEngagementController(service.NewEngagementService(testDB, likeRepo, subjectRepo)),
		Analytics:  controller.NewAnalyticsController(analyticsService),
		Upload:     controller.NewUploadController(nil),
		Feed:       controller.NewFeedController(doctorService, attractionService, cfg.Feed),
		Live:       controller.NewLiveController(hub, cfg.CORS.AllowedOrigins),
	}, middleware.NewAuthMiddleware(authService, cfg.Session.CookieName), cfg)

	return &TestServer{Router: r.Setup(), DB: testDB, Hub: hub}
}

func (s *TestServer) do(t *testing.T, method, path string, body interface{}, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *TestServer) createUser(t *testing.T, username string, role model.UserRole) map[string]string {
	hash, err := util.HashPassword("password123")
	require.NoError(t, err)
	user := &model.User{Username: username, PasswordHash: hash, Name: username, Role: role, IsActive: true}
	require.NoError(t, s.DB.Create(user).Error)
	token, err := util.GenerateToken(user.ID, user.Username, string(role), testJWTSecret, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func (s *TestServer) createDoctor(t *testing.T, likes int) *model.Doctor {
	category := &model.Category{NameAr: "عظام", Slug: fmt.Sprintf("ortho-%d", time.Now().UnixNano())}
	require.NoError(t, s.DB.Create(category).Error)
	doctor := &model.Doctor{
		NameAr: "د. أحمد", TitleAr: "جراح عظام", BioAr: "خبرة طويلة",
		CategoryID: category.ID, IsActive: true, LikesCount: likes,
	}
	require.NoError(t, s.DB.Create(doctor).Error)
	return doctor
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLikeRoundTrip(t *testing.T) {
	srv := setupIntegrationTest(t)
	doctor := srv.createDoctor(t, 10)
	path := fmt.Sprintf("/api/v1/doctors/%d/like", doctor.ID)
	visitor := map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}

	w := srv.do(t, http.MethodGet, path, nil, visitor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["liked"])

	w = srv.do(t, http.MethodPost, path, nil, visitor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["liked"])

	var reloaded model.Doctor
	require.NoError(t, srv.DB.First(&reloaded, doctor.ID).Error)
	assert.Equal(t, 11, reloaded.LikesCount)

	// X-Real-IP is ignored once X-Forwarded-For names the same visitor.
	w = srv.do(t, http.MethodGet, path, nil, map[string]string{"X-Forwarded-For": "1.2.3.4", "X-Real-IP": "9.9.9.9"})
	assert.Equal(t, true, decode(t, w)["liked"])

	w = srv.do(t, http.MethodPost, path, nil, visitor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["liked"])

	require.NoError(t, srv.DB.First(&reloaded, doctor.ID).Error)
	assert.Equal(t, 10, reloaded.LikesCount)
}

func TestLikeUnknownSubject(t *testing.T) {
	srv := setupIntegrationTest(t)

	w := srv.do(t, http.MethodPost, "/api/v1/attractions/999/like", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/doctors/abc/like", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewModerationFlow(t *testing.T) {
	srv := setupIntegrationTest(t)
	doctor := srv.createDoctor(t, 0)
	editor := srv.createUser(t, "editor", model.RoleEditor)
	admin := srv.createUser(t, "admin", model.RoleAdmin)
	viewer := srv.createUser(t, "viewer", model.RoleViewer)

	submit := func(rating int) uint {
		w := srv.do(t, http.MethodPost, fmt.Sprintf("/api/v1/doctors/%d/reviews", doctor.ID), gin.H{
			"user_name": "سارة",
			"rating":    rating,
			"comment":   "ممتاز",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		review := decode(t, w)["review"].(map[string]interface{})
		return uint(review["id"].(float64))
	}
	rating := func() float64 {
		var d model.Doctor
		require.NoError(t, srv.DB.First(&d, doctor.ID).Error)
		return d.Rating
	}

	first := submit(5)
	second := submit(2)
	assert.Equal(t, 0.0, rating(), "submission never changes the rating")

	// Public listing hides pending reviews.
	w := srv.do(t, http.MethodGet, fmt.Sprintf("/api/v1/doctors/%d/reviews", doctor.ID), nil, nil)
	assert.Empty(t, decode(t, w)["data"])

	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/reviews/doctors/%d/approve", first), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/reviews/doctors/%d/approve", first), nil, viewer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0.0, rating())

	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/reviews/doctors/%d/approve", first), nil, editor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5.0, decode(t, w)["rating"])

	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/reviews/doctors/%d/approve", second), nil, editor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.5, rating())

	// Editors cannot delete.
	w = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/reviews/doctors/%d", first), nil, editor)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 3.5, rating())

	w = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/reviews/doctors/%d", first), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, rating())

	w = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/reviews/doctors/%d", first), nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/reviews/doctors/%d/unapprove", second), nil, editor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, rating())
}

func TestReviewSubmissionValidation(t *testing.T) {
	srv := setupIntegrationTest(t)
	doctor := srv.createDoctor(t, 0)
	path := fmt.Sprintf("/api/v1/doctors/%d/reviews", doctor.ID)

	tests := []struct {
		name     string
		body     gin.H
		wantCode string
	}{
		{"Rating too high", gin.H{"user_name": "a", "rating": 6}, "REVIEW_INVALID_RATING"},
		{"Rating missing", gin.H{"user_name": "a"}, "REVIEW_INVALID_RATING"},
		{"Blank name", gin.H{"user_name": "  ", "rating": 3}, "REVIEW_NAME_REQUIRED"},
		{"Bad email", gin.H{"user_name": "a", "rating": 3, "user_email": "nope"}, "VALIDATION_INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, path, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w)["error"])
		})
	}
}

func TestLoginAndAdminAccess(t *testing.T) {
	srv := setupIntegrationTest(t)
	srv.createUser(t, "superadmin", model.RoleSuperAdmin)
	editor := srv.createUser(t, "editor", model.RoleEditor)

	w := srv.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "superadmin", "password": "wrong-pass"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", decode(t, w)["error"])

	w = srv.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "superadmin", "password": "password123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, "dalil_session="))
	assert.Contains(t, cookie, "HttpOnly")
	token := decode(t, w)["token"].(string)
	super := map[string]string{"Authorization": "Bearer " + token}

	w = srv.do(t, http.MethodGet, "/api/v1/admin/users", nil, super)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/admin/users", nil, editor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/admin/dashboard", nil, editor)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/admin/analytics", nil, editor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Doctor specialties are managed by admins only.
	specialty := gin.H{"name_ar": "قلب", "slug": "cardio"}
	w = srv.do(t, http.MethodPost, "/api/v1/admin/categories", specialty, editor)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = srv.do(t, http.MethodPost, "/api/v1/admin/categories", specialty, super)
	require.Equal(t, http.StatusCreated, w.Code)
	specialtyPath := fmt.Sprintf("/api/v1/admin/categories/%v", decode(t, w)["id"])
	w = srv.do(t, http.MethodPut, specialtyPath, gin.H{"name_ar": "أمراض القلب"}, editor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/auth/logout", nil, super)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/auth/me", nil, super)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_TOKEN_REVOKED", decode(t, w)["error"])
}

func TestHealth(t *testing.T) {
	srv := setupIntegrationTest(t)

	w := srv.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestReviewLiveStream(t *testing.T) {
	srv := setupIntegrationTest(t)
	doctor := srv.createDoctor(t, 0)
	editor := srv.createUser(t, "editor", model.RoleEditor)
	viewer := srv.createUser(t, "viewer", model.RoleViewer)

	httpServer := httptest.NewServer(srv.Router)
	t.Cleanup(httpServer.Close)
	url := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/api/v1/admin/reviews/live"

	header := func(h map[string]string) http.Header {
		out := http.Header{}
		for k, v := range h {
			out.Set(k, v)
		}
		return out
	}

	_, resp, err := websocket.DefaultDialer.Dial(url, header(viewer))
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, header(editor))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return srv.Hub.SessionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	w := srv.do(t, http.MethodPost, fmt.Sprintf("/api/v1/doctors/%d/reviews", doctor.ID), gin.H{
		"user_name": "علي",
		"rating":    3,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event map[string]interface{}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, service.EventReviewSubmitted, event["type"])
	review := event["review"].(map[string]interface{})
	assert.Equal(t, float64(3), review["rating"])
	assert.Equal(t, float64(doctor.ID), review["subject_id"])

	conn.Close()
	require.Eventually(t, func() bool { return srv.Hub.SessionCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
