package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CPU-commits/Intranet_BAttainment/app"
	feed_server "github.com/CPU-commits/Intranet_BAttainment/feed/server"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	query_server "github.com/CPU-commits/Intranet_BAttainment/query/server"
	"github.com/CPU-commits/Intranet_BAttainment/repositories"
	"github.com/CPU-commits/Intranet_BAttainment/repositories/inmem"
	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/CPU-commits/Intranet_BAttainment/smaps"
	"github.com/CPU-commits/Intranet_BAttainment/stack"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Body    T      `json:"body"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var response envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

// Counts batch lookups to prove validation runs before storage
type countingBatches struct {
	repositories.BatchRepository
	lookups int
}

func (c *countingBatches) FindOwned(ctx context.Context, idUser, id primitive.ObjectID) (*models.Batch, error) {
	c.lookups++
	return c.BatchRepository.FindOwned(ctx, idUser, id)
}

type testServer struct {
	router  *gin.Engine
	svc     *services.Services
	batches *countingBatches
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := inmem.NewRepositories()
	batches := &countingBatches{BatchRepository: repos.Batches}
	repos.Batches = batches
	svc := services.New(services.Dependencies{
		Repos: repos,
		Auth:  services.NewAuthService("test-secret", time.Hour),
	})
	router := app.NewRouter(app.RouterConfig{
		Logger:    zap.NewNop(),
		ClientURL: "localhost:3000",
	})
	feed_server.Routes(router, svc)
	query_server.Routes(router, svc)
	return &testServer{router: router, svc: svc, batches: batches}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}
	req := httptest.NewRequest(method, app.API_PREFIX+path, &reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) created(t *testing.T, path string, body interface{}) string {
	t.Helper()
	w := s.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[smaps.IdInsertedMap](t, w).Body.ID
}

func (s *testServer) signup(t *testing.T) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/auth/signup", gin.H{
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	s.token = decode[smaps.TokenMap](t, w).Body.Token
	require.NotEmpty(t, s.token)
}

func TestCourseScoreFlow(t *testing.T) {
	s := newTestServer(t)
	s.signup(t)

	batch := s.created(t, "/batches", gin.H{"title": "2024"})
	semester := s.created(t, "/semesters", gin.H{"batch_id": batch, "title": "Sem1"})
	namelist := s.created(t, "/namelists", gin.H{
		"batch_id": batch,
		"title":    "CSE",
		"students": []gin.H{{"rollno": "R1", "name": "Alice"}},
	})
	course := s.created(t, "/courses", gin.H{
		"semester_id": semester,
		"namelist_id": namelist,
		"title":       "Quiz1",
		"rows":        []string{"Q1", "Q2"},
	})

	w := s.do(t, http.MethodPut, "/courses/"+course+"/score", gin.H{
		"assignment": "Q1",
		"score":      8,
		"rollno":     "R1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 4.0, decode[smaps.CoStudentMap](t, w).Body.Student.AverageScore)

	w = s.do(t, http.MethodGet, "/courses/"+course, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode[smaps.CoListMap](t, w).Body.Course
	require.Len(t, list.Students, 1)
	assert.Equal(t, 8.0, list.Students[0].Scores["Q1"])
	assert.Equal(t, 4.0, list.Students[0].AverageScore)

	w = s.do(t, http.MethodGet, "/semesters/"+semester, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	detail := decode[smaps.SemesterMap](t, w).Body.Semester
	require.Len(t, detail.Courses, 1)
	assert.Equal(t, "Quiz1", detail.Courses[0].Title)

	w = s.do(t, http.MethodGet, "/attainment/"+batch+"/"+semester, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	students := decode[smaps.AttainmentMap](t, w).Body.Students
	require.Len(t, students, 1)
	assert.Equal(t, 4.0, students[0].Courses["Quiz1"])

	w = s.do(t, http.MethodGet, "/attainment/"+batch+"/"+semester+"/export?format=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attainment-Sem1.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestScoreWritesStayInRange(t *testing.T) {
	s := newTestServer(t)
	s.signup(t)

	batch := s.created(t, "/batches", gin.H{"title": "2024"})
	semester := s.created(t, "/semesters", gin.H{"batch_id": batch, "title": "Sem1"})
	namelist := s.created(t, "/namelists", gin.H{
		"batch_id": batch,
		"title":    "CSE",
		"students": []gin.H{{"rollno": "R1", "name": "Alice"}},
	})
	course := s.created(t, "/courses", gin.H{
		"semester_id": semester,
		"namelist_id": namelist,
		"title":       "Quiz1",
		"rows":        []string{"Q1", "Q2"},
	})

	for _, row := range []string{"Q1", "Q2"} {
		w := s.do(t, http.MethodPut, "/courses/"+course+"/score", gin.H{
			"assignment": row,
			"score":      1e308,
			"rollno":     "R1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	}
	w := s.do(t, http.MethodPost, "/courses/"+course+"/rows", gin.H{"row": "Q3", "maxMark": 1e308})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	score := gin.H{"assignment": "Q1", "score": 9, "rollno": "R1"}
	for i := 0; i < 3; i++ {
		w = s.do(t, http.MethodPut, "/courses/"+course+"/score", score)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 4.5, decode[smaps.CoStudentMap](t, w).Body.Student.AverageScore)
	}

	w = s.do(t, http.MethodGet, "/courses/"+course, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 4.5, decode[smaps.CoListMap](t, w).Body.Course.Students[0].AverageScore)

	w = s.do(t, http.MethodGet, "/attainment/"+batch+"/"+semester, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestInvalidIdIsRejectedBeforeStorage(t *testing.T) {
	s := newTestServer(t)
	s.signup(t)

	w := s.do(t, http.MethodPost, "/semesters", gin.H{"batch_id": "not-an-id", "title": "Sem1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode[interface{}](t, w).Success)

	w = s.do(t, http.MethodGet, "/attainment/bad/bad", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, s.batches.lookups)
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/batches", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.token = "forged"
	w = s.do(t, http.MethodGet, "/batches", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.token = ""
	s.signup(t)
	w = s.do(t, http.MethodPost, "/auth/signup", gin.H{"email": "a@x.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Bare tokens are accepted too
	req := httptest.NewRequest(http.MethodGet, app.API_PREFIX+"/users/me", nil)
	req.Header.Set("Authorization", s.token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "a@x.com", decode[smaps.UserMap](t, rec).Body.User.Email)

	w = s.do(t, http.MethodGet, "/users/b@x.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBadBodies(t *testing.T) {
	s := newTestServer(t)
	s.signup(t)

	w := s.do(t, http.MethodPost, "/batches", gin.H{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/cotypes", gin.H{"cotype": "bad.key"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/cotypes", gin.H{"cotype": "apply"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []string{"apply"}, decode[smaps.CotypesMap](t, w).Body.Cotypes)
}

func TestHealthAndNoRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decode[interface{}](t, w).Message)
}

func TestHandleAttainmentRequest(t *testing.T) {
	s := newTestServer(t)
	s.signup(t)
	claims, err := s.svc.Auth.ParseToken(s.token)
	require.NoError(t, err)

	batch := s.created(t, "/batches", gin.H{"title": "2024"})
	semester := s.created(t, "/semesters", gin.H{"batch_id": batch, "title": "Sem1"})

	payload, err := stack.FormatMessage(query_server.AttainmentRequest{
		User:     claims.ID,
		Batch:    batch,
		Semester: semester,
	})
	require.NoError(t, err)
	response := query_server.HandleAttainmentRequest(context.Background(), s.svc, payload)
	assert.True(t, response.Success, response.Message)
	assert.Empty(t, response.Data)

	payload, err = stack.FormatMessage(query_server.AttainmentRequest{User: claims.ID, Batch: batch, Semester: "bad"})
	require.NoError(t, err)
	response = query_server.HandleAttainmentRequest(context.Background(), s.svc, payload)
	assert.False(t, response.Success)

	response = query_server.HandleAttainmentRequest(context.Background(), s.svc, []byte("{"))
	assert.False(t, response.Success)
}

func TestDocs(t *testing.T) {
	s := newTestServer(t)
	query_server.Docs(s.router, "localhost:8080")

	w := s.do(t, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"basePath": "/api/c/attainment"`)
	assert.Contains(t, w.Body.String(), "/attainment/{idBatch}/{idSemester}/export")
}
