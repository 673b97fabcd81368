package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elprofecharles/registration-api/config"
	"github.com/elprofecharles/registration-api/internal/application"
	"github.com/elprofecharles/registration-api/internal/domain/entity"
	repo "github.com/elprofecharles/registration-api/internal/domain/repository"
	"github.com/elprofecharles/registration-api/internal/interface/middleware"
	"github.com/elprofecharles/registration-api/pkg/helpers"
	"github.com/elprofecharles/registration-api/pkg/validation"
)

type fakeRepo struct {
	seq   int
	users map[string]*entity.User
}

func newFakeRepo() *fakeRepo { return &fakeRepo{users: map[string]*entity.User{}} }

func (f *fakeRepo) Create(u *entity.User) error {
	for _, e := range f.users {
		if e.DocumentID == u.DocumentID {
			return repo.ErrDuplicateDocumentID
		}
		if e.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	f.seq++
	u.ID = "u-" + strconv.Itoa(f.seq)
	u.RegisteredAt = time.Now()
	u.LastSeenAt = u.RegisteredAt
	u.IsActive = true
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) GetByDocumentID(doc string) (*entity.User, error) {
	for _, u := range f.users {
		if u.DocumentID == doc {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRepo) FindByDocumentOrEmail(doc, email string) (*entity.User, error) {
	if u, err := f.GetByDocumentID(doc); err == nil {
		return u, nil
	}
	return f.GetByEmail(email)
}

func (f *fakeRepo) Update(u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) TouchLastSeen(id string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.LastSeenAt = time.Now()
	return nil
}

func (f *fakeRepo) Deactivate(id string) error {
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.IsActive = false
	return nil
}

func (f *fakeRepo) CountActive() (int64, error)                   { return int64(len(f.users)), nil }
func (f *fakeRepo) CountRegisteredSince(time.Time) (int64, error) { return int64(len(f.users)), nil }

var _ repo.UserRepository = (*fakeRepo)(nil)

func newTestRouter(t *testing.T) (*gin.Engine, *application.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{Env: "production"}
	jwt := helpers.NewJWTManager("handler-test-secret", time.Hour)
	svc := application.NewService(newFakeRepo(), jwt, nil, nil, nil, false)

	authH := NewAuthHandler(svc, nil, cfg)
	userH := NewUserHandler(svc, nil, cfg)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/auth/verify", authH.Verify)
	api.GET("/auth/lists", authH.Lists)

	users := api.Group("/users")
	users.GET("/stats", userH.Stats)
	auth := users.Group("/")
	auth.Use(middleware.Auth(svc))
	auth.GET("/profile", userH.GetProfile)
	auth.PUT("/profile", userH.UpdateProfile)
	auth.POST("/logout", userH.Logout)

	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
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

func registerPayload() map[string]any {
	return map[string]any{
		"fullName":      "  ana maria lopez ",
		"documentId":    "CC12345",
		"phone":         "3001234567",
		"email":         "ANA@X.com",
		"profession":    "ingeniera",
		"city":          "bogota",
		"department":    "CUNDINAMARCA",
		"academicLevel": "Pregrado",
		"consentGiven":  true,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRegisterEndpoint_Success(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", registerPayload(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var data struct {
		User  entity.Profile `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "Ana Maria Lopez", data.User.FullName)
	assert.Equal(t, "CC12345", data.User.DocumentID)
	assert.Equal(t, "Ingeniera", data.User.Profession)
	assert.Equal(t, "Bogota", data.User.City)
}

func TestRegisterEndpoint_ValidationErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := registerPayload()
	payload["documentId"] = "AB1"
	payload["email"] = "nope"

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)

	var fieldErrs []struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(env.Error, &fieldErrs))
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"documentId", "email"}, fields)
}

func TestRegisterEndpoint_Conflict(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", registerPayload(), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", registerPayload(), "")
	require.Equal(t, http.StatusConflict, w.Code)

	env := decodeEnvelope(t, w)
	assert.Contains(t, env.Message, "document")
}

func TestLoginEndpoint_Unknown(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{"documentId": "CC00000"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginEndpoint_MissingDocument(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]any{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", registerPayload(), "")
	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	w = doJSON(t, r, http.MethodGet, "/api/auth/verify", nil, data.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/verify", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/auth/verify", nil, "tampered.token.value")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedProfileFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", registerPayload(), "")
	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	// no token
	w = doJSON(t, r, http.MethodGet, "/api/users/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// with token
	w = doJSON(t, r, http.MethodGet, "/api/users/profile", nil, data.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	// update a mutable field
	w = doJSON(t, r, http.MethodPut, "/api/users/profile", map[string]any{"profession": "arquitecta"}, data.Token)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	var updated struct {
		User entity.Profile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Arquitecta", updated.User.Profession)

	// logout acks and leaves the token valid
	w = doJSON(t, r, http.MethodPost, "/api/users/logout", nil, data.Token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users/profile", nil, data.Token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/lists", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var data struct {
		Departments    []string `json:"departments"`
		AcademicLevels []string `json:"academicLevels"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Departments, 34)
	assert.Len(t, data.AcademicLevels, 10)
	assert.Contains(t, data.Departments, "OTRO")
	assert.Contains(t, data.AcademicLevels, "Doctorado")
}

func TestStatsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", registerPayload(), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var st struct {
		TotalUsers int64 `json:"totalUsers"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, int64(1), st.TotalUsers)
}
