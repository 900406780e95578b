package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gladgrade/gladgrade-server/internal/bootstrap"
	"github.com/gladgrade/gladgrade-server/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSigningKey = "test-signing-key"
	testProjectID  = "test-project"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}

	cfg := &config.Config{
		AppEnv:           "test",
		AuthSigningKey:   testSigningKey,
		AuthProjectID:    testProjectID,
		RateLimitRating:  10 * time.Second,
		RateLimitMessage: time.Minute,
	}

	return NewServer(cfg, db, nil, nil, nil).Engine()
}

func signToken(t *testing.T, subject string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{testProjectID},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, engine *gin.Engine, subject, email string) string {
	t.Helper()
	token := signToken(t, subject)
	rec := doJSON(t, engine, http.MethodPost, "/api/auth/register", token, map[string]any{
		"email": email,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return token
}

func TestServer_RatingToSummaryFlow(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "flow-sub", "flow@example.com")

	rec := doJSON(t, engine, http.MethodPost, "/api/ratings", token, map[string]any{
		"ratingValue": 5,
		"placeId":     "P1",
		"placeName":   "Corner Cafe",
		"review":      map[string]any{"content": "excellent"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	points, ok := body["points"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, points["awarded"])
	assert.Equal(t, float64(10), points["points"])

	rec = doJSON(t, engine, http.MethodGet, "/api/places/P1/summary", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	summary := decodeBody(t, rec)
	assert.Equal(t, "P1", summary["placeId"])
	assert.Equal(t, float64(5), summary["averageRating"])
	assert.Equal(t, float64(1), summary["totalRatings"])

	counts, ok := summary["ratingCounts"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), counts["5"])
	assert.Equal(t, float64(0), counts["4"])
}

func TestServer_ErrorEnvelope(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/ratings/99999", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(http.StatusNotFound), errBody["status"])
	assert.NotEmpty(t, errBody["message"])
	_, hasStack := errBody["stack"]
	assert.False(t, hasStack)
}

func TestServer_AuthRequired(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// a token signed with the wrong key is rejected
	claims := jwt.RegisteredClaims{
		Subject:   "intruder",
		Audience:  jwt.ClaimStrings{testProjectID},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-key"))
	require.NoError(t, err)

	rec = doJSON(t, engine, http.MethodGet, "/api/me", bad, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_RoleGate(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "gate-sub", "gate@example.com")

	rec := doJSON(t, engine, http.MethodPost, "/api/admin/faqs", token, map[string]any{
		"question": "How do points work?",
		"answer":   "Each rating earns ten points.",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_GuestLogin(t *testing.T) {
	engine := newTestServer(t)
	token := signToken(t, "guest-sub")

	rec := doJSON(t, engine, http.MethodPost, "/api/auth/guest", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	first := decodeBody(t, rec)

	rec = doJSON(t, engine, http.MethodPost, "/api/auth/guest", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	second := decodeBody(t, rec)
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, true, second["isGuest"])
}

func TestServer_PrivateReviewVisibility(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "private-sub", "private@example.com")

	rec := doJSON(t, engine, http.MethodPost, "/api/ratings", token, map[string]any{
		"ratingValue": 3,
		"placeId":     "P9",
		"review":      map[string]any{"content": "kept between us", "isPrivate": true},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeBody(t, rec)
	rating, ok := created["rating"].(map[string]any)
	require.True(t, ok)
	ratingID := int(rating["id"].(float64))
	path := "/api/ratings/" + strconv.Itoa(ratingID)

	// the author sees their own private review on the public read route
	rec = doJSON(t, engine, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	reviews, ok := body["reviews"].([]any)
	require.True(t, ok)
	assert.Len(t, reviews, 1)

	// anonymous callers do not
	rec = doJSON(t, engine, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	reviews, ok = body["reviews"].([]any)
	require.True(t, ok)
	assert.Empty(t, reviews)

	// neither does another registered user
	other := registerUser(t, engine, "private-other", "other@example.com")
	rec = doJSON(t, engine, http.MethodGet, path, other, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	reviews, ok = body["reviews"].([]any)
	require.True(t, ok)
	assert.Empty(t, reviews)
}

func TestServer_MeReturnsBalance(t *testing.T) {
	engine := newTestServer(t)
	token := registerUser(t, engine, "me-sub", "me@example.com")

	rec := doJSON(t, engine, http.MethodPost, "/api/ratings", token, map[string]any{
		"ratingValue": 4,
		"placeId":     "P2",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(10), body["gladPoints"])
}
