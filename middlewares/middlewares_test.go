package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func init() { gin.SetMode(gin.TestMode) }

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint(UserIDKey), "email": c.GetString(EmailKey)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter()
	good, err := utils.GenerateJWT(7, "a@b.com", secret, time.Hour)
	require.NoError(t, err)
	forged, err := utils.GenerateJWT(7, "a@b.com", []byte("other"), time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateJWT(7, "a@b.com", secret, -time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", "", http.StatusUnauthorized},
		{"garbage", "Bearer abc", "", http.StatusForbidden},
		{"wrong secret", "Bearer " + forged, "", http.StatusForbidden},
		{"expired", "Bearer " + expired, "", http.StatusForbidden},
		{"header", "Bearer " + good, "", http.StatusOK},
		{"query", "", "?token=" + good, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
			if tc.want == http.StatusOK {
				assert.JSONEq(t, `{"id":7,"email":"a@b.com"}`, w.Body.String())
			}
		})
	}
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	r := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "buckets are per ip")

	now = now.Add(30 * time.Second)
	assert.True(t, l.Allow("1.1.1.1"))

	now = now.Add(time.Hour)
	l.Allow("3.3.3.3")
	l.mu.Lock()
	assert.Len(t, l.visitors, 1)
	l.mu.Unlock()
}

func TestIPRateLimiterSweepsOncePerIdleTTL(t *testing.T) {
	l := NewIPRateLimiter(5)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1")
	now = now.Add(11 * time.Minute)
	l.Allow("2.2.2.2") // sweeps: 1.1.1.1 is idle
	l.mu.Lock()
	assert.Len(t, l.visitors, 1)
	l.mu.Unlock()

	now = now.Add(11 * time.Minute)
	l.Allow("3.3.3.3") // sweeps again: 2.2.2.2 is idle
	now = now.Add(5 * time.Minute)
	l.Allow("4.4.4.4") // no sweep yet
	now = now.Add(time.Minute)
	l.Allow("5.5.5.5")
	l.mu.Lock()
	assert.Len(t, l.visitors, 3)
	l.mu.Unlock()
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/login", NewIPRateLimiter(1).Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
