package routes

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

	"github.com/Devak1234/Fitness-Chatbot/services"
	"github.com/Devak1234/Fitness-Chatbot/testutil"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtSecret = []byte("routes-secret")

type testApp struct {
	router *gin.Engine
	hub    *services.RealtimeHub
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	cat := testutil.Catalog(t)

	hub := services.NewRealtimeHub()
	bus := services.NewAlertBus(db, hub, nil, nil)
	favorites := services.NewFavoritesService(db, cat)
	catalogSvc := services.NewCatalogService(db, cat, services.NewMemoryCatalogCache(), time.Minute)
	_, err := catalogSvc.Seed(context.Background())
	require.NoError(t, err)

	svc := Services{
		Auth:          services.NewAuthService(db, jwtSecret, time.Hour, nil),
		Catalog:       catalogSvc,
		Food:          services.NewFoodService(cat, nil),
		Profiles:      services.NewProfileService(db, nil),
		Plans:         services.NewPlanService(db, cat),
		Progress:      services.NewProgressService(db, bus),
		Checklist:     services.NewChecklistService(db),
		Chat:          services.NewChatService(db),
		Favorites:     favorites,
		Notifications: services.NewNotificationService(db),
		Push:          services.NewPushService(db, nil, ""),
		Alerts:        bus,
		Hub:           hub,
		Portability:   services.NewPortabilityService(db, favorites),
	}
	r := SetupRouter(Options{JWTSecret: jwtSecret, LoginRatePerMin: 100}, svc)
	return &testApp{router: r, hub: hub}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
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
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/auth/register", "", gin.H{"email": email, "password": "pw123", "name": "Asha"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": "pw123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[map[string]string](t, w)["token"]
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/auth/register", "", gin.H{"email": "a@b.com", "password": "pw123"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "a@b.com", body["email"])
	assert.NotZero(t, body["id"])

	w = app.do(t, http.MethodPost, "/auth/register", "", gin.H{"email": "a@b.com", "password": "other"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, w.Body.String())

	w = app.do(t, http.MethodPost, "/auth/register", "", gin.H{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "a@b.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	w = app.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "nobody@b.com", "password": "pw123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "a@b.com", "password": "pw123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[map[string]string](t, w)["token"])
}

func TestForgotPasswordAlwaysOK(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "a@b.com")

	for _, email := range []string{"a@b.com", "ghost@b.com"} {
		w := app.do(t, http.MethodPost, "/auth/forgot-password", "", gin.H{"email": email})
		assert.Equal(t, http.StatusOK, w.Code, email)
	}

	w := app.do(t, http.MethodPost, "/auth/reset-password", "", gin.H{"token": "nope00", "new_password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/profiles", "/weekly-plans", "/progress", "/checklist", "/favorites", "/export"} {
		w := app.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = app.do(t, http.MethodGet, path, "not.a.token", nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestPublicCatalog(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/nutrition?category=Grain", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode[[]map[string]any](t, w)
	require.Len(t, rows, 2)
	assert.Equal(t, "Quinoa", rows[0]["name"])

	w = app.do(t, http.MethodGet, "/workouts?level=Intermediate", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 2)

	w = app.do(t, http.MethodGet, "/catalog/exercises/push_ups", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Chest", decode[map[string]any](t, w)["primaryMuscle"])

	w = app.do(t, http.MethodGet, "/catalog/exercises/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/catalog/plans?level=Beginner", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[[]map[string]any](t, w))
}

func TestRecognizeWithoutRekognition(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	w := app.do(t, http.MethodPost, "/nutrition/recognize", "", gin.H{"image_base64": "data:image/png;base64,AAAA"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/nutrition/recognize", token, gin.H{"image_base64": "data:image/png;base64,AAAA"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProfileCreateThenRead(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	w := app.do(t, http.MethodGet, "/profiles", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))

	profile := gin.H{"name": "Asha", "age": 28, "gender": "Female", "height": 165, "weight": 60, "goal": "Weight Loss", "activityLevel": "Moderate", "dietType": "Veg"}
	w = app.do(t, http.MethodPost, "/profiles", token, profile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)

	w = app.do(t, http.MethodGet, "/profiles", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	read := decode[map[string]any](t, w)
	assert.Equal(t, created["id"], read["id"])
	assert.Equal(t, "Asha", read["name"])
	assert.EqualValues(t, 165, read["height"])

	w = app.do(t, http.MethodPost, "/profiles", token, profile)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/profiles/metrics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 22.04, decode[map[string]any](t, w)["bmi"], 0.001)

	other := app.login(t, "c@d.com")
	w = app.do(t, http.MethodGet, "/profiles", other, nil)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestWeeklyPlanFlow(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	w := app.do(t, http.MethodPost, "/weekly-plans/generate", token, gin.H{"daysPerWeek": 3, "dietType": "Vegan", "save": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	plan := decode[map[string]any](t, w)
	id := plan["id"].(float64)
	require.NotZero(t, id)
	assert.Len(t, plan["workout"], 3)

	w = app.do(t, http.MethodGet, "/weekly-plans/active", token, nil)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))

	w = app.do(t, http.MethodPost, "/weekly-plans/1/activate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/weekly-plans/active", token, nil)
	assert.Equal(t, id, decode[map[string]any](t, w)["id"])

	other := app.login(t, "c@d.com")
	w = app.do(t, http.MethodDelete, "/weekly-plans/1", other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodDelete, "/weekly-plans/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeeklyPlanKeepsClientBody(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	body := json.RawMessage(`{
		"name": "Browser plan",
		"settings": {"goal": "Weight Loss", "experienceLevel": "Beginner", "daysPerWeek": "4 days", "dietType": "Veg", "calorieTarget": ""},
		"workout": [{"day": "Monday", "focus": "Legs", "muscles": ["Legs"], "exercises": [
			{"id": "squats", "name": "Squats", "primaryMuscle": "Legs", "steps": ["a", "b"], "tips": ["slow"]}
		]}]
	}`)
	w := app.do(t, http.MethodPost, "/weekly-plans", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	id := created["id"].(float64)

	w = app.do(t, http.MethodGet, "/weekly-plans", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	plans := decode[[]map[string]any](t, w)
	require.Len(t, plans, 1)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, sent["settings"], plans[0]["settings"])
	assert.Equal(t, sent["workout"], plans[0]["workout"])
	assert.Equal(t, []any{}, plans[0]["diet"])

	alts, ok := testutil.Catalog(t).Alternatives("squats")
	require.True(t, ok)
	require.NotEmpty(t, alts)
	path := fmt.Sprintf("/weekly-plans/%d", int(id))
	w = app.do(t, http.MethodPost, path+"/swap", token, gin.H{"dayIndex": 0, "exerciseId": "squats", "replacementId": alts[0].ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/weekly-plans", token, nil)
	workout := decode[[]map[string]any](t, w)[0]["workout"].([]any)
	ex := workout[0].(map[string]any)["exercises"].([]any)[0].(map[string]any)
	assert.Equal(t, alts[0].ID, ex["id"])

	w = app.do(t, http.MethodPost, path+"/swap", token, gin.H{"dayIndex": 0, "exerciseId": alts[0].ID, "replacementId": "push_ups"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, path, token, gin.H{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Renamed", decode[map[string]any](t, w)["name"])

	w = app.do(t, http.MethodPost, path+"/review", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decode[map[string]any](t, w)["reply"], "Plan review for Renamed")

	other := app.login(t, "c@d.com")
	w = app.do(t, http.MethodPut, path, other, gin.H{"name": "Mine"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportRejectsDuplicateChecklistDates(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	w := app.do(t, http.MethodPost, "/import", token, gin.H{"checklist": []gin.H{{"date": "2026-01-01"}, {"date": "2026-01-01"}}})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "appears more than once")
}

func TestTelegramLinkRoutes(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	w := app.do(t, http.MethodPut, "/notification-settings", token, gin.H{"telegramChatId": 12345})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, decode[map[string]any](t, w), "telegramChatId")

	w = app.do(t, http.MethodPost, "/notification-settings/telegram-link", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	link := decode[map[string]any](t, w)
	assert.Len(t, link["code"], 8)
	assert.Equal(t, "/start "+link["code"].(string), link["command"])

	w = app.do(t, http.MethodDelete, "/notification-settings/telegram", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChecklistRoutes(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	w := app.do(t, http.MethodPost, "/checklist", token, gin.H{"date": "2026-01-05", "breakfast": true, "water": 8, "workout": true, "sleep": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 100, decode[map[string]any](t, w)["completion"])

	w = app.do(t, http.MethodGet, "/checklist/2026-01-05", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]any](t, w)["breakfast"])

	w = app.do(t, http.MethodGet, "/checklist/2026-01-06", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode[map[string]any](t, w)["completion"])

	w = app.do(t, http.MethodGet, "/checklist/streak", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "streak")

	w = app.do(t, http.MethodGet, "/checklist/yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressExportCSV(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	for _, e := range []gin.H{{"date": "2026-01-01", "weight": 80}, {"date": "2026-01-08", "weight": 83}} {
		w := app.do(t, http.MethodPost, "/progress", token, e)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := app.do(t, http.MethodGet, "/alerts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	alerts := decode[[]map[string]any](t, w)
	require.Len(t, alerts, 1)
	assert.Equal(t, "danger", alerts[0]["type"])

	w = app.do(t, http.MethodGet, "/progress/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment;")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Date,Weight (kg),BMI"))
}

func TestFavoritesAndChat(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	w := app.do(t, http.MethodPost, "/favorites", token, gin.H{"kind": "exercise", "itemId": "squats"})
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodPost, "/favorites", token, gin.H{"kind": "exercise", "itemId": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = app.do(t, http.MethodDelete, "/favorites/exercise/squats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"foods":[],"exercises":[]}`, w.Body.String())

	w = app.do(t, http.MethodPost, "/chat", token, gin.H{"message": "diet please"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["reply"], "Please complete your profile first.")

	w = app.do(t, http.MethodPost, "/chat", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAlertsWebsocket(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "a@b.com")

	srv := httptest.NewServer(app.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/alerts?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return app.hub.ClientCount(1) == 1 }, time.Second, 10*time.Millisecond)

	w := app.do(t, http.MethodPost, "/alerts/test", token, gin.H{"message": "hello"})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame struct {
		Kind  string `json:"kind"`
		Alert struct {
			Message string `json:"message"`
		} `json:"alert"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "alert.created", frame.Kind)
	assert.Equal(t, "hello", frame.Alert.Message)
}
