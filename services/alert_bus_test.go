package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	fail   bool
	closed bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.frames = append(c.frames, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

type pushed struct {
	userID      uint
	title, body string
	data        map[string]string
}

type fakePush struct {
	mu   sync.Mutex
	sent []pushed
}

func (f *fakePush) PushToUser(_ context.Context, userID uint, title, body string, data map[string]string) {
	f.mu.Lock()
	f.sent = append(f.sent, pushed{userID, title, body, data})
	f.mu.Unlock()
}

type fakeTelegram struct {
	mu   sync.Mutex
	sent map[int64][]string
}

func (f *fakeTelegram) SendText(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sent == nil {
		f.sent = map[int64][]string{}
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func TestHubBroadcastDropsFailingClients(t *testing.T) {
	hub := NewRealtimeHub()
	good := &fakeConn{}
	bad := &fakeConn{fail: true}
	other := &fakeConn{}
	hub.Register(&WSClient{UserID: 1, Conn: good})
	hub.Register(&WSClient{UserID: 1, Conn: bad})
	hub.Register(&WSClient{UserID: 2, Conn: other})
	require.Equal(t, 2, hub.ClientCount(1))

	hub.Broadcast(1, map[string]string{"kind": "ping"})

	assert.Equal(t, 1, hub.ClientCount(1))
	assert.True(t, bad.closed)
	require.Len(t, good.frames, 1)
	assert.JSONEq(t, `{"kind":"ping"}`, string(good.frames[0]))
	assert.Empty(t, other.frames)
}

func TestAlertBusFansOut(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	uid := createUser(t, db, "a@b.com")
	require.NoError(t, db.Create(&models.NotificationSetting{UserID: uid, TelegramChatID: 42}).Error)

	hub := NewRealtimeHub()
	conn := &fakeConn{}
	hub.Register(&WSClient{UserID: uid, Conn: conn})
	push := &fakePush{}
	tg := &fakeTelegram{}
	bus := NewAlertBus(db, hub, push, tg)

	a, err := bus.Emit(ctx, uid, "reminder", workoutReminderText)
	require.NoError(t, err)
	require.NotZero(t, a.ID)

	require.Len(t, conn.frames, 1)
	var frame struct {
		Kind  string       `json:"kind"`
		Alert models.Alert `json:"alert"`
	}
	require.NoError(t, json.Unmarshal(conn.frames[0], &frame))
	assert.Equal(t, "alert.created", frame.Kind)
	assert.Equal(t, workoutReminderText, frame.Alert.Message)

	require.Len(t, push.sent, 1)
	assert.Equal(t, "Reminder", push.sent[0].title)
	assert.Equal(t, "reminder", push.sent[0].data["type"])

	assert.Equal(t, []string{workoutReminderText}, tg.sent[42])
}

func TestAlertBusWithoutSinks(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	uid := createUser(t, db, "a@b.com")
	bus := NewAlertBus(db, nil, nil, nil)

	for _, msg := range []string{"one", "two", "three"} {
		_, err := bus.Emit(ctx, uid, "warning", msg)
		require.NoError(t, err)
	}

	recent, err := bus.Recent(ctx, uid, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Message)
	assert.Equal(t, "two", recent[1].Message)
}

func TestAlertTitle(t *testing.T) {
	assert.Equal(t, "Reminder", alertTitle("reminder"))
	assert.Equal(t, "Health Alert", alertTitle("danger"))
	assert.Equal(t, "New Alert", alertTitle("warning"))
}

type fakeLinker struct {
	codes  map[string]uint
	linked map[int64]uint
}

func (f *fakeLinker) LinkTelegramChat(_ context.Context, code string, chatID int64) error {
	uid, ok := f.codes[code]
	if !ok {
		return ErrNotFound
	}
	f.linked[chatID] = uid
	return nil
}

func TestTelegramCommandReplies(t *testing.T) {
	linker := &fakeLinker{codes: map[string]uint{"abc12345": 7}, linked: map[int64]uint{}}
	tg := &TelegramNotifier{Linker: linker}
	ctx := context.Background()

	assert.Equal(t, startHelp, tg.reply(ctx, "start", "", 1))
	assert.Contains(t, tg.reply(ctx, "start", "nope", 1), "unknown or expired")
	assert.Empty(t, linker.linked)

	assert.Contains(t, tg.reply(ctx, "Start", " abc12345 ", 42), "Linked")
	assert.Equal(t, uint(7), linker.linked[42])

	assert.Equal(t, "This chat id is 42.", tg.reply(ctx, "id", "", 42))
	assert.Empty(t, tg.reply(ctx, "help", "", 42))
	assert.Equal(t, startHelp, (&TelegramNotifier{}).reply(ctx, "start", "abc12345", 1))
}
