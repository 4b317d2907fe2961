package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"table-service-api/config"
	"table-service-api/events"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingBus captures published events so tests can assert the exact
// sequence a command produced.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(ev events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

func (b *recordingBus) Subscribe() (<-chan events.Event, func()) {
	ch := make(chan events.Event)
	return ch, func() {}
}

func (b *recordingBus) topics() []events.Topic {
	b.mu.Lock()
	defer b.mu.Unlock()
	topics := make([]events.Topic, len(b.events))
	for i, ev := range b.events {
		topics[i] = ev.Topic
	}
	return topics
}

type testEnv struct {
	db     *gorm.DB
	bus    *recordingBus
	router *gin.Engine
	h      *Handler
}

// newTestEnv wires a fresh database and a recording bus behind the
// real routes, minus the auth middleware.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	bus := &recordingBus{}
	h := New(db, bus)

	r := gin.New()
	r.POST("/api/admin/sessions", h.OpenSession)
	r.POST("/api/admin/sessions/:id/cancel", h.CancelSession)
	r.GET("/api/session/:id", h.GetSession)
	r.GET("/api/session/:id/orders", h.GetSessionOrders)
	r.GET("/api/sessions/active", h.ListActiveSessions)
	r.POST("/api/orders", h.CreateOrder)
	r.PATCH("/api/items/:id/status", h.UpdateItemStatus)
	r.GET("/api/kitchen/orders", h.GetKitchenOrders)
	r.PATCH("/api/kitchen/menu-items/:id/unavailable", h.MarkMenuItemUnavailable)
	r.POST("/api/admin/billing/close", h.CloseBilling)
	r.GET("/api/admin/billing/session/:sessionId", h.GetBilling)
	r.GET("/api/menu", h.GetMenu)

	return &testEnv{db: db, bus: bus, router: r, h: h}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	code, _ := body["code"].(string)
	return code
}
