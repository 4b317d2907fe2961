package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"table-service-api/events"
	"table-service-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseBillingEndToEnd(t *testing.T) {
	e := newTestEnv(t)
	session, items := openSessionWithMenu(t, e, 4, false)
	require.NoError(t, e.db.Create(&models.ExtraCharge{
		Name: "Service", Price: 20, ChargeType: models.ChargePerPerson, Active: true,
	}).Error)

	w := e.do(t, "POST", "/api/orders", map[string]interface{}{
		"table_session_id": session.ID,
		"items": []map[string]interface{}{
			{"menu_item_id": items[0].ID, "qty": 3},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, "POST", "/api/admin/billing/close", map[string]interface{}{
		"session_id": session.ID, "payment_method": "CASH",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	billing := body["billing"].(map[string]interface{})
	assert.Equal(t, 150.0, billing["subtotal"])
	assert.Equal(t, 80.0, billing["extra_charge"])
	assert.Equal(t, 230.0, billing["grand_total"])

	assert.Equal(t, []events.Topic{events.TopicOrderNew, events.TopicBillingClosed}, e.bus.topics())

	var logged models.ActionLog
	require.NoError(t, e.db.Where("action = ?", "CLOSE_BILLING").First(&logged).Error)
	assert.Contains(t, logged.Detail, fmt.Sprintf(`"session_id":%d`, session.ID))

	// the summary is retrievable by session
	w = e.do(t, "GET", fmt.Sprintf("/api/admin/billing/session/%d", session.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCloseBillingRequiresActiveSession(t *testing.T) {
	e := newTestEnv(t)
	session, _ := openSessionWithMenu(t, e, 2, false)
	require.NoError(t, e.db.Model(session).Update("status", models.SessionClosed).Error)

	w := e.do(t, "POST", "/api/admin/billing/close", map[string]interface{}{
		"session_id": session.ID, "payment_method": "CASH",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SessionInactive", errCode(t, w))

	// no event for a failed close
	assert.Empty(t, e.bus.topics())
}

func TestCloseBillingValidation(t *testing.T) {
	e := newTestEnv(t)
	session, _ := openSessionWithMenu(t, e, 2, false)

	w := e.do(t, "POST", "/api/admin/billing/close", map[string]interface{}{
		"session_id": session.ID, "payment_method": "BARTER",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
