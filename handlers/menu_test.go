package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMenuFiltersBySessionMode(t *testing.T) {
	e := newTestEnv(t)
	buffetSession, _ := openSessionWithMenu(t, e, 2, true)

	// a la carte view (no session): buffet-only item hidden
	w := e.do(t, "GET", "/api/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "A_LA_CARTE", body["session_mode"])
	categories := body["categories"].([]interface{})
	require.Len(t, categories, 1)
	items := categories[0].(map[string]interface{})["items"].([]interface{})
	names := map[string]map[string]interface{}{}
	for _, it := range items {
		m := it.(map[string]interface{})
		names[m["name"].(string)] = m
	}
	assert.Contains(t, names, "Fried Rice")
	assert.NotContains(t, names, "Pork Belly")

	// buffet view: buffet item listed at zero effective price
	w = e.do(t, "GET", fmt.Sprintf("/api/menu?sessionId=%d", buffetSession.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "BUFFET", body["session_mode"])
	items = body["categories"].([]interface{})[0].(map[string]interface{})["items"].([]interface{})
	names = map[string]map[string]interface{}{}
	for _, it := range items {
		m := it.(map[string]interface{})
		names[m["name"].(string)] = m
	}
	require.Contains(t, names, "Pork Belly")
	assert.Equal(t, "BUFFET_INCLUDED", names["Pork Belly"]["item_type"])
	assert.Equal(t, 0.0, names["Pork Belly"]["effective_price"])
	assert.Equal(t, "A_LA_CARTE", names["Fried Rice"]["item_type"])
	assert.Equal(t, 50.0, names["Fried Rice"]["effective_price"])
}

func TestGetMenuKeepsSoldOutItemsVisible(t *testing.T) {
	e := newTestEnv(t)
	openSessionWithMenu(t, e, 2, false)

	w := e.do(t, "GET", "/api/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	items := body["categories"].([]interface{})[0].(map[string]interface{})["items"].([]interface{})

	var foundSoldOut bool
	for _, it := range items {
		m := it.(map[string]interface{})
		if m["name"] == "Tom Yum" {
			foundSoldOut = true
			assert.Equal(t, false, m["is_available"])
		}
	}
	assert.True(t, foundSoldOut, "sold-out items stay listed; they are rejected at submission time")
}
