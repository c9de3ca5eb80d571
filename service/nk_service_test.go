package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nk-catalog/config"
	"nk-catalog/models"
)

func newNKTestService(t *testing.T, handler http.HandlerFunc) *NKService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.URL.Query().Get("apikey"))
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return NewNKService(config.NKConfig{BaseURL: server.URL, APIKey: "key-1", Timeout: 5 * time.Second})
}

func TestNKService_GetCategoriesByTnved_GroupFirst(t *testing.T) {
	var requested []string
	svc := newNKTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/categories", r.URL.Path)
		requested = append(requested, r.URL.Query().Get("tnved"))
		_, _ = w.Write([]byte(`{"result":[{"cat_id":30933,"cat_name":"Одежда"}]}`))
	})

	cats, err := svc.GetCategoriesByTnved(context.Background(), "6109100000")
	require.NoError(t, err)

	assert.Equal(t, []string{"6109"}, requested)
	require.Len(t, cats, 1)
	assert.Equal(t, 30933, cats[0].CatID)
	assert.True(t, cats[0].Active())
}

func TestNKService_GetCategoriesByTnved_FallsBackToFullCode(t *testing.T) {
	var requested []string
	svc := newNKTestService(t, func(w http.ResponseWriter, r *http.Request) {
		tnved := r.URL.Query().Get("tnved")
		requested = append(requested, tnved)
		if tnved == "6109" {
			_, _ = w.Write([]byte(`{"result":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":[{"cat_id":1,"category_active":false}]}`))
	})

	cats, err := svc.GetCategoriesByTnved(context.Background(), "6109100000")
	require.NoError(t, err)

	assert.Equal(t, []string{"6109", "6109100000"}, requested)
	require.Len(t, cats, 1)
	assert.False(t, cats[0].Active())
}

func TestNKService_GetCategoriesByTnved_GroupErrorFallsBackToFullCode(t *testing.T) {
	var requested []string
	svc := newNKTestService(t, func(w http.ResponseWriter, r *http.Request) {
		tnved := r.URL.Query().Get("tnved")
		requested = append(requested, tnved)
		if tnved == "6109" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"result":[{"cat_id":30717}]}`))
	})

	cats, err := svc.GetCategoriesByTnved(context.Background(), "6109100000")
	require.NoError(t, err)

	assert.Equal(t, []string{"6109", "6109100000"}, requested)
	require.Len(t, cats, 1)
	assert.Equal(t, 30717, cats[0].CatID)
}

func TestNKService_GetAttributes(t *testing.T) {
	svc := newNKTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/attributes", r.URL.Path)
		assert.Equal(t, "30933", r.URL.Query().Get("cat_id"))
		assert.Equal(t, AttrTypeMandatory, r.URL.Query().Get("attr_type"))
		_, _ = w.Write([]byte(`{"result":[{"attr_id":36,"attr_name":"Цвет"}]}`))
	})

	attrs, err := svc.GetAttributes(context.Background(), 30933, AttrTypeMandatory)
	require.NoError(t, err)
	assert.Equal(t, []models.NKAttribute{{AttrID: 36, AttrName: "Цвет"}}, attrs)
}

func TestNKService_GetPreset(t *testing.T) {
	svc := newNKTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/presets/36", r.URL.Path)
		assert.Equal(t, "30933", r.URL.Query().Get("cat_id"))
		_, _ = w.Write([]byte(`{"result":["КРАСНЫЙ","СИНИЙ"]}`))
	})

	values, err := svc.GetPreset(context.Background(), svc.baseURL+"/v3/presets/36?cat_id=30933")
	require.NoError(t, err)
	assert.Equal(t, []string{"КРАСНЫЙ", "СИНИЙ"}, values)

	values, err = svc.GetPreset(context.Background(), "/v3/presets/36?cat_id=30933")
	require.NoError(t, err)
	assert.Len(t, values, 2)
}

func TestNKService_SendCard(t *testing.T) {
	card := models.NKCard{IsTechGTIN: true, Tnved: "6109", GoodName: "Футболка", Categories: []int{30933}}

	svc := newNKTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/feed", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var got models.NKCard
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, card.GoodName, got.GoodName)

		_, _ = w.Write([]byte(`{"result":{"feed_id":12345}}`))
	})

	result, err := svc.SendCard(context.Background(), card)
	require.NoError(t, err)
	assert.Equal(t, "12345", result.FeedID.String())
}

func TestNKService_SendCard_Rejected(t *testing.T) {
	svc := newNKTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad card"}`))
	})

	_, err := svc.SendCard(context.Background(), models.NKCard{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, `{"error":"bad card"}`, apiErr.Body)
	assert.Equal(t, nkService, apiErr.Service)
}

func TestNKService_CheckFeedStatus(t *testing.T) {
	svc := newNKTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/feed-status", r.URL.Path)
		assert.Equal(t, "feed-9", r.URL.Query().Get("feed_id"))
		_, _ = w.Write([]byte(`{"result":{"status":"Processed"}}`))
	})

	raw, err := svc.CheckFeedStatus(context.Background(), "feed-9")
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":{"status":"Processed"}}`, string(raw))
}
