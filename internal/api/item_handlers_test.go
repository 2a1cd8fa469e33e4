package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
)

func TestAddItem(t *testing.T) {
	ts := setupTestServer(t)

	list := ts.createTestList(t, "Friday bazaar")

	resp := ts.api.Post("/api/v1/lists/"+list.ID+"/items", map[string]any{
		"name":     "Onions",
		"quantity": "2",
		"unit":     "kg",
		"price":    120.0,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[AddItemResponse](t, resp.Body.Bytes())
	assert.NotEmpty(t, envelope.Data.ItemID)
	require.Len(t, envelope.Data.List.Items, 1)
	assert.Equal(t, envelope.Data.ItemID, envelope.Data.List.Items[0].ID)
	assert.Equal(t, "Onions", envelope.Data.List.Items[0].Name)
	assert.Equal(t, domain.UnitKg, envelope.Data.List.Items[0].Unit)
}

func TestAddItem_ListNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/lists/list-missing/items", map[string]any{
		"name": "Onions",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAddItem_NegativePrice(t *testing.T) {
	ts := setupTestServer(t)

	list := ts.createTestList(t, "Friday bazaar")

	resp := ts.api.Post("/api/v1/lists/"+list.ID+"/items", map[string]any{
		"name":  "Onions",
		"price": -5.0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateItem(t *testing.T) {
	ts := setupTestServer(t)

	list := ts.createTestList(t, "Friday bazaar",
		map[string]any{"name": "Onions", "price": 120.0})
	itemID := list.Items[0].ID

	resp := ts.api.Patch("/api/v1/lists/"+list.ID+"/items/"+itemID, map[string]any{
		"name":  "Red onions",
		"price": 140.0,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[domain.BazaarList](t, resp.Body.Bytes())
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Red onions", envelope.Data.Items[0].Name)
	assert.InDelta(t, 140.0, envelope.Data.Items[0].Price, 0.001)
}

func TestUpdateItem_UnknownItemIsNoOp(t *testing.T) {
	ts := setupTestServer(t)

	list := ts.createTestList(t, "Friday bazaar",
		map[string]any{"name": "Onions"})

	resp := ts.api.Patch("/api/v1/lists/"+list.ID+"/items/item-missing", map[string]any{
		"name": "Ghost",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[domain.BazaarList](t, resp.Body.Bytes())
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Onions", envelope.Data.Items[0].Name)
	assert.Equal(t, list.UpdatedAt, envelope.Data.UpdatedAt, "a no-op must not touch the list")
}

func TestDeleteItem_RepacksOrder(t *testing.T) {
	ts := setupTestServer(t)

	list := ts.createTestList(t, "Friday bazaar",
		map[string]any{"name": "Onions"},
		map[string]any{"name": "Garlic"},
		map[string]any{"name": "Ginger"},
	)

	resp := ts.api.Delete("/api/v1/lists/" + list.ID + "/items/" + list.Items[0].ID)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[domain.BazaarList](t, resp.Body.Bytes())
	require.Len(t, envelope.Data.Items, 2)
	assert.Equal(t, "Garlic", envelope.Data.Items[0].Name)
	assert.Equal(t, 0, envelope.Data.Items[0].Order)
	assert.Equal(t, 1, envelope.Data.Items[1].Order)
}

func TestToggleItemCheck(t *testing.T) {
	ts := setupTestServer(t)

	list := ts.createTestList(t, "Friday bazaar",
		map[string]any{"name": "Onions"})
	itemID := list.Items[0].ID

	resp := ts.api.Post("/api/v1/lists/" + list.ID + "/items/" + itemID + "/check")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[domain.BazaarList](t, resp.Body.Bytes())
	assert.True(t, envelope.Data.Items[0].IsChecked)

	resp = ts.api.Post("/api/v1/lists/" + list.ID + "/items/" + itemID + "/check")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope = decodeEnvelope[domain.BazaarList](t, resp.Body.Bytes())
	assert.False(t, envelope.Data.Items[0].IsChecked)
}

func TestReorderItems_UnknownIDsIgnored(t *testing.T) {
	ts := setupTestServer(t)

	list := ts.createTestList(t, "Friday bazaar",
		map[string]any{"name": "Onions"},
		map[string]any{"name": "Garlic"},
	)

	resp := ts.api.Post("/api/v1/lists/"+list.ID+"/items/reorder", map[string]any{
		"item_ids": []string{list.Items[1].ID, "item-missing", list.Items[0].ID},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[domain.BazaarList](t, resp.Body.Bytes())
	require.Len(t, envelope.Data.Items, 2)
	assert.Equal(t, "Garlic", envelope.Data.Items[0].Name)
	assert.Equal(t, "Onions", envelope.Data.Items[1].Name)
}

func TestClearCheckedItems(t *testing.T) {
	ts := setupTestServer(t)

	list := ts.createTestList(t, "Friday bazaar",
		map[string]any{"name": "Onions"},
		map[string]any{"name": "Garlic"},
		map[string]any{"name": "Ginger"},
	)

	for _, itemID := range []string{list.Items[0].ID, list.Items[2].ID} {
		resp := ts.api.Post("/api/v1/lists/" + list.ID + "/items/" + itemID + "/check")
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Post("/api/v1/lists/" + list.ID + "/items/clear-checked")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[ClearCheckedResponse](t, resp.Body.Bytes())
	assert.Equal(t, 2, envelope.Data.Removed)
	require.Len(t, envelope.Data.List.Items, 1)
	assert.Equal(t, "Garlic", envelope.Data.List.Items[0].Name)
	assert.Equal(t, 0, envelope.Data.List.Items[0].Order)
}

func TestClearCheckedItems_NothingChecked(t *testing.T) {
	ts := setupTestServer(t)

	list := ts.createTestList(t, "Friday bazaar",
		map[string]any{"name": "Onions"})

	resp := ts.api.Post("/api/v1/lists/" + list.ID + "/items/clear-checked")
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[ClearCheckedResponse](t, resp.Body.Bytes())
	assert.Equal(t, 0, envelope.Data.Removed)
	assert.Equal(t, list.UpdatedAt, envelope.Data.List.UpdatedAt)
}
