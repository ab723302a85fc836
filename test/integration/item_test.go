//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemValidationReportsAllViolations(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user@x.com", "secret1", "")
	tok := env.login(t, "user@x.com", "secret1")
	storeID := env.createStore(t, tok)

	body := validItemBody(storeID)
	delete(body, "unit")

	rec, resp := env.do(t, http.MethodPost, "/api/v1/items/", tok, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	fields := make([]string, 0, len(resp.Error.Violations))
	for _, v := range resp.Error.Violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "unit")
	assert.Equal(t, 0, env.items.count(), "rejected write must not persist anything")

	// Several violations at once are all reported.
	body = validItemBody(storeID)
	body["quantity"] = 0
	body["category"] = "Electronics"
	rec, resp = env.do(t, http.MethodPost, "/api/v1/items/", tok, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.GreaterOrEqual(t, len(resp.Error.Violations), 2)
	assert.Equal(t, 0, env.items.count())
}

func TestCreateItemRejectsUnknownFields(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user@x.com", "secret1", "")
	tok := env.login(t, "user@x.com", "secret1")
	storeID := env.createStore(t, tok)

	body := validItemBody(storeID)
	body["color"] = "blue"

	rec, resp := env.do(t, http.MethodPost, "/api/v1/items/", tok, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Violations, 1)
	assert.Equal(t, "color", resp.Error.Violations[0].Field)
}

func TestItemCRUDLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user@x.com", "secret1", "")
	tok := env.login(t, "user@x.com", "secret1")
	storeID := env.createStore(t, tok)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/items/", tok, validItemBody(storeID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Milk", created.Name)

	rec, resp = env.do(t, http.MethodGet, "/api/v1/items/"+created.ID, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Partial update merges with the stored document and revalidates.
	rec, resp = env.do(t, http.MethodPut, "/api/v1/items/"+created.ID, tok, map[string]any{
		"quantity": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
		Unit     string `json:"unit"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "liters", updated.Unit)

	// An update that would break the document is rejected whole.
	rec, resp = env.do(t, http.MethodPut, "/api/v1/items/"+created.ID, tok, map[string]any{
		"quantity": -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(t, http.MethodDelete, "/api/v1/items/"+created.ID, tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = env.do(t, http.MethodGet, "/api/v1/items/"+created.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestCreateItemWithBarcodes(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user@x.com", "secret1", "")
	tok := env.login(t, "user@x.com", "secret1")
	storeID := env.createStore(t, tok)

	body := validItemBody(storeID)
	body["barcodes"] = []map[string]any{
		{"code": "4006381333931", "store_id": storeID},
	}

	rec, _ := env.do(t, http.MethodPost, "/api/v1/items/", tok, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// A malformed nested element is reported with its array path.
	body = validItemBody(storeID)
	body["barcodes"] = []map[string]any{
		{"code": "4006381333931", "store_id": storeID},
		{"store_id": storeID},
	}
	rec, resp := env.do(t, http.MethodPost, "/api/v1/items/", tok, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Violations, 1)
	assert.Equal(t, "barcodes[1].code", resp.Error.Violations[0].Field)
}

func TestRecipeValidation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "user@x.com", "secret1", "")
	tok := env.login(t, "user@x.com", "secret1")

	breadID := "0d4a9f8e-4a56-4df3-9d6a-0c8f6d2f3a41"
	rec, resp := env.do(t, http.MethodPost, "/api/v1/recipes/", tok, map[string]any{
		"name":       "Toast",
		"servings":   2,
		"prep_time":  5,
		"cook_time":  5,
		"difficulty": "Impossible",
		"ingredients": []map[string]any{
			{"item_id": breadID, "quantity": 2, "unit": "pcs"},
		},
		"steps": []map[string]any{
			{"step_number": 1, "description": "Toast the bread."},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Violations, 1)
	assert.Equal(t, "difficulty", resp.Error.Violations[0].Field)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/recipes/", tok, map[string]any{
		"name":       "Toast",
		"servings":   2,
		"prep_time":  5,
		"cook_time":  5,
		"difficulty": "Easy",
		"ingredients": []map[string]any{
			{"item_id": breadID, "quantity": 2, "unit": "pcs"},
		},
		"steps": []map[string]any{
			{"step_number": 1, "description": "Toast the bread."},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
