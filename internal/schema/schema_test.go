package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItemDoc() map[string]any {
	return map[string]any{
		"name":             "Milk",
		"category":         "Dairy",
		"quantity":         float64(2),
		"unit":             "liters",
		"storage_location": "Fridge",
		"price":            3.49,
		"barcodes": []any{
			map[string]any{"code": "4006381333931"},
		},
		"store_id": "7b7e3a30-94f1-4cf8-9c35-2d9a4fc4a6b1",
	}
}

func violatedFields(t *testing.T, err error) map[string]string {
	t.Helper()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := map[string]string{}
	for _, v := range verr.Violations {
		fields[v.Field] = v.Reason
	}
	return fields
}

func TestValidItemPasses(t *testing.T) {
	require.NoError(t, Validate(ItemDocument, validItemDoc()))
}

func TestItemMissingUnit(t *testing.T) {
	doc := validItemDoc()
	delete(doc, "unit")

	err := Validate(ItemDocument, doc)
	require.Error(t, err)
	fields := violatedFields(t, err)
	assert.Contains(t, fields, "unit")
}

func TestItemReportsEveryViolation(t *testing.T) {
	doc := validItemDoc()
	delete(doc, "unit")
	doc["category"] = "Electronics"
	doc["quantity"] = float64(0)

	err := Validate(ItemDocument, doc)
	require.Error(t, err)

	fields := violatedFields(t, err)
	assert.Contains(t, fields, "unit")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "quantity")
}

func TestItemQuantityMustBeInteger(t *testing.T) {
	doc := validItemDoc()
	doc["quantity"] = 1.5

	err := Validate(ItemDocument, doc)
	require.Error(t, err)
	assert.Contains(t, violatedFields(t, err), "quantity")
}

func TestItemRejectsUnknownFieldsOnClosedSchema(t *testing.T) {
	doc := validItemDoc()
	doc["color"] = "white"

	err := Validate(ItemDocument, doc)
	require.Error(t, err)
	fields := violatedFields(t, err)
	assert.Equal(t, "field is not allowed by the schema", fields["color"])
}

func TestItemNestedBarcodeShape(t *testing.T) {
	doc := validItemDoc()
	doc["barcodes"] = []any{
		map[string]any{"code": "123"},
		map[string]any{"store_id": "not-a-uuid"},
	}

	err := Validate(ItemDocument, doc)
	require.Error(t, err)

	fields := violatedFields(t, err)
	assert.Contains(t, fields, "barcodes[1].code")
	assert.Contains(t, fields, "barcodes[1].store_id")
	assert.NotContains(t, fields, "barcodes[0].code")
}

func TestIdentityEmailPattern(t *testing.T) {
	doc := map[string]any{
		"email":    "not-an-email",
		"password": "secret1",
		"name":     "A",
		"role":     "user",
	}

	err := Validate(Identity, doc)
	require.Error(t, err)
	assert.Contains(t, violatedFields(t, err), "email")
}

func TestIdentityRoleEnum(t *testing.T) {
	doc := map[string]any{
		"email":    "a@x.com",
		"password": "secret1",
		"name":     "A",
		"role":     "root",
	}

	err := Validate(Identity, doc)
	require.Error(t, err)
	assert.Contains(t, violatedFields(t, err), "role")
}

func TestIdentityShortPassword(t *testing.T) {
	doc := map[string]any{
		"email":    "a@x.com",
		"password": "short",
		"name":     "A",
		"role":     "user",
	}

	err := Validate(Identity, doc)
	require.Error(t, err)
	assert.Contains(t, violatedFields(t, err), "password")
}

func TestValidatePartialSkipsRequiredPresence(t *testing.T) {
	// Only the mutated field set is supplied on update.
	require.NoError(t, ValidatePartial(ItemDocument, map[string]any{"quantity": float64(5)}))

	err := ValidatePartial(ItemDocument, map[string]any{"quantity": float64(0)})
	require.Error(t, err)
	assert.Contains(t, violatedFields(t, err), "quantity")
}

func TestStoreSchema(t *testing.T) {
	require.NoError(t, Validate(StoreDocument, map[string]any{
		"name":     "Corner Shop",
		"location": "Main St 1",
	}))

	err := Validate(StoreDocument, map[string]any{"name": "Corner Shop"})
	require.Error(t, err)
	assert.Contains(t, violatedFields(t, err), "location")
}

func TestRecipeSchema(t *testing.T) {
	doc := map[string]any{
		"name":       "Pancakes",
		"servings":   float64(4),
		"prep_time":  float64(10),
		"cook_time":  float64(15),
		"difficulty": "Easy",
		"ingredients": []any{
			map[string]any{
				"item_id":  "7b7e3a30-94f1-4cf8-9c35-2d9a4fc4a6b1",
				"quantity": 0.5,
				"unit":     "liters",
			},
		},
		"steps": []any{
			map[string]any{"step_number": float64(1), "description": "Mix everything."},
		},
	}
	require.NoError(t, Validate(RecipeDocument, doc))

	doc["difficulty"] = "Impossible"
	doc["steps"] = []any{map[string]any{"step_number": float64(0)}}

	err := Validate(RecipeDocument, doc)
	require.Error(t, err)
	fields := violatedFields(t, err)
	assert.Contains(t, fields, "difficulty")
	assert.Contains(t, fields, "steps[0].step_number")
	assert.Contains(t, fields, "steps[0].description")
}

func TestTokenBlacklistSchema(t *testing.T) {
	require.NoError(t, Validate(TokenBlacklist, map[string]any{
		"token":      "opaque-token-string",
		"expires_at": "2026-09-02T12:00:00Z",
	}))

	err := Validate(TokenBlacklist, map[string]any{"token": ""})
	require.Error(t, err)
	fields := violatedFields(t, err)
	assert.Contains(t, fields, "token")
	assert.Contains(t, fields, "expires_at")
}

func TestLookupUnknownSchema(t *testing.T) {
	_, ok := Lookup("no-such-schema")
	assert.False(t, ok)
}
