//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pantry-api/internal/config"
	"pantry-api/internal/handler"
	"pantry-api/internal/middleware"
	"pantry-api/internal/model"
	"pantry-api/internal/password"
	"pantry-api/internal/router"
	"pantry-api/internal/service"
	"pantry-api/internal/token"
)

// The integration suite runs the real router, middleware, handlers and
// services against in-memory repositories, so the full HTTP contract is
// exercised without a PostgreSQL instance.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func (r *fakeUserRepo) Create(_ context.Context, u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, exists := r.users[key]; exists {
		return model.ErrUserAlreadyExists
	}
	r.users[key] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, exists := r.users[strings.ToLower(email)]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.users[strings.ToLower(email)]
	return exists, nil
}

func (r *fakeUserRepo) UpdateByEmail(_ context.Context, email string, upd model.UserUpdate) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(email)
	u, exists := r.users[key]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[key] = u
	return u, nil
}

func (r *fakeUserRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(email)
	if _, exists := r.users[key]; !exists {
		return model.ErrUserNotFound
	}
	delete(r.users, key)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profiles := make([]model.Profile, 0, len(r.users))
	for _, u := range r.users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

type fakeRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (r *fakeRevocationList) Revoke(_ context.Context, tokenString string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.revoked[tokenString]; !exists {
		r.revoked[tokenString] = expiresAt
	}
	return nil
}

func (r *fakeRevocationList) IsRevoked(_ context.Context, tokenString string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, revoked := r.revoked[tokenString]
	return revoked, nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]model.Item
}

func (r *fakeItemRepo) Create(_ context.Context, item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id string) (model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, exists := r.items[id]
	if !exists {
		return model.Item{}, model.ErrItemNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) List(_ context.Context) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	return items, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[item.ID]; !exists {
		return model.ErrItemNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[id]; !exists {
		return model.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[string]model.Store
}

func (r *fakeStoreRepo) Create(_ context.Context, store model.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[store.ID] = store
	return nil
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id string) (model.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, exists := r.stores[id]
	if !exists {
		return model.Store{}, model.ErrStoreNotFound
	}
	return store, nil
}

func (r *fakeStoreRepo) List(_ context.Context) ([]model.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stores := make([]model.Store, 0, len(r.stores))
	for _, store := range r.stores {
		stores = append(stores, store)
	}
	return stores, nil
}

func (r *fakeStoreRepo) Update(_ context.Context, store model.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.stores[store.ID]; !exists {
		return model.ErrStoreNotFound
	}
	r.stores[store.ID] = store
	return nil
}

func (r *fakeStoreRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.stores[id]; !exists {
		return model.ErrStoreNotFound
	}
	delete(r.stores, id)
	return nil
}

type fakeRecipeRepo struct {
	mu      sync.Mutex
	recipes map[string]model.Recipe
}

func (r *fakeRecipeRepo) Create(_ context.Context, recipe model.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) FindByID(_ context.Context, id string) (model.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	recipe, exists := r.recipes[id]
	if !exists {
		return model.Recipe{}, model.ErrRecipeNotFound
	}
	return recipe, nil
}

func (r *fakeRecipeRepo) List(_ context.Context) ([]model.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	recipes := make([]model.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (r *fakeRecipeRepo) Update(_ context.Context, recipe model.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.recipes[recipe.ID]; !exists {
		return model.ErrRecipeNotFound
	}
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.recipes[id]; !exists {
		return model.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}

type testEnv struct {
	handler http.Handler
	items   *fakeItemRepo
	stores  *fakeStoreRepo
	recipes *fakeRecipeRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &fakeUserRepo{users: map[string]model.User{}}
	revoked := &fakeRevocationList{revoked: map[string]time.Time{}}
	items := &fakeItemRepo{items: map[string]model.Item{}}
	stores := &fakeStoreRepo{stores: map[string]model.Store{}}
	recipes := &fakeRecipeRepo{recipes: map[string]model.Recipe{}}

	hasher := password.NewHasher(4)
	tokens := token.NewManager("integration-secret", time.Hour)

	authService, err := service.NewAuthService(users, revoked, hasher, tokens)
	require.NoError(t, err)
	itemService := service.NewItemService(items)
	storeService := service.NewStoreService(stores)
	recipeService := service.NewRecipeService(recipes)

	authMiddleware := middleware.NewAuthMiddleware(authService, authService)

	cfg := &config.Config{
		RequestTimeout: 10 * time.Second,
		CORSOrigins:    []string{"*"},
	}

	h := router.New(cfg, authMiddleware, router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		User:   handler.NewUserHandler(authService),
		Item:   handler.NewItemHandler(itemService),
		Store:  handler.NewStoreHandler(storeService),
		Recipe: handler.NewRecipeHandler(recipeService),
	})

	return &testEnv{handler: h, items: items, stores: stores, recipes: recipes}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		Violations []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"violations"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var parsed apiResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed),
			"response body is not a valid API envelope: %s", rec.Body.String())
	}
	return rec, parsed
}

func (e *testEnv) register(t *testing.T, email, pass, role string) {
	t.Helper()

	body := map[string]string{"email": email, "password": pass, "name": "Test User"}
	if role != "" {
		body["role"] = role
	}
	rec, _ := e.do(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, "register failed: %s", rec.Body.String())
}

func (e *testEnv) login(t *testing.T, email, pass string) string {
	t.Helper()

	rec, resp := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": pass,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func (e *testEnv) createStore(t *testing.T, bearer string) string {
	t.Helper()

	rec, resp := e.do(t, http.MethodPost, "/api/v1/stores", bearer, map[string]any{
		"name":     "Corner Shop",
		"location": "Main St 1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "create store failed: %s", rec.Body.String())

	var data struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.ID)
	return data.ID
}

func validItemBody(storeID string) map[string]any {
	return map[string]any{
		"name":             "Milk",
		"category":         "Dairy",
		"quantity":         2,
		"unit":             "liters",
		"storage_location": "Fridge",
		"price":            3.5,
		"barcodes":         []any{},
		"store_id":         storeID,
	}
}
