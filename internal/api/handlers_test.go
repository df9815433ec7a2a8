// Forkful - Recipe Sharing and Discovery Platform
// Copyright 2026 Forkful Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/forkful/forkful

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/forkful/forkful/internal/cache"
	"github.com/forkful/forkful/internal/config"
	"github.com/forkful/forkful/internal/database"
	"github.com/forkful/forkful/internal/discovery"
	"github.com/forkful/forkful/internal/models"
)

var (
	errNotFoundForTest  = database.ErrNotFound
	errDuplicateForTest = database.ErrDuplicate
	errBoom             = errors.New("boom")
)

// fakeStore is an in-memory RecipeStore and UserStore for handler tests.
type fakeStore struct {
	recipes map[string]models.Recipe
	users   map[string]models.User
	likes   map[string]map[string]bool // recipeID -> userID -> liked
	favs    map[string]map[string]bool

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		recipes: map[string]models.Recipe{},
		users:   map[string]models.User{},
		likes:   map[string]map[string]bool{},
		favs:    map[string]map[string]bool{},
	}
}

func (s *fakeStore) sorted(descending bool, field discovery.SortField) []models.Recipe {
	out := make([]models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var less bool
		switch field {
		case discovery.SortTitle:
			less = a.Title < b.Title
		case discovery.SortLikes:
			less = a.LikeCount < b.LikeCount
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if descending {
			return !less
		}
		return less
	})
	return out
}

func matches(f discovery.FilterSpec, r models.Recipe) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.AuthorID != "" && r.AuthorID != f.AuthorID {
		return false
	}
	if f.SearchText != "" {
		needle := strings.ToLower(f.SearchText)
		if !strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			return false
		}
	}
	return true
}

func (s *fakeStore) CountAndFetch(ctx context.Context, f discovery.FilterSpec, field discovery.SortField, descending bool, skip, limit int) ([]models.Recipe, int, error) {
	if s.failWith != nil {
		return nil, 0, s.failWith
	}
	filtered := []models.Recipe{}
	for _, r := range s.sorted(descending, field) {
		if matches(f, r) {
			filtered = append(filtered, r)
		}
	}
	total := len(filtered)
	if skip >= total {
		return []models.Recipe{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return filtered[skip:end], total, nil
}

func (s *fakeStore) FetchRecentWithLikeCounts(ctx context.Context, since time.Time) ([]models.RecipeActivity, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := []models.RecipeActivity{}
	for _, r := range s.recipes {
		if !r.CreatedAt.Before(since) {
			out = append(out, models.RecipeActivity{RecipeID: r.ID, LikeCount: r.LikeCount, CreatedAt: r.CreatedAt})
		}
	}
	return out, nil
}

func (s *fakeStore) RecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	out := []models.Recipe{}
	for _, id := range ids {
		if r, ok := s.recipes[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	r, ok := s.recipes[id]
	if !ok {
		return nil, errNotFoundForTest
	}
	return &r, nil
}

func (s *fakeStore) CreateRecipe(ctx context.Context, r *models.Recipe) error {
	if s.failWith != nil {
		return s.failWith
	}
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	r.UpdatedAt = r.CreatedAt
	s.recipes[r.ID] = *r
	return nil
}

func (s *fakeStore) UpdateRecipe(ctx context.Context, r *models.Recipe) error {
	if _, ok := s.recipes[r.ID]; !ok {
		return errNotFoundForTest
	}
	s.recipes[r.ID] = *r
	return nil
}

func (s *fakeStore) DeleteRecipe(ctx context.Context, id string) error {
	if _, ok := s.recipes[id]; !ok {
		return errNotFoundForTest
	}
	delete(s.recipes, id)
	return nil
}

func (s *fakeStore) ToggleLike(ctx context.Context, recipeID, userID string) (bool, int, error) {
	r, ok := s.recipes[recipeID]
	if !ok {
		return false, 0, errNotFoundForTest
	}
	if s.likes[recipeID] == nil {
		s.likes[recipeID] = map[string]bool{}
	}
	liked := !s.likes[recipeID][userID]
	s.likes[recipeID][userID] = liked
	if liked {
		r.LikeCount++
	} else {
		r.LikeCount--
	}
	s.recipes[recipeID] = r
	return liked, r.LikeCount, nil
}

func (s *fakeStore) ToggleFavorite(ctx context.Context, recipeID, userID string) (bool, error) {
	if _, ok := s.recipes[recipeID]; !ok {
		return false, errNotFoundForTest
	}
	if s.favs[recipeID] == nil {
		s.favs[recipeID] = map[string]bool{}
	}
	fav := !s.favs[recipeID][userID]
	s.favs[recipeID][userID] = fav
	return fav, nil
}

func (s *fakeStore) FavoriteRecipes(ctx context.Context, userID string) ([]models.Recipe, error) {
	out := []models.Recipe{}
	for recipeID, users := range s.favs {
		if users[userID] {
			out = append(out, s.recipes[recipeID])
		}
	}
	return out, nil
}

func (s *fakeStore) AuthorSummary(ctx context.Context, authorID string) (*models.AuthorSummary, error) {
	u, ok := s.users[authorID]
	if !ok {
		return nil, nil
	}
	return u.Summary(), nil
}

func (s *fakeStore) CreateUser(ctx context.Context, u *models.User) error {
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return errDuplicateForTest
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *fakeStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errNotFoundForTest
	}
	return &u, nil
}

func (s *fakeStore) UpdateUser(ctx context.Context, u *models.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return errNotFoundForTest
	}
	s.users[u.ID] = *u
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		API:      config.APIConfig{DefaultPageSize: 10, MaxPageSize: 50},
		Cache:    config.CacheConfig{ListTTL: 2 * time.Minute, TrendingTTL: 10 * time.Minute},
		Trending: config.TrendingConfig{WindowDays: 30, DefaultLimit: 5, MaxLimit: 20},
		Security: config.SecurityConfig{RateLimitDisabled: true, CORSOrigins: []string{"*"}},
	}
}

func newTestHandlers(t *testing.T) (*Handlers, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	c := cache.New()
	t.Cleanup(c.Stop)
	h := NewHandlers(testConfig(), store, store, c, nil)
	return h, store
}

func seedRecipe(t *testing.T, store *fakeStore, title, authorID string) models.Recipe {
	t.Helper()
	r := models.Recipe{
		Title:           title,
		Description:     "test recipe",
		Ingredients:     []string{"thing"},
		Instructions:    []string{"do it"},
		Category:        models.CategoryDinner,
		Difficulty:      models.DifficultyEasy,
		PreparationTime: 20,
		Servings:        2,
		AuthorID:        authorID,
	}
	if err := store.CreateRecipe(context.Background(), &r); err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return r
}

func doRequest(h *Handlers, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	NewRouter(testConfig(), h).ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
	return resp
}

func TestListRecipesReturnsPageEnvelope(t *testing.T) {
	h, store := newTestHandlers(t)
	authorID := uuid.NewString()
	store.users[authorID] = models.User{ID: authorID, Username: "cook"}
	for i := 0; i < 12; i++ {
		seedRecipe(t, store, "Recipe", authorID)
	}

	rec := doRequest(h, http.MethodGet, "/api/v1/recipes?limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("expected success envelope")
	}
	if resp.Pagination == nil {
		t.Fatal("expected pagination metadata")
	}
	if resp.Pagination.Total != 12 || resp.Pagination.Limit != 5 || resp.Pagination.Pages != 3 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
	if !resp.Pagination.HasNext || resp.Pagination.HasPrev {
		t.Errorf("expected hasNext without hasPrev on page 1, got %+v", resp.Pagination)
	}
}

func TestListRecipesServedFromCacheOnRepeat(t *testing.T) {
	h, store := newTestHandlers(t)
	seedRecipe(t, store, "Soup", uuid.NewString())

	first := doRequest(h, http.MethodGet, "/api/v1/recipes", nil)
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("expected first request to miss cache, got %q", got)
	}

	second := doRequest(h, http.MethodGet, "/api/v1/recipes", nil)
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("expected second request to hit cache, got %q", got)
	}

	// Key order can differ after the cache round-trip, so compare
	// decoded content rather than raw bytes.
	a, b := decodeResponse(t, first), decodeResponse(t, second)
	if a.Pagination == nil || b.Pagination == nil || *a.Pagination != *b.Pagination {
		t.Errorf("cached pagination differs: %+v vs %+v", a.Pagination, b.Pagination)
	}
}

func TestCreateRecipeInvalidatesListCache(t *testing.T) {
	h, store := newTestHandlers(t)
	authorID := uuid.NewString()
	store.users[authorID] = models.User{ID: authorID, Username: "cook"}
	seedRecipe(t, store, "Before", authorID)

	doRequest(h, http.MethodGet, "/api/v1/recipes", nil)

	create := doRequest(h, http.MethodPost, "/api/v1/recipes", CreateRecipeRequest{
		Title:           "After Dinner Mints",
		Description:     "fresh",
		Ingredients:     []string{"mint"},
		Instructions:    []string{"serve"},
		Category:        "dessert",
		Difficulty:      "easy",
		PreparationTime: 5,
		Servings:        4,
		AuthorID:        authorID,
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", create.Code, create.Body.String())
	}

	after := doRequest(h, http.MethodGet, "/api/v1/recipes", nil)
	if got := after.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("expected cache invalidation after create, got %q", got)
	}
	resp := decodeResponse(t, after)
	if resp.Pagination.Total != 2 {
		t.Errorf("expected 2 recipes after create, got %d", resp.Pagination.Total)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := doRequest(h, http.MethodPost, "/api/v1/recipes", CreateRecipeRequest{
		Title:    "x", // too short
		Category: "midnight-snack",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %+v", resp.Error)
	}
}

func TestGetRecipeInvalidID(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := doRequest(h, http.MethodGet, "/api/v1/recipes/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "INVALID_ID" {
		t.Errorf("expected INVALID_ID, got %+v", resp.Error)
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := doRequest(h, http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %+v", resp.Error)
	}
}

func TestToggleLikeFlipsState(t *testing.T) {
	h, store := newTestHandlers(t)
	r := seedRecipe(t, store, "Likeable", uuid.NewString())
	userID := uuid.NewString()

	first := doRequest(h, http.MethodPost, "/api/v1/recipes/"+r.ID+"/like", ToggleRequest{UserID: userID})
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", first.Code, first.Body.String())
	}
	resp := decodeResponse(t, first)
	data := resp.Data.(map[string]interface{})
	if data["liked"] != true || data["likeCount"] != float64(1) {
		t.Errorf("expected liked=true count=1, got %v", data)
	}

	second := doRequest(h, http.MethodPost, "/api/v1/recipes/"+r.ID+"/like", ToggleRequest{UserID: userID})
	data = decodeResponse(t, second).Data.(map[string]interface{})
	if data["liked"] != false || data["likeCount"] != float64(0) {
		t.Errorf("expected liked=false count=0 on repeat, got %v", data)
	}
}

func TestTrendingEndpoint(t *testing.T) {
	h, store := newTestHandlers(t)
	quiet := seedRecipe(t, store, "Quiet", uuid.NewString())
	popular := seedRecipe(t, store, "Popular", uuid.NewString())

	r := store.recipes[popular.ID]
	r.LikeCount = 50
	store.recipes[popular.ID] = r

	rec := doRequest(h, http.MethodGet, "/api/v1/recipes/trending?limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	items := resp.Data.([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 trending recipe, got %d", len(items))
	}
	top := items[0].(map[string]interface{})
	if top["id"] != popular.ID {
		t.Errorf("expected %s to trend over %s, got %v", popular.ID, quiet.ID, top["id"])
	}
}

func TestRegisterUserHashesPassword(t *testing.T) {
	h, store := newTestHandlers(t)

	rec := doRequest(h, http.MethodPost, "/api/v1/users", RegisterUserRequest{
		Username: "newcook",
		Email:    "new@example.com",
		Password: "super-secret-pw",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if strings.Contains(rec.Body.String(), "super-secret-pw") {
		t.Error("password leaked into response body")
	}

	var stored models.User
	for _, u := range store.users {
		stored = u
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "super-secret-pw" {
		t.Error("expected bcrypt hash to be stored, not the raw password")
	}
}

func TestRegisterUserDuplicate(t *testing.T) {
	h, _ := newTestHandlers(t)

	body := RegisterUserRequest{Username: "dupe", Email: "dupe@example.com", Password: "password123"}
	doRequest(h, http.MethodPost, "/api/v1/users", body)
	rec := doRequest(h, http.MethodPost, "/api/v1/users", body)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "DUPLICATE" {
		t.Errorf("expected DUPLICATE, got %+v", resp.Error)
	}
}

func TestUserRecipesPinsAuthorFilter(t *testing.T) {
	h, store := newTestHandlers(t)
	alice := uuid.NewString()
	bob := uuid.NewString()
	store.users[alice] = models.User{ID: alice, Username: "alice"}
	store.users[bob] = models.User{ID: bob, Username: "bob"}
	seedRecipe(t, store, "Alice Pie", alice)
	seedRecipe(t, store, "Bob Stew", bob)

	rec := doRequest(h, http.MethodGet, "/api/v1/users/"+alice+"/recipes", nil)
	resp := decodeResponse(t, rec)
	if resp.Pagination.Total != 1 {
		t.Errorf("expected only alice's recipe, got total %d", resp.Pagination.Total)
	}
}

func TestStoreFailureMapsTo500(t *testing.T) {
	h, store := newTestHandlers(t)
	store.failWith = errBoom

	rec := doRequest(h, http.MethodGet, "/api/v1/recipes", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "STORE_ERROR" {
		t.Errorf("expected STORE_ERROR, got %+v", resp.Error)
	}
}

func TestMetadataEndpoint(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := doRequest(h, http.MethodGet, "/api/v1/recipes/metadata", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	if len(data["categories"].([]interface{})) != 8 {
		t.Errorf("expected 8 categories, got %v", data["categories"])
	}
}
