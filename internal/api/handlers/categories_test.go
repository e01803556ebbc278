package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edineros/portfolio-tracker-backend/internal/api/handlers"
	"github.com/edineros/portfolio-tracker-backend/internal/model"
	"github.com/edineros/portfolio-tracker-backend/internal/testutil"
)

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("creates a category and returns 201", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewCategoryHandler(testutil.NewTestCategoryService(t, db))

		body := bytes.NewBufferString(`{"name":"Growth","color":"#00AA33","sortOrder":2}`)
		req := httptest.NewRequest(http.MethodPost, "/api/category", body)
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var category model.Category
		if err := json.NewDecoder(w.Body).Decode(&category); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if category.Name != "Growth" || category.Color != "#00AA33" {
			t.Errorf("Unexpected category: %+v", category)
		}
	})

	t.Run("invalid color returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewCategoryHandler(testutil.NewTestCategoryService(t, db))

		body := bytes.NewBufferString(`{"name":"Growth","color":"green"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/category", body)
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("missing name returns 400", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewCategoryHandler(testutil.NewTestCategoryService(t, db))

		body := bytes.NewBufferString(`{"color":"#336699"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/category", body)
		w := httptest.NewRecorder()

		handler.CreateCategory(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})
}

func TestCategoryHandler_Categories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.NewCategory().WithName("Income").WithSortOrder(2).Build(t, db)
	testutil.NewCategory().WithName("Growth").WithSortOrder(1).Build(t, db)
	handler := handlers.NewCategoryHandler(testutil.NewTestCategoryService(t, db))

	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	w := httptest.NewRecorder()

	handler.Categories(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var categories []model.Category
	if err := json.NewDecoder(w.Body).Decode(&categories); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Growth" || categories[1].Name != "Income" {
		t.Errorf("Expected sort order to drive listing, got %q then %q",
			categories[0].Name, categories[1].Name)
	}
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("updates only provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		category := testutil.NewCategory().WithName("Growth").Build(t, db)
		handler := handlers.NewCategoryHandler(testutil.NewTestCategoryService(t, db))

		body := bytes.NewBufferString(`{"color":"#FF0000"}`)
		req := testutil.NewRequestWithBody(http.MethodPut, "/api/category/"+category.ID, body,
			map[string]string{"uuid": category.ID})
		w := httptest.NewRecorder()

		handler.UpdateCategory(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var updated model.Category
		if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if updated.Name != "Growth" || updated.Color != "#FF0000" {
			t.Errorf("Unexpected category after update: %+v", updated)
		}
	})

	t.Run("unknown category returns 404", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewCategoryHandler(testutil.NewTestCategoryService(t, db))

		id := testutil.MakeID()
		body := bytes.NewBufferString(`{"name":"Other"}`)
		req := testutil.NewRequestWithBody(http.MethodPut, "/api/category/"+id, body,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.UpdateCategory(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	category := testutil.NewCategory().Build(t, db)
	handler := handlers.NewCategoryHandler(testutil.NewTestCategoryService(t, db))

	req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/category/"+category.ID,
		map[string]string{"uuid": category.ID})
	w := httptest.NewRecorder()

	handler.DeleteCategory(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}
}
