package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"monedero/backend/models"
)

func TestAddAndGetCategories(t *testing.T) {
	setupTestDB(t)

	req := authedRequest("POST", "/categories", "user-1",
		strings.NewReader(`{"name":"Pets","type":"expense","color":"#ff0000","icon":"🐈"}`), nil)
	rr := httptest.NewRecorder()

	AddCategory(rr, req)

	if rr.Code != 201 {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}

	req = authedRequest("GET", "/categories", "user-1", nil, nil)
	rr = httptest.NewRecorder()

	GetCategories(rr, req)

	if rr.Code != 200 {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var categories []models.Category
	if err := json.NewDecoder(rr.Body).Decode(&categories); err != nil {
		t.Fatalf("Failed to decode categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Pets" {
		t.Errorf("Expected the Pets category, got %+v", categories)
	}

	// Another user sees nothing
	req = authedRequest("GET", "/categories", "user-2", nil, nil)
	rr = httptest.NewRecorder()

	GetCategories(rr, req)

	categories = nil
	json.NewDecoder(rr.Body).Decode(&categories)
	if len(categories) != 0 {
		t.Errorf("Expected no categories for user-2, got %+v", categories)
	}
}

func TestAddCategoryDuplicate(t *testing.T) {
	setupTestDB(t)

	body := `{"name":"Pets","type":"expense"}`
	req := authedRequest("POST", "/categories", "user-1", strings.NewReader(body), nil)
	rr := httptest.NewRecorder()
	AddCategory(rr, req)
	if rr.Code != 201 {
		t.Fatalf("Failed to create category: %s", rr.Body.String())
	}

	req = authedRequest("POST", "/categories", "user-1", strings.NewReader(body), nil)
	rr = httptest.NewRecorder()

	AddCategory(rr, req)

	if rr.Code != 400 {
		t.Errorf("Expected status 400 for duplicate name, got %d", rr.Code)
	}
}

func TestDeleteCategoryConflict(t *testing.T) {
	setupTestDB(t)

	req := authedRequest("POST", "/transactions", "user-1", strings.NewReader(
		`{"type":"expense","amount":100,"description":"Shop","categoryName":"Groceries","transactionDate":"2024-05-10"}`), nil)
	rr := httptest.NewRecorder()
	AddTransaction(rr, req)
	if rr.Code != 201 {
		t.Fatalf("Failed to create transaction: %s", rr.Body.String())
	}
	var created models.Transaction
	json.NewDecoder(rr.Body).Decode(&created)

	req = authedRequest("DELETE", "/categories/"+created.CategoryID, "user-1", nil,
		map[string]string{"id": created.CategoryID})
	rr = httptest.NewRecorder()

	DeleteCategory(rr, req)

	if rr.Code != 409 {
		t.Errorf("Expected status 409 for a category in use, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGetCategoryTemplates(t *testing.T) {
	setupTestDB(t)

	req := authedRequest("GET", "/categories/templates?type=income", "user-1", nil, nil)
	rr := httptest.NewRecorder()

	GetCategoryTemplates(rr, req)

	if rr.Code != 200 {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var templates []models.CategoryTemplate
	if err := json.NewDecoder(rr.Body).Decode(&templates); err != nil {
		t.Fatalf("Failed to decode templates: %v", err)
	}
	if len(templates) == 0 {
		t.Fatal("Expected seeded income templates")
	}
	for _, tpl := range templates {
		if tpl.Type != "income" {
			t.Errorf("Expected only income templates, got %s (%s)", tpl.Name, tpl.Type)
		}
		if tpl.IsCreated {
			t.Errorf("Expected no instantiated templates for a fresh user, got %s", tpl.Name)
		}
	}
}

func TestCategoriesUnauthorized(t *testing.T) {
	setupTestDB(t)

	req := authedRequest("GET", "/categories", "", nil, nil)
	rr := httptest.NewRecorder()

	GetCategories(rr, req)

	if rr.Code != 401 {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}
