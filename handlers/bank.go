package handlers

import (
	"encoding/json"
	"net/http"

	"monedero/backend/middleware"
	"monedero/backend/services"

	"github.com/gorilla/mux"
)

func GetBanks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	var err error
	var banks interface{}
	if r.URL.Query().Get("systemOnly") == "true" {
		banks, err = services.GetSystemBanks()
	} else {
		banks, err = services.GetBanks()
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, banks)
}

func AddBank(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bank, err := services.CreateCustomBank(userID, req.Name, req.Type, req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bank)
}

func UpdateBank(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name     *string `json:"name,omitempty"`
		Code     *string `json:"code,omitempty"`
		Type     *string `json:"type,omitempty"`
		IsActive *bool   `json:"isActive,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := services.UpdateCustomBank(mux.Vars(r)["id"], req.Name, req.Code, req.Type, req.IsActive); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteBank(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	if err := services.DeleteCustomBank(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func CheckBankName(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name query parameter is required", http.StatusBadRequest)
		return
	}

	exists, err := services.BankNameExists(name, r.URL.Query().Get("excludeId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}
