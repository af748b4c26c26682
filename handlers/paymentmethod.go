package handlers

import (
	"encoding/json"
	"net/http"

	"monedero/backend/middleware"
	"monedero/backend/services"

	"github.com/gorilla/mux"
)

func GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	activeOnly := r.URL.Query().Get("includeInactive") != "true"
	methods, err := services.GetUserPaymentMethods(userID, activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, methods)
}

func AddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	var req services.CreatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method, err := services.CreatePaymentMethod(userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, method)
}

func UpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	var req services.UpdatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := services.UpdatePaymentMethod(userID, mux.Vars(r)["id"], req); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeactivatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	setPaymentMethodActive(w, r, false)
}

func ReactivatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	setPaymentMethodActive(w, r, true)
}

func setPaymentMethodActive(w http.ResponseWriter, r *http.Request, active bool) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	if err := services.SetPaymentMethodActive(userID, mux.Vars(r)["id"], active); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	if err := services.DeletePaymentMethod(userID, mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
