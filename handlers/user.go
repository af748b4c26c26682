package handlers

import (
	"encoding/json"
	"net/http"

	"monedero/backend/middleware"
	"monedero/backend/services"
)

// SyncUser upserts the caller's profile after sign-up or sign-in. The
// display name comes from the request body, falling back to the token's
// name claim.
func SyncUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user ID found", http.StatusUnauthorized)
		return
	}

	var req struct {
		FullName string `json:"fullName"`
	}
	// Body is optional
	json.NewDecoder(r.Body).Decode(&req)

	if req.FullName == "" {
		req.FullName = middleware.GetUserNameFromContext(r)
	}

	profile, err := services.SyncUserProfile(userID, req.FullName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
