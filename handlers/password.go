package handlers

import (
	"encoding/json"
	"net/http"

	"monedero/backend/services"
)

// CheckPasswordStrength scores a candidate password for the registration
// form. Public: it runs before the user has an account.
func CheckPasswordStrength(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	assessment := services.ValidatePassword(req.Password)

	writeJSON(w, http.StatusOK, struct {
		services.PasswordAssessment
		Strength string `json:"strength"`
		Color    string `json:"color"`
	}{
		PasswordAssessment: assessment,
		Strength:           services.PasswordStrengthLabel(assessment.Score),
		Color:              services.PasswordStrengthColor(assessment.Score),
	})
}
