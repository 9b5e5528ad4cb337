package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/KoustavFrost/devconnector/internal/application"
	"github.com/KoustavFrost/devconnector/internal/domain"
)

func (h *Handler) upsertProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req application.UpsertProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := domain.ValidateProfileInput(req.Status, req.Skills); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}

	res, err := h.service.UpsertProfile(r.Context(), claims.UserID, req)
	if err != nil {
		h.writeDomainError(w, r, "upsert_profile", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) myProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	res, err := h.service.GetMyProfile(r.Context(), claims.UserID)
	if err != nil {
		if status, _ := mapDomainError(err); status == http.StatusNotFound {
			writeErrors(w, http.StatusNotFound, "There is no profile for this user")
			return
		}
		h.writeDomainError(w, r, "my_profile", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListProfiles(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "list_profiles", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) profileByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		// Malformed ids read the same as unknown ones.
		writeErrors(w, http.StatusNotFound, "Profile not found")
		return
	}

	res, err := h.service.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, r, "profile_by_user_id", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type experienceBody struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (h *Handler) addExperience(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var body experienceBody
	if err := decodeBody(r, &body); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msgs := domain.ValidateExperience(body.Title, body.Company, body.From != ""); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}

	from, err := parseDate(body.From)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "From date is invalid")
		return
	}
	req := application.AddExperienceRequest{
		Title:       body.Title,
		Company:     body.Company,
		Location:    body.Location,
		From:        from,
		Current:     body.Current,
		Description: body.Description,
	}
	if body.To != "" {
		to, err := parseDate(body.To)
		if err != nil {
			writeErrors(w, http.StatusBadRequest, "To date is invalid")
			return
		}
		req.To = &to
	}

	res, err := h.service.AddExperience(r.Context(), claims.UserID, req)
	if err != nil {
		h.writeDomainError(w, r, "add_experience", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) deleteExperience(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	experienceID, err := uuid.Parse(chi.URLParam(r, "experience_id"))
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid experience id")
		return
	}

	res, err := h.service.DeleteExperience(r.Context(), claims.UserID, experienceID)
	if err != nil {
		h.writeDomainError(w, r, "delete_experience", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAccount(r.Context(), claims.UserID); err != nil {
		h.writeDomainError(w, r, "delete_account", err)
		return
	}
	writeMessage(w, http.StatusOK, "User deleted")
}
