package http

import (
	"net/http"

	"github.com/KoustavFrost/devconnector/internal/application"
	"github.com/KoustavFrost/devconnector/internal/domain"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msgs := domain.ValidateRegistration(req.Name, req.Email, req.Password); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}
	req.IPAddress = readIP(r)

	res, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, "register", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req application.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeErrors(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msgs := domain.ValidateLogin(req.Email, req.Password); len(msgs) > 0 {
		writeErrors(w, http.StatusBadRequest, msgs...)
		return
	}
	req.IPAddress = readIP(r)

	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, r, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	res, err := h.service.CurrentUser(r.Context(), claims.UserID)
	if err != nil {
		h.writeDomainError(w, r, "current_user", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
