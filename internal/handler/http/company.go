package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CompanyHandler interface {
	GetMyCompany(w http.ResponseWriter, r *http.Request)
	UpdateLocation(w http.ResponseWriter, r *http.Request)
	UpdateSchedule(w http.ResponseWriter, r *http.Request)

	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Rename(w http.ResponseWriter, r *http.Request)
	Suspend(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// GetMyCompany implements CompanyHandler.
func (h *CompanyHandlerImpl) GetMyCompany(w http.ResponseWriter, r *http.Request) {
	companyResponse, err := h.companyService.GetMyCompany(r.Context())
	if err != nil {
		slog.Error("GetMyCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, companyResponse)
}

// UpdateLocation implements CompanyHandler.
func (h *CompanyHandlerImpl) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.companyService.UpdateLocation(r.Context(), req); err != nil {
		slog.Error("UpdateLocation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Office location updated")
	response.SuccessWithMessage(w, "Office location updated successfully", nil)
}

// UpdateSchedule implements CompanyHandler.
func (h *CompanyHandlerImpl) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateScheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.companyService.UpdateSchedule(r.Context(), req); err != nil {
		slog.Error("UpdateSchedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Work schedule updated")
	response.SuccessWithMessage(w, "Work schedule updated successfully", nil)
}

// List implements CompanyHandler.
func (h *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.List(r.Context())
	if err != nil {
		slog.Error("List companies service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, companies)
}

// Create implements CompanyHandler.
func (h *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req company.CreateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	companyResponse, err := h.companyService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Company created", "company_id", companyResponse.ID)
	response.Created(w, "Company created successfully", companyResponse)
}

// Rename implements CompanyHandler.
func (h *CompanyHandlerImpl) Rename(w http.ResponseWriter, r *http.Request) {
	var req company.RenameCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Rename company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.companyService.Rename(r.Context(), id, req); err != nil {
		slog.Error("Rename company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Company renamed", "company_id", id)
	response.SuccessWithMessage(w, "Company renamed successfully", nil)
}

// Suspend implements CompanyHandler.
func (h *CompanyHandlerImpl) Suspend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.companyService.Suspend(r.Context(), id); err != nil {
		slog.Error("Suspend company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Company suspended", "company_id", id)
	response.SuccessWithMessage(w, "Company suspended successfully", nil)
}

// Activate implements CompanyHandler.
func (h *CompanyHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.companyService.Activate(r.Context(), id); err != nil {
		slog.Error("Activate company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Company activated", "company_id", id)
	response.SuccessWithMessage(w, "Company activated successfully", nil)
}
