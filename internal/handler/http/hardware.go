package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendancepro/attendance-backend-go/internal/domain/hardware"
	"github.com/attendancepro/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HardwareHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)

	ListMine(w http.ResponseWriter, r *http.Request)
	EmergencyOpen(w http.ResponseWriter, r *http.Request)
}

type HardwareHandlerImpl struct {
	deviceService hardware.DeviceService
}

func NewHardwareHandler(deviceService hardware.DeviceService) HardwareHandler {
	return &HardwareHandlerImpl{deviceService: deviceService}
}

// List implements HardwareHandler.
func (h *HardwareHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	devices, err := h.deviceService.List(r.Context())
	if err != nil {
		slog.Error("List devices service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, devices)
}

// Register implements HardwareHandler.
func (h *HardwareHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req hardware.RegisterDeviceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Register device decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	deviceResponse, err := h.deviceService.Register(r.Context(), req)
	if err != nil {
		slog.Error("Register device service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Device registered", "device_uid", deviceResponse.DeviceUID)
	response.Created(w, "Device registered successfully", deviceResponse)
}

// Update implements HardwareHandler.
func (h *HardwareHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req hardware.UpdateDeviceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update device decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	deviceResponse, err := h.deviceService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update device service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Device updated", "device_id", req.ID)
	response.SuccessWithMessage(w, "Device updated successfully", deviceResponse)
}

// ListMine implements HardwareHandler.
func (h *HardwareHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	devices, err := h.deviceService.ListMine(r.Context())
	if err != nil {
		slog.Error("ListMine devices service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, devices)
}

// EmergencyOpen implements HardwareHandler.
func (h *HardwareHandlerImpl) EmergencyOpen(w http.ResponseWriter, r *http.Request) {
	var req hardware.EmergencyOpenRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EmergencyOpen decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DeviceID = chi.URLParam(r, "id")

	commandResponse, err := h.deviceService.EmergencyOpen(r.Context(), req)
	if err != nil {
		slog.Error("EmergencyOpen service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Emergency open issued", "device_id", req.DeviceID)
	response.Created(w, "Emergency open command queued", commandResponse)
}
