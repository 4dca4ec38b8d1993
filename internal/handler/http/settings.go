package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	settingsService company.SettingsService
}

func NewSettingsHandler(settingsService company.SettingsService) SettingsHandler {
	return &SettingsHandlerImpl{
		settingsService: settingsService,
	}
}

// Get implements SettingsHandler.
func (h *SettingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

// Update implements SettingsHandler.
func (h *SettingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateSettingsRequest
	if !decodeJSON(r, &req, "UpdateSettings") {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := h.settingsService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated successfully", settings)
}
