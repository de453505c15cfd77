package httphandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cropfresh/cropfresh-service-notification/internal/dispatcher"
	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/internal/usecase"
	"github.com/cropfresh/cropfresh-service-notification/pkg/response"
	"github.com/cropfresh/cropfresh-service-notification/pkg/template"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

type NotificationHandler struct {
	notifications *usecase.NotificationUsecase
	prefs         *usecase.PreferenceUsecase
	devices       *usecase.DeviceUsecase
	router        *usecase.RouterUsecase
	events        *dispatcher.Dispatcher
}

func NewNotificationHandler(
	notifications *usecase.NotificationUsecase,
	prefs *usecase.PreferenceUsecase,
	devices *usecase.DeviceUsecase,
	router *usecase.RouterUsecase,
	events *dispatcher.Dispatcher,
) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		prefs:         prefs,
		devices:       devices,
		router:        router,
		events:        events,
	}
}

// ----------------------
// Notification Handlers
// ----------------------

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.notifications.List(r.Context(), farmerID(r), limit, offset)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	items, err := h.notifications.ListUnread(r.Context(), farmerID(r), limit, offset)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *NotificationHandler) CountUnread(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifications.CountUnread(r.Context(), farmerID(r))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.notifications.MarkAsRead(r.Context(), id, farmerID(r)); err != nil {
		if err == xerrors.ErrNotFound {
			response.Error(w, http.StatusNotFound, "notification not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.notifications.MarkAllRead(r.Context(), farmerID(r))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.notifications.Delete(r.Context(), id, farmerID(r)); err != nil {
		if err == xerrors.ErrNotFound {
			response.Error(w, http.StatusNotFound, "notification not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) SmsAudit(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	logs, err := h.notifications.SmsAudit(r.Context(), farmerID(r), limit, offset)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, logs)
}

// ----------------------
// Preference Handlers
// ----------------------

func (h *NotificationHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.prefs.GetOrCreate(r.Context(), farmerID(r))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, prefs)
}

func (h *NotificationHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.FarmerPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	prefs.FarmerID = farmerID(r)

	saved, err := h.prefs.Update(r.Context(), &prefs)
	if err != nil {
		if err == xerrors.ErrInvalidInput {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, saved)
}

// ----------------------
// Device Token Handlers
// ----------------------

func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token      string `json:"token"`
		DeviceType string `json:"device_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	tok, err := h.devices.Register(r.Context(), farmerID(r), req.Token, req.DeviceType)
	if err != nil {
		if err == xerrors.ErrInvalidInput {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.JSON(w, http.StatusOK, tok)
}

func (h *NotificationHandler) UnregisterDevice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}

	if err := h.devices.Unregister(r.Context(), farmerID(r), req.Token); err != nil {
		if err == xerrors.ErrNotFound {
			response.Error(w, http.StatusNotFound, "device token not found")
			return
		}
		if err == xerrors.ErrInvalidInput {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------
// Send / Dispatch
// ----------------------

func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FarmerID  string                 `json:"farmer_id"`
		Type      string                 `json:"type"`
		Title     string                 `json:"title"`
		Body      string                 `json:"body"`
		Deeplink  string                 `json:"deeplink"`
		Metadata  map[string]interface{} `json:"metadata"`
		Phone     string                 `json:"phone"`
		Language  string                 `json:"language"`
		Variables map[string]interface{} `json:"variables"`
		ForceSMS  bool                   `json:"force_sms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.FarmerID == "" || req.Type == "" {
		response.Error(w, http.StatusBadRequest, "farmer_id and type are required")
		return
	}

	result := h.router.SendNotification(r.Context(), domain.SendParams{
		FarmerID:  req.FarmerID,
		Type:      domain.NotificationType(req.Type),
		Title:     req.Title,
		Body:      req.Body,
		Deeplink:  req.Deeplink,
		Metadata:  req.Metadata,
		Phone:     req.Phone,
		Language:  template.ParseLanguage(req.Language),
		Variables: req.Variables,
		ForceSMS:  req.ForceSMS,
	})
	response.JSON(w, http.StatusOK, result)
}

func (h *NotificationHandler) DispatchEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventID    string                 `json:"event_id"`
		Type       string                 `json:"type"`
		FarmerID   string                 `json:"farmer_id"`
		Payload    map[string]interface{} `json:"payload"`
		OccurredAt time.Time              `json:"occurred_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.EventID == "" || req.FarmerID == "" {
		response.Error(w, http.StatusBadRequest, "event_id and farmer_id are required")
		return
	}

	processed := h.events.Dispatch(r.Context(), &domain.NotificationEvent{
		EventID:    req.EventID,
		Type:       domain.NotificationType(req.Type),
		FarmerID:   req.FarmerID,
		Payload:    req.Payload,
		OccurredAt: req.OccurredAt,
	})
	response.JSON(w, http.StatusOK, map[string]bool{"processed": processed})
}
