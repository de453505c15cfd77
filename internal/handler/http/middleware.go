package httphandler

import (
	"context"
	"net/http"

	"github.com/cropfresh/cropfresh-service-notification/pkg/response"
)

type ctxKey string

// ContextFarmerID carries the authenticated farmer id. The API gateway in
// front of this service does the actual authentication and forwards the
// identity in X-Farmer-ID.
const ContextFarmerID ctxKey = "farmer_id"

func RequireFarmer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		farmerID := r.Header.Get("X-Farmer-ID")
		if farmerID == "" {
			response.Error(w, http.StatusUnauthorized, "missing farmer identity")
			return
		}
		ctx := context.WithValue(r.Context(), ContextFarmerID, farmerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func farmerID(r *http.Request) string {
	id, _ := r.Context().Value(ContextFarmerID).(string)
	return id
}
