package handlers

import (
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"hotel_service/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func jsonResponse(payload interface{}, writer http.ResponseWriter) {
	writer.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(writer).Encode(payload)
	if err != nil {
		http.Error(writer, "Unable to convert to json", http.StatusInternalServerError)
	}
}

func writeError(writer http.ResponseWriter, status int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(errorResponse{Error: message})
}

// writeDomainError maps the domain error taxonomy to HTTP statuses.
// Anything that is not a domain error surfaces as a generic 500 without
// leaking internals.
func writeDomainError(writer http.ResponseWriter, err error) {
	code, ok := domain.CodeOf(err)
	if !ok {
		writeError(writer, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	switch code {
	case domain.CodeNotFound:
		writeError(writer, http.StatusNotFound, err.Error())
	case domain.CodeConflict:
		writeError(writer, http.StatusConflict, err.Error())
	default:
		writeError(writer, http.StatusBadRequest, err.Error())
	}
}

func ExtractTraceInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
