package adaptor

import (
	"errors"
	"net/http"

	"users-api/internal/usecase"
	"users-api/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	User *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User: NewUserHandler(service.User, log),
	}
}

// HandlerFunc is a handler that returns its failure instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// errBadBody marks a request body that could not be decoded
var errBadBody = errors.New("invalid request body")

// Handle adapts fn to http.HandlerFunc. Any error fn returns is translated
// into a JSON error response here, so no handler writes its own failures.
// Unknown errors are logged in full and answered with a generic 500.
func Handle(log *zap.Logger, operation string, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		requestID, _ := utils.GetRequestIDFromContext(r.Context())
		fields := []zap.Field{
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("request_id", requestID),
		}

		var validationErr *usecase.ValidationError
		switch {
		case errors.Is(err, errBadBody):
			log.Warn(operation+" failed - bad body", fields...)
			utils.ResponseBadRequest(w, "Invalid request body", nil)

		case errors.Is(err, usecase.ErrInvalidUserID):
			log.Warn(operation+" failed - invalid id", fields...)
			utils.ResponseBadRequest(w, "Invalid user ID", nil)

		case errors.Is(err, usecase.ErrMissingFields):
			log.Warn(operation+" failed - missing fields", fields...)
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorBody{
				Status:  false,
				Message: "Missing required fields",
				Error:   usecase.ErrMissingFields.Error(),
			})

		case errors.As(err, &validationErr):
			log.Warn(operation+" validation failed", fields...)
			utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

		case errors.Is(err, usecase.ErrUserNotFound):
			log.Warn(operation+" failed - not found", fields...)
			utils.ResponseNotFound(w, "User not found")

		case errors.Is(err, usecase.ErrEmailTaken):
			log.Warn(operation+" failed - conflict", fields...)
			utils.ResponseConflict(w, "Email already registered")

		default:
			log.Error("Failed to "+operation, append(fields,
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)...)
			utils.ResponseInternalError(w, "Internal server error")
		}
	}
}
