package responses

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/types"
)

// WriteData writes a {"data": ...} envelope with the given status.
func WriteData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.SuccessEnvelope{Data: data})
}

// WriteNoContent writes an empty 204 response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps an error onto the {"error": ...} envelope using the code
// metadata table. Unknown errors become opaque 500s; their cause is logged,
// never leaked.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	appErr := errors.As(err)
	if appErr == nil {
		appErr = errors.Wrap(errors.CodeInternal, err, "unexpected error")
	}

	meta := errors.MetadataFor(appErr.Code())
	if meta.HTTPStatus >= http.StatusInternalServerError {
		logg.Error(ctx, appErr.Message(), appErr.Unwrap())
	}

	payload := types.APIError{
		Code:    string(appErr.Code()),
		Message: publicMessage(appErr, meta),
	}
	if meta.DetailsAllowed {
		payload.Details = appErr.Details()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(types.ErrorEnvelope{Error: payload})
}

func publicMessage(appErr *errors.Error, meta errors.Metadata) string {
	// 5xx messages are replaced with the generic text so internals stay
	// internal.
	if meta.HTTPStatus >= http.StatusInternalServerError {
		return meta.PublicMessage
	}
	if appErr.Message() != "" {
		return appErr.Message()
	}
	return meta.PublicMessage
}
