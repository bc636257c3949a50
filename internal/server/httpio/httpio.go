// Package httpio holds the small request/response helpers shared by all HTTP
// handlers: JSON encoding and the errs-kind to status-code mapping.
package httpio

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/dailycount/stockledger-service/pkg/errs"
	"github.com/dailycount/stockledger-service/pkg/logger"
)

type errorBody struct {
	Error string `json:"error"`
	Label string `json:"label,omitempty"`
	Kind  string `json:"kind"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func Decode(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return errs.Wrap(errs.KindValidation, "decode request body", err)
	}
	return nil
}

// Error maps the error taxonomy onto HTTP statuses. Unclassified errors are
// logged and rendered as a bare 500 without leaking internals.
func Error(w http.ResponseWriter, log logger.ZapLogger, err error) {
	kind := errs.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case errs.KindValidation:
		status = http.StatusBadRequest
	case errs.KindBusinessRule:
		status = http.StatusUnprocessableEntity
	case errs.KindPermission:
		status = http.StatusForbidden
	case errs.KindAuth:
		status = http.StatusUnauthorized
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindTransient:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		log.Error("unclassified error", zap.Error(err))
		JSON(w, status, errorBody{Error: "internal error", Kind: kind.String()})
		return
	}

	JSON(w, status, errorBody{
		Error: err.Error(),
		Label: errs.Label(err),
		Kind:  kind.String(),
	})
}
