package handler

import (
	"net/http"
	"time"

	"github.com/dailycount/stockledger-service/internal/model"
	"github.com/dailycount/stockledger-service/internal/order"
	"github.com/dailycount/stockledger-service/internal/order/dto"
	"github.com/dailycount/stockledger-service/internal/server/httpio"
	"github.com/dailycount/stockledger-service/pkg/logger"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

type createOrderRequest struct {
	Quantities map[string]any `json:"quantities"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, h.logger, err)
		return
	}

	record, err := h.uc.Create(r.Context(), &dto.CreateOrderInput{
		StoreID:    r.PathValue("storeID"),
		Quantities: req.Quantities,
	})
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusCreated, record)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")
	if to == "" {
		to = time.Now().Format(model.DateLayout)
	}
	from := r.URL.Query().Get("from")
	if from == "" {
		// Default window: the last 30 days.
		from = time.Now().AddDate(0, 0, -30).Format(model.DateLayout)
	}

	records, err := h.uc.List(r.Context(), r.PathValue("storeID"), from, to)
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, records)
}

func (h *OrderHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	defaults, err := h.uc.Defaults(r.Context(), r.PathValue("storeID"))
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, defaults)
}

func (h *OrderHandler) Recover(w http.ResponseWriter, r *http.Request) {
	record, err := h.uc.RecoverBackup(r.Context(), r.PathValue("storeID"), r.PathValue("date"))
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusCreated, record)
}
