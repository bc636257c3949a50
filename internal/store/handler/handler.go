package handler

import (
	"net/http"

	"github.com/dailycount/stockledger-service/internal/server/httpio"
	"github.com/dailycount/stockledger-service/internal/store"
	"github.com/dailycount/stockledger-service/internal/store/dto"
	"github.com/dailycount/stockledger-service/pkg/logger"
)

type StoreHandler struct {
	uc     store.UseCase
	logger logger.ZapLogger
}

func NewStoreHandler(uc store.UseCase, log logger.ZapLogger) *StoreHandler {
	return &StoreHandler{uc: uc, logger: log}
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateStoreInput
	if err := httpio.Decode(r, &input); err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	s, err := h.uc.CreateStore(r.Context(), &input)
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusCreated, s)
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.uc.ListStores(r.Context())
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, stores)
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.GetStore(r.Context(), r.PathValue("storeID"))
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, s)
}

func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteStore(r.Context(), r.PathValue("storeID")); err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusNoContent, nil)
}
