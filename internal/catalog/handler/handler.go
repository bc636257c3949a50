package handler

import (
	"net/http"

	"github.com/dailycount/stockledger-service/internal/catalog"
	"github.com/dailycount/stockledger-service/internal/server/httpio"
	"github.com/dailycount/stockledger-service/pkg/logger"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: log}
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.uc.Get(r.Context())
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, doc)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	doc, err := h.uc.AddCategory(r.Context(), req.Name)
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, doc)
}

func (h *CatalogHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	doc, err := h.uc.RemoveCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, doc)
}

type itemRequest struct {
	Item string `json:"item"`
}

func (h *CatalogHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	doc, err := h.uc.AddItem(r.Context(), r.PathValue("category"), req.Item)
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, doc)
}

func (h *CatalogHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	doc, err := h.uc.RemoveItem(r.Context(), r.PathValue("category"), r.PathValue("item"))
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, doc)
}
