package handler

import (
	"net/http"

	"github.com/dailycount/stockledger-service/internal/server/httpio"
	"github.com/dailycount/stockledger-service/internal/snapshot"
	"github.com/dailycount/stockledger-service/internal/snapshot/dto"
	"github.com/dailycount/stockledger-service/pkg/logger"
)

type SnapshotHandler struct {
	uc     snapshot.UseCase
	logger logger.ZapLogger
}

func NewSnapshotHandler(uc snapshot.UseCase, log logger.ZapLogger) *SnapshotHandler {
	return &SnapshotHandler{uc: uc, logger: log}
}

type putSnapshotRequest struct {
	Quantities map[string]any `json:"quantities"`
}

func (h *SnapshotHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req putSnapshotRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, h.logger, err)
		return
	}

	res, err := h.uc.Put(r.Context(), &dto.PutSnapshotInput{
		StoreID:    r.PathValue("storeID"),
		Date:       r.PathValue("date"),
		Quantities: req.Quantities,
	})
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, res)
}

func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.uc.Get(r.Context(), r.PathValue("storeID"), r.PathValue("date"))
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, snap)
}

func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.uc.Export(r.Context(), r.PathValue("storeID"), r.PathValue("date"))
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, export)
}

func (h *SnapshotHandler) Recover(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.RecoverBackup(r.Context(), r.PathValue("storeID"), r.PathValue("date"))
	if err != nil {
		httpio.Error(w, h.logger, err)
		return
	}
	httpio.JSON(w, http.StatusOK, res)
}
