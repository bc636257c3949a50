package server

import (
	"net/http"

	catalogHandler "github.com/dailycount/stockledger-service/internal/catalog/handler"
	orderHandler "github.com/dailycount/stockledger-service/internal/order/handler"
	snapshotHandler "github.com/dailycount/stockledger-service/internal/snapshot/handler"
	storeHandler "github.com/dailycount/stockledger-service/internal/store/handler"
	"github.com/dailycount/stockledger-service/pkg/logger"
)

// Handlers carries the per-domain HTTP handlers wired into the router.
type Handlers struct {
	Snapshot *snapshotHandler.SnapshotHandler
	Order    *orderHandler.OrderHandler
	Catalog  *catalogHandler.CatalogHandler
	Store    *storeHandler.StoreHandler
}

// NewRouter builds the service mux. Every route goes through the identity
// and request-log middleware.
func NewRouter(h Handlers, log logger.ZapLogger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("PUT /api/v1/stores/{storeID}/snapshots/{date}", h.Snapshot.Put)
	mux.HandleFunc("GET /api/v1/stores/{storeID}/snapshots/{date}", h.Snapshot.Get)
	mux.HandleFunc("GET /api/v1/stores/{storeID}/snapshots/{date}/export", h.Snapshot.Export)
	mux.HandleFunc("POST /api/v1/stores/{storeID}/snapshots/{date}/recover", h.Snapshot.Recover)

	mux.HandleFunc("POST /api/v1/stores/{storeID}/orders", h.Order.Create)
	mux.HandleFunc("GET /api/v1/stores/{storeID}/orders", h.Order.List)
	mux.HandleFunc("GET /api/v1/stores/{storeID}/orders/defaults", h.Order.Defaults)
	mux.HandleFunc("POST /api/v1/stores/{storeID}/orders/{date}/recover", h.Order.Recover)

	mux.HandleFunc("GET /api/v1/catalog", h.Catalog.Get)
	mux.HandleFunc("POST /api/v1/catalog/categories", h.Catalog.AddCategory)
	mux.HandleFunc("DELETE /api/v1/catalog/categories/{category}", h.Catalog.RemoveCategory)
	mux.HandleFunc("POST /api/v1/catalog/categories/{category}/items", h.Catalog.AddItem)
	mux.HandleFunc("DELETE /api/v1/catalog/categories/{category}/items/{item}", h.Catalog.RemoveItem)

	mux.HandleFunc("POST /api/v1/stores", h.Store.Create)
	mux.HandleFunc("GET /api/v1/stores", h.Store.List)
	mux.HandleFunc("GET /api/v1/stores/{storeID}", h.Store.Get)
	mux.HandleFunc("DELETE /api/v1/stores/{storeID}", h.Store.Delete)

	return Identity(RequestLog(mux, log))
}
