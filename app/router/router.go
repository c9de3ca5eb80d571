package router

import (
	"net/http"

	"nk-catalog/app/controller"
	"nk-catalog/metrics"
)

type Controllers struct {
	Catalog    *controller.CatalogController
	Assortment *controller.AssortmentController
	NK         *controller.NKController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every endpoint on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	// Catalog pages
	mux.HandleFunc("GET /{$}", controllers.Catalog.Index)
	mux.HandleFunc("GET /all", controllers.Catalog.All)
	mux.HandleFunc("POST /render", controllers.Catalog.Render)
	mux.HandleFunc("GET /catalog.pdf", controllers.Catalog.PDF)
	mux.HandleFunc("GET /catalog/preview.jpg", controllers.Catalog.Preview)

	// Assortment data and diagnostics
	mux.HandleFunc("GET /api/products", controllers.Assortment.Products)
	mux.HandleFunc("GET /test", controllers.Assortment.TestConnection)
	mux.HandleFunc("GET /debug", controllers.Assortment.Debug)
	mux.HandleFunc("GET /analyze", controllers.Assortment.Analyze)

	// National catalog
	mux.HandleFunc("POST /send_to_nk/{index}", controllers.NK.Send)
	mux.HandleFunc("GET /nk_preview/{index}", controllers.NK.Preview)
	mux.HandleFunc("GET /check_feed_status/{feed_id}", controllers.NK.FeedStatus)
	mux.HandleFunc("GET /debug/categories/{tnved}", controllers.NK.DebugCategories)
	mux.HandleFunc("GET /feeds", controllers.NK.Feeds)
}
