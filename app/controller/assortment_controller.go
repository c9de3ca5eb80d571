package controller

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"nk-catalog/models"
	"nk-catalog/service"
)

const (
	connectionSampleLimit = 5
	debugRowLimit         = 3
	analyzeRowLimit       = 50
)

// AssortmentController handles the JSON and diagnostic endpoints over the МойСклад assortment
type AssortmentController struct {
	source    service.ProductSourceInterface
	moySklad  service.MoySkladServiceInterface
	validator service.ProductValidatorInterface
}

// NewAssortmentController creates a new AssortmentController
func NewAssortmentController(
	source service.ProductSourceInterface,
	moySklad service.MoySkladServiceInterface,
	validator service.ProductValidatorInterface,
) *AssortmentController {
	return &AssortmentController{
		source:    source,
		moySklad:  moySklad,
		validator: validator,
	}
}

// Products handles GET /api/products
// Each product carries its national catalog dictionary checks.
// Example response:
//
//	{"products": [{"name": "Футболка", "color": "Синий", "color_valid": true, ...}], "total_filtered": 12, "total_items": 340}
func (c *AssortmentController) Products(w http.ResponseWriter, r *http.Request) {
	page, err := c.source.CatalogProducts(r.Context())
	if err != nil {
		log.Printf("❌ Products: Error loading products: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Ошибка при загрузке данных из МойСклад"})
		return
	}
	c.validator.Validate(r.Context(), page.Products)

	response := models.ProductsResponse{
		Products:      page.Products,
		TotalFiltered: len(page.Products),
	}
	if response.Products == nil {
		response.Products = []models.Product{}
	}
	if page.TotalItems != nil {
		response.TotalItems = *page.TotalItems
	}
	writeJSON(w, http.StatusOK, response)
}

// TestConnection handles GET /test
// Reports whether a token is configured, whether it is accepted and a few item names.
func (c *AssortmentController) TestConnection(w http.ResponseWriter, r *http.Request) {
	if !c.moySklad.TokenPresent() {
		writeJSON(w, http.StatusOK, models.ConnectionReport{Error: "Токен не найден", TokenPresent: false})
		return
	}

	failed := models.ConnectionReport{Status: "error", TokenPresent: true, Connection: "failed"}

	if err := c.moySklad.TestConnection(r.Context()); err != nil {
		failed.Error = err.Error()
		writeJSON(w, http.StatusOK, failed)
		return
	}

	page, err := c.moySklad.GetAssortment(r.Context(), connectionSampleLimit, 0)
	if err != nil {
		failed.Error = err.Error()
		writeJSON(w, http.StatusOK, failed)
		return
	}

	names := make([]string, 0, len(page.Rows))
	for _, row := range page.Rows {
		names = append(names, service.DisplayName(row.Name))
	}
	writeJSON(w, http.StatusOK, models.ConnectionReport{
		Status:       "success",
		TokenPresent: true,
		Connection:   "ok",
		SampleCount:  len(page.Rows),
		SampleItems:  names,
	})
}

// Debug handles GET /debug
// Dumps the raw attributes and characteristics of the first assortment rows.
func (c *AssortmentController) Debug(w http.ResponseWriter, r *http.Request) {
	page, err := c.moySklad.GetAssortment(r.Context(), connectionSampleLimit, 0)
	if err != nil {
		log.Printf("❌ Debug: Error loading assortment: %v", err)
		writeError(w, err)
		return
	}

	rows := page.Rows
	if len(rows) > debugRowLimit {
		rows = rows[:debugRowLimit]
	}

	items := make([]models.DebugItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.DebugItem{
			Name:            row.Name,
			Type:            row.Meta.Type,
			Attributes:      row.Attributes,
			Characteristics: row.Characteristics,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// Analyze handles GET /analyze
// Groups the first assortment rows by type and shows the fields the catalog reads from each.
func (c *AssortmentController) Analyze(w http.ResponseWriter, r *http.Request) {
	analysis, err := c.source.Analyze(r.Context(), analyzeRowLimit)
	if err != nil {
		log.Printf("❌ Analyze: Error loading assortment: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
