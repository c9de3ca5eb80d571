package controller

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"nk-catalog/models"
	"nk-catalog/service"
)

// debugCatalogLimit is how many unfiltered rows GET /all shows
const debugCatalogLimit = 20

// maxRenderBody caps the JSON accepted by POST /render
const maxRenderBody = 10 << 20

// CatalogController handles HTTP requests for the catalog pages
type CatalogController struct {
	source  service.ProductSourceInterface
	catalog service.CatalogServiceInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(source service.ProductSourceInterface, catalog service.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		source:  source,
		catalog: catalog,
	}
}

func (c *CatalogController) renderError(w http.ResponseWriter, message string) {
	html, err := c.catalog.RenderError(message)
	if err != nil {
		log.Printf("❌ Error rendering error page: %v", err)
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusInternalServerError, html)
}

func (c *CatalogController) renderPage(w http.ResponseWriter, view string, page models.CatalogPage) {
	html, err := c.catalog.Render(view, page)
	if err != nil {
		c.renderError(w, "Внутренняя ошибка: "+err.Error())
		return
	}
	writeHTML(w, http.StatusOK, html)
}

// Index handles GET /
// Renders every assortment entry marked for the national catalog.
func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Index: loading catalog")

	page, err := c.source.CatalogProducts(r.Context())
	if err != nil {
		log.Printf("❌ Index: Error loading products: %v", err)
		c.renderError(w, "Ошибка при загрузке данных из МойСклад")
		return
	}

	c.renderPage(w, service.ViewCatalog, page)
}

// All handles GET /all
// Renders the first rows of the assortment without selection, for debugging.
func (c *CatalogController) All(w http.ResponseWriter, r *http.Request) {
	page, err := c.source.AllProducts(r.Context(), debugCatalogLimit)
	if err != nil {
		log.Printf("❌ All: Error loading products: %v", err)
		c.renderError(w, "Ошибка при загрузке данных")
		return
	}

	c.renderPage(w, service.ViewAll, page)
}

// Render handles POST /render
// Example request:
//
//	{
//	  "products": [{"name": "Футболка", "article": "A1", "color": "красный", "size": "M"}],
//	  "total_items": 5
//	}
//
// A body without "products" renders the empty catalog.
func (c *CatalogController) Render(w http.ResponseWriter, r *http.Request) {
	var page models.CatalogPage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRenderBody)).Decode(&page); err != nil {
		log.Printf("❌ Render: Invalid request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c.renderPage(w, service.ViewPosted, page)
}

// PDF handles GET /catalog.pdf
func (c *CatalogController) PDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := c.catalog.GeneratePDF(r.Context())
	if err != nil {
		log.Printf("❌ PDF: Error generating PDF: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ PDF: Error writing response: %v", err)
	}
}

// Preview handles GET /catalog/preview.jpg
func (c *CatalogController) Preview(w http.ResponseWriter, r *http.Request) {
	img, err := c.catalog.GeneratePreview(r.Context())
	if err != nil {
		log.Printf("❌ Preview: Error generating preview: %v", err)
		http.Error(w, "Failed to generate preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		log.Printf("❌ Preview: Error writing response: %v", err)
	}
}
