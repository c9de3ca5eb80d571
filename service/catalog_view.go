package service

import (
	"bytes"
	"fmt"

	"nk-catalog/models"
	"nk-catalog/templates"
)

// Placeholders shown instead of absent product fields
const (
	PlaceholderName        = "Без названия"
	PlaceholderArticle     = "Не указан"
	PlaceholderComposition = "Не указан"
	PlaceholderPermitDocs  = "Не указаны"
	PlaceholderProductType = "Не указан"
)

// Page titles
const (
	CatalogTitle      = "Каталог товаров для Национального каталога"
	DebugCatalogTitle = "Отладка - все товары без фильтрации"
)

type productCard struct {
	Name           string
	Article        string
	Composition    string
	PermitDocs     string
	ProductType    string
	HasVariantInfo bool
	Color          string
	Size           string
	ItemType       string
	Debug          *models.ProductDebug
}

type catalogView struct {
	Title      string
	Count      int
	TotalItems int
	Cards      []productCard
}

// displayOr returns the value, or the placeholder when the value is absent
func displayOr(value models.Text, placeholder string) string {
	if value.IsEmpty() {
		return placeholder
	}
	return value.String()
}

// optional returns the value, or "" when it is absent
func optional(value models.Text) string {
	return displayOr(value, "")
}

func newProductCard(p models.Product) productCard {
	hasVariantInfo := !p.Color.IsEmpty() || !p.Size.IsEmpty()

	card := productCard{
		Name:           displayOr(p.Name, PlaceholderName),
		Article:        displayOr(p.Article, PlaceholderArticle),
		Composition:    displayOr(p.Composition, PlaceholderComposition),
		PermitDocs:     displayOr(p.PermitDocs, PlaceholderPermitDocs),
		ProductType:    displayOr(p.ProductType, PlaceholderProductType),
		HasVariantInfo: hasVariantInfo,
	}
	// item type is only meaningful next to a color or size
	if hasVariantInfo {
		card.Color = optional(p.Color)
		card.Size = optional(p.Size)
		card.ItemType = optional(p.ItemType)
	}
	return card
}

// RenderCatalogHTML renders products as a complete HTML catalog page.
// totalItems is shown as supplementary context when it is non-nil and non-zero.
// The output depends only on the arguments.
func RenderCatalogHTML(products []models.Product, totalItems *int) (string, error) {
	return renderCatalog(CatalogTitle, products, totalItems, false)
}

// RenderDebugCatalogHTML renders the unfiltered debug listing: the catalog page
// under its own title, with each product's selection details
func RenderDebugCatalogHTML(products []models.Product, totalItems *int) (string, error) {
	return renderCatalog(DebugCatalogTitle, products, totalItems, true)
}

func renderCatalog(title string, products []models.Product, totalItems *int, debug bool) (string, error) {
	view := catalogView{
		Title: title,
		Count: len(products),
		Cards: make([]productCard, 0, len(products)),
	}
	if totalItems != nil {
		view.TotalItems = *totalItems
	}
	for _, p := range products {
		card := newProductCard(p)
		if debug {
			card.Debug = p.Debug
		}
		view.Cards = append(view.Cards, card)
	}

	var buf bytes.Buffer
	if err := templates.Catalog.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// RenderErrorHTML renders the error page with the given message
func RenderErrorHTML(message string) (string, error) {
	var buf bytes.Buffer
	if err := templates.Error.Execute(&buf, struct{ Message string }{Message: message}); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// DisplayName returns the product name or its placeholder
func DisplayName(name models.Text) string {
	return displayOr(name, PlaceholderName)
}
