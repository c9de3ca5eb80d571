package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"nk-catalog/config"
	"nk-catalog/models"
	"nk-catalog/utils"
)

// AssortmentService turns МойСклад assortment rows into catalog products
// Implements ProductSourceInterface
type AssortmentService struct {
	moySklad MoySkladServiceInterface
	settings *config.CatalogSettings
}

// NewAssortmentService creates a new AssortmentService
func NewAssortmentService(moySklad MoySkladServiceInterface, settings *config.CatalogSettings) *AssortmentService {
	return &AssortmentService{
		moySklad: moySklad,
		settings: settings,
	}
}

// Ensure AssortmentService implements ProductSourceInterface
var _ ProductSourceInterface = (*AssortmentService)(nil)

// CatalogProducts loads the whole assortment and extracts the entries marked for the national catalog.
// TotalItems is the number of raw assortment rows.
func (s *AssortmentService) CatalogProducts(ctx context.Context) (models.CatalogPage, error) {
	items, err := s.moySklad.GetAllAssortment(ctx)
	if err != nil {
		return models.CatalogPage{}, fmt.Errorf("failed to load assortment: %w", err)
	}

	entries := SelectCatalogEntries(items, s.settings)
	products := make([]models.Product, 0, len(entries))
	for _, entry := range entries {
		products = append(products, ExtractProduct(entry, s.settings))
	}

	total := len(items)
	log.Printf("🗂️  CatalogProducts: %d products from %d assortment rows", len(products), total)
	return models.CatalogPage{Products: products, TotalItems: &total}, nil
}

// AllProducts extracts the first limit rows without selection, for debugging
func (s *AssortmentService) AllProducts(ctx context.Context, limit int) (models.CatalogPage, error) {
	page, err := s.moySklad.GetAssortment(ctx, limit, 0)
	if err != nil {
		return models.CatalogPage{}, fmt.Errorf("failed to load assortment: %w", err)
	}

	products := make([]models.Product, 0, len(page.Rows))
	for _, item := range page.Rows {
		product := ExtractProduct(models.CatalogEntry{Item: item}, s.settings)
		product.Debug = &models.ProductDebug{
			NationalCatalog: nationalCatalogText(item, s.settings),
			AttributesCount: len(item.Attributes),
		}
		products = append(products, product)
	}

	total := len(page.Rows)
	return models.CatalogPage{Products: products, TotalItems: &total}, nil
}

// nationalCatalogText shows the raw national catalog flag of a row
func nationalCatalogText(item models.AssortmentItem, settings *config.CatalogSettings) string {
	for _, attr := range item.Attributes {
		if attr.Name == settings.Attributes.NationalCatalog {
			if value := models.TextFromJSON(attr.Value); value != "" {
				return value
			}
			break
		}
	}
	return "не задан"
}

// ProductAt returns the index-th product of the catalog
func (s *AssortmentService) ProductAt(ctx context.Context, index int) (models.Product, error) {
	catalog, err := s.CatalogProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}

	if index < 0 || index >= len(catalog.Products) {
		return models.Product{}, fmt.Errorf("%w: index %d of %d", ErrProductNotFound, index, len(catalog.Products))
	}
	return catalog.Products[index], nil
}

// SelectCatalogEntries keeps products flagged for the national catalog, in appearance order.
// A product without variants yields itself; a product with variants yields only its variants.
func SelectCatalogEntries(items []models.AssortmentItem, settings *config.CatalogSettings) []models.CatalogEntry {
	var products []models.AssortmentItem
	variantsByProduct := make(map[string][]models.AssortmentItem)

	for _, item := range items {
		switch item.Meta.Type {
		case models.EntityTypeProduct:
			products = append(products, item)
		case models.EntityTypeVariant:
			if item.Product == nil {
				continue
			}
			parentID := utils.LastPathSegment(item.Product.Meta.Href)
			variantsByProduct[parentID] = append(variantsByProduct[parentID], item)
		}
	}

	var entries []models.CatalogEntry
	for i := range products {
		product := &products[i]
		if !utils.AttributeFlag(product.Attributes, settings.Attributes.NationalCatalog) {
			continue
		}

		variants := variantsByProduct[product.ID]
		if len(variants) == 0 {
			entries = append(entries, models.CatalogEntry{Item: *product})
			continue
		}
		for _, variant := range variants {
			entries = append(entries, models.CatalogEntry{Item: variant, Parent: product})
		}
	}

	log.Debugf("SelectCatalogEntries: %d products, %d entries selected", len(products), len(entries))
	return entries
}

// inheritedAttribute returns the item's non-empty attribute, else the parent's
func inheritedAttribute(entry models.CatalogEntry, name string) string {
	if value, ok := utils.AttributeText(entry.Item.Attributes, name); ok && value != "" {
		return value
	}
	if entry.Parent != nil {
		value, _ := utils.AttributeText(entry.Parent.Attributes, name)
		return value
	}
	return ""
}

// characteristicValue returns the first characteristic whose lower-cased name contains a keyword
func characteristicValue(chars []models.Characteristic, keywords []string) string {
	for _, char := range chars {
		name := strings.ToLower(char.Name)
		value := utils.PlainText(models.TextFromJSON(char.Value))
		if value == "" {
			continue
		}
		for _, keyword := range keywords {
			if strings.Contains(name, keyword) {
				return value
			}
		}
	}
	return ""
}

// variantAttribute looks in the characteristics, then the item attributes, then the parent
func variantAttribute(entry models.CatalogEntry, keywords []string, name string) string {
	if value := characteristicValue(entry.Item.Characteristics, keywords); value != "" {
		return value
	}
	if value, _ := utils.AttributeText(entry.Item.Attributes, name); value != "" {
		return value
	}
	if entry.Parent != nil {
		value, _ := utils.AttributeText(entry.Parent.Attributes, name)
		return value
	}
	return ""
}

// ExtractProduct builds the display record of an entry, inheriting missing values from the parent
func ExtractProduct(entry models.CatalogEntry, settings *config.CatalogSettings) models.Product {
	attrs := settings.Attributes

	article := entry.Item.Article.String()
	if strings.TrimSpace(article) == "" && entry.Parent != nil {
		article = entry.Parent.Article.String()
	}

	return models.Product{
		Name:        models.Text(utils.CleanValue(entry.Item.Name.String())),
		Article:     models.Text(utils.CleanValue(article)),
		Composition: models.Text(utils.CleanValue(inheritedAttribute(entry, attrs.Composition))),
		PermitDocs:  models.Text(utils.CleanValue(inheritedAttribute(entry, attrs.PermitDocs))),
		ProductType: models.Text(utils.CleanValue(inheritedAttribute(entry, attrs.ProductType))),
		Color:       models.Text(utils.CleanValue(variantAttribute(entry, settings.Characteristics.Color, attrs.Color))),
		Size:        models.Text(utils.CleanValue(variantAttribute(entry, settings.Characteristics.Size, attrs.Size))),
		ItemType:    models.Text(entry.Item.Meta.Type),
		BrandNK:     models.Text(utils.CleanValue(inheritedAttribute(entry, attrs.BrandNK))),
		Tnved:       models.Text(utils.CleanValue(ExtractTnved(entry, settings))),
	}
}

// ExtractTnved returns the TN VED code of an entry. Categories that require the
// full code use the detailed attribute; otherwise the item or parent tnved field,
// then the TN VED group attribute.
func ExtractTnved(entry models.CatalogEntry, settings *config.CatalogSettings) string {
	attrs := slices.Clone(entry.Item.Attributes)
	categories := slices.Clone(entry.Item.Categories)
	if entry.Parent != nil {
		attrs = append(attrs, entry.Parent.Attributes...)
		categories = append(categories, entry.Parent.Categories...)
	}

	for _, attr := range attrs {
		if attr.Name != settings.CategoryAttribute && attr.AttrName != settings.CategoryAttribute {
			continue
		}
		raw := attr.Value
		if len(raw) == 0 {
			raw = attr.AttrValue
		}
		if catID := utils.CategoryIDFromValue(raw); catID != 0 {
			categories = append(categories, models.CategoryRef{CatID: catID})
		}
	}

	requiresFull := slices.ContainsFunc(categories, func(c models.CategoryRef) bool {
		return slices.Contains(settings.FullTnvedCategories, c.CatID)
	})
	if requiresFull {
		return utils.AttributeByID(attrs, settings.DetailedTnvedAttrID)
	}

	if tnved := utils.CleanValue(entry.Item.Tnved.String()); tnved != "" {
		return tnved
	}
	if entry.Parent != nil {
		if tnved := utils.CleanValue(entry.Parent.Tnved.String()); tnved != "" {
			return tnved
		}
	}
	return utils.AttributeByID(attrs, settings.TnvedGroupAttrID)
}
