package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"nk-catalog/config"
	"nk-catalog/models"
	"nk-catalog/utils"
)

// Analyze loads the first limit assortment rows and reports how each maps onto catalog fields
func (s *AssortmentService) Analyze(ctx context.Context, limit int) (*models.AssortmentAnalysis, error) {
	page, err := s.moySklad.GetAssortment(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load assortment: %w", err)
	}

	analysis := AnalyzeAssortment(page.Rows, s.settings)
	log.Printf("🔎 Analyze: %d products, %d variants, %d bundles, %d services",
		len(analysis.Products), len(analysis.Variants), len(analysis.Bundles), len(analysis.Services))
	return analysis, nil
}

// AnalyzeAssortment groups raw rows by entity type. Rows of any other type are skipped.
func AnalyzeAssortment(items []models.AssortmentItem, settings *config.CatalogSettings) *models.AssortmentAnalysis {
	analysis := &models.AssortmentAnalysis{
		Products: []models.AnalysisItem{},
		Variants: []models.AnalysisItem{},
		Bundles:  []models.AnalysisItem{},
		Services: []models.AnalysisItem{},
	}

	for _, item := range items {
		info := analyzeItem(item, settings)
		switch item.Meta.Type {
		case models.EntityTypeProduct:
			analysis.Products = append(analysis.Products, info)
		case models.EntityTypeVariant:
			analysis.Variants = append(analysis.Variants, info)
		case models.EntityTypeBundle:
			analysis.Bundles = append(analysis.Bundles, info)
		case models.EntityTypeService:
			analysis.Services = append(analysis.Services, info)
		}
	}
	return analysis
}

func analyzeItem(item models.AssortmentItem, settings *config.CatalogSettings) models.AnalysisItem {
	info := models.AnalysisItem{
		Name:           item.Name,
		Type:           item.Meta.Type,
		Article:        item.Article,
		Tnved:          item.Tnved,
		Categories:     item.Categories,
		HasVariants:    item.VariantsCount > 0,
		VariantsCount:  item.VariantsCount,
		TnvedGroup:     utils.AttributeByID(item.Attributes, settings.TnvedGroupAttrID),
		TnvedDetailed:  utils.AttributeByID(item.Attributes, settings.DetailedTnvedAttrID),
		ExtractedTnved: ExtractTnved(models.CatalogEntry{Item: item}, settings),
	}
	if info.Categories == nil {
		info.Categories = []models.CategoryRef{}
	}

	if item.Meta.Type == models.EntityTypeVariant {
		if item.Product != nil {
			info.ParentProduct = &models.ParentRef{Href: item.Product.Meta.Href, Name: item.Product.Name}
		}
		info.Characteristics = make([]models.Characteristic, 0, len(item.Characteristics))
		for _, char := range item.Characteristics {
			info.Characteristics = append(info.Characteristics, models.Characteristic{Name: char.Name, Value: char.Value})
		}
	}

	for _, attr := range item.Attributes {
		if attr.Name == settings.Attributes.NationalCatalog {
			info.NationalCatalog = attr.Value
			break
		}
	}
	return info
}
