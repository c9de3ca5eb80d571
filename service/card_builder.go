package service

import (
	"context"
	"strings"

	"nk-catalog/config"
	"nk-catalog/models"
)

// National catalog attribute ids written by CardBuilder
const (
	attrCountry             = 2630
	attrFullName            = 2478
	attrTrademark           = 2504
	attrTnvedGroup          = 3959
	attrTnvedDetailed       = 13933
	attrProductKind         = 12
	attrColor               = 36
	attrSize                = 35
	attrComposition         = 2483
	attrTechnicalRegulation = 13836
	attrArticle             = 13914
	attrGender              = 14013
	attrPermitDocs          = 23557
)

const (
	countryRussia     = "RU"
	sizeTypeIntl      = "МЕЖДУНАРОДНЫЙ"
	articleValueType  = "Артикул"
	moderationDraft   = 0
	detailedTnvedSize = 10
)

// Gender keywords, checked in order. Female words come first since "women" contains "men".
var genderKeywords = []struct {
	gender   string
	keywords []string
}{
	{gender: "ЖЕНСКИЙ", keywords: []string{"женск", "women", "female"}},
	{gender: "МУЖСКОЙ", keywords: []string{"мужск", "men", "male"}},
	{gender: "ДЕТСКИЙ", keywords: []string{"детск", "kid", "child"}},
}

const genderUnisex = "УНИСЕКС"

// DetermineGender guesses the gender from the product name, "" when the name is empty
func DetermineGender(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	for _, g := range genderKeywords {
		for _, keyword := range g.keywords {
			if strings.Contains(name, keyword) {
				return g.gender
			}
		}
	}
	return genderUnisex
}

// CardBuilder turns catalog products into national catalog cards
type CardBuilder struct {
	resolver *CategoryResolver
	settings *config.CatalogSettings
}

// NewCardBuilder creates a new CardBuilder
func NewCardBuilder(resolver *CategoryResolver, settings *config.CatalogSettings) *CardBuilder {
	return &CardBuilder{
		resolver: resolver,
		settings: settings,
	}
}

// Build resolves the category of a product and fills the card attributes
func (b *CardBuilder) Build(ctx context.Context, p models.Product) models.NKCard {
	tnved := strings.TrimSpace(p.Tnved.String())
	productType := strings.TrimSpace(p.ProductType.String())
	catID := b.resolver.ForProduct(ctx, tnved, productType)
	return b.BuildWithCategory(p, catID)
}

// BuildWithCategory fills the card attributes for an already chosen category
func (b *CardBuilder) BuildWithCategory(p models.Product, catID int) models.NKCard {
	name := strings.TrimSpace(p.Name.String())
	tnved := strings.TrimSpace(p.Tnved.String())

	brand := strings.TrimSpace(p.BrandNK.String())
	if brand == "" {
		brand = b.settings.DefaultBrand
	}

	attrs := []models.NKGoodAttr{
		{AttrID: attrCountry, AttrValue: countryRussia},
		{AttrID: attrFullName, AttrValue: name},
		{AttrID: attrTrademark, AttrValue: brand},
	}

	if tnved != "" {
		group := tnved
		if len(group) > 4 {
			group = group[:4]
		}
		attrs = append(attrs, models.NKGoodAttr{AttrID: attrTnvedGroup, AttrValue: group})
		if len(tnved) == detailedTnvedSize {
			attrs = append(attrs, models.NKGoodAttr{AttrID: attrTnvedDetailed, AttrValue: tnved})
		}
	}

	if kind := strings.TrimSpace(p.ProductType.String()); kind != "" {
		attrs = append(attrs, models.NKGoodAttr{AttrID: attrProductKind, AttrValue: strings.ToUpper(kind)})
	}
	if color := strings.TrimSpace(p.Color.String()); color != "" {
		attrs = append(attrs, models.NKGoodAttr{AttrID: attrColor, AttrValue: strings.ToUpper(color)})
	}
	if size := strings.TrimSpace(p.Size.String()); size != "" {
		attrs = append(attrs, models.NKGoodAttr{AttrID: attrSize, AttrValue: size, AttrValueType: sizeTypeIntl})
	}
	if composition := strings.TrimSpace(p.Composition.String()); composition != "" {
		attrs = append(attrs, models.NKGoodAttr{AttrID: attrComposition, AttrValue: composition})
	}

	attrs = append(attrs, models.NKGoodAttr{AttrID: attrTechnicalRegulation, AttrValue: b.settings.TechnicalRegulation})

	if article := strings.TrimSpace(p.Article.String()); article != "" {
		attrs = append(attrs, models.NKGoodAttr{AttrID: attrArticle, AttrValue: article, AttrValueType: articleValueType})
	}
	if gender := DetermineGender(name); gender != "" {
		attrs = append(attrs, models.NKGoodAttr{AttrID: attrGender, AttrValue: gender})
	}
	if docs := strings.TrimSpace(p.PermitDocs.String()); docs != "" {
		attrs = append(attrs, models.NKGoodAttr{AttrID: attrPermitDocs, AttrValue: docs})
	}

	return models.NKCard{
		IsTechGTIN: true,
		Tnved:      tnved,
		Brand:      brand,
		GoodName:   name,
		Moderation: moderationDraft,
		Categories: []int{catID},
		GoodAttrs:  attrs,
	}
}
