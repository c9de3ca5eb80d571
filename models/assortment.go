package models

import "encoding/json"

// Assortment entity types returned by МойСклад in meta.type
const (
	EntityTypeProduct = "product"
	EntityTypeVariant = "variant"
	EntityTypeBundle  = "bundle"
	EntityTypeService = "service"
)

// EntityMeta is the meta block attached to every МойСклад entity
type EntityMeta struct {
	Href string `json:"href"`
	Type string `json:"type"`
}

// EntityRef references another entity (e.g. the parent product of a variant)
type EntityRef struct {
	Meta EntityMeta `json:"meta"`
	Name Text       `json:"name,omitempty"`
}

// Attribute is a custom attribute of an assortment row.
// Value may be a string, number, boolean or a custom-entity object.
type Attribute struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Value     json.RawMessage `json:"value,omitempty"`
	AttrID    int             `json:"attr_id,omitempty"`
	AttrName  string          `json:"attr_name,omitempty"`
	AttrValue json.RawMessage `json:"attr_value,omitempty"`
}

// Characteristic is a variant characteristic such as color or size
type Characteristic struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value,omitempty"`
}

// CategoryRef is a national catalog category attached to a row
type CategoryRef struct {
	CatID int `json:"cat_id"`
}

// AssortmentItem is one row of /entity/assortment
type AssortmentItem struct {
	ID              string           `json:"id"`
	Name            Text             `json:"name"`
	Article         Text             `json:"article,omitempty"`
	Meta            EntityMeta       `json:"meta"`
	Product         *EntityRef       `json:"product,omitempty"`
	Attributes      []Attribute      `json:"attributes,omitempty"`
	Characteristics []Characteristic `json:"characteristics,omitempty"`
	Tnved           Text             `json:"tnved,omitempty"`
	Categories      []CategoryRef    `json:"categories,omitempty"`
	VariantsCount   int              `json:"variantsCount,omitempty"`
}

// AssortmentResponse is a single page of /entity/assortment
type AssortmentResponse struct {
	Meta struct {
		Size   int `json:"size"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	} `json:"meta"`
	Rows []AssortmentItem `json:"rows"`
}

// CatalogEntry is an assortment row selected for the national catalog.
// Parent is set for variants and points to the owning product.
type CatalogEntry struct {
	Item   AssortmentItem
	Parent *AssortmentItem
}

// DebugItem is the raw attribute dump served by /debug
type DebugItem struct {
	Name            Text             `json:"name"`
	Type            string           `json:"type"`
	Attributes      []Attribute      `json:"attributes"`
	Characteristics []Characteristic `json:"characteristics"`
}

// ConnectionReport is the response of /test
type ConnectionReport struct {
	Status       string   `json:"status,omitempty"`
	Error        string   `json:"error,omitempty"`
	TokenPresent bool     `json:"token_present"`
	Connection   string   `json:"connection,omitempty"`
	SampleCount  int      `json:"sample_count,omitempty"`
	SampleItems  []string `json:"sample_items,omitempty"`
}

// ParentRef points a variant at its product
type ParentRef struct {
	Href string `json:"href"`
	Name Text   `json:"name,omitempty"`
}

// AnalysisItem describes how one raw assortment row maps onto catalog fields
type AnalysisItem struct {
	Name            Text             `json:"name"`
	Type            string           `json:"type"`
	Article         Text             `json:"article"`
	Tnved           Text             `json:"tnved"`
	Categories      []CategoryRef    `json:"categories"`
	HasVariants     bool             `json:"has_variants"`
	VariantsCount   int              `json:"variants_count"`
	ParentProduct   *ParentRef       `json:"parent_product,omitempty"`
	Characteristics []Characteristic `json:"characteristics,omitempty"`
	NationalCatalog json.RawMessage  `json:"national_catalog,omitempty"`
	TnvedGroup      string           `json:"tnved_group,omitempty"`
	TnvedDetailed   string           `json:"tnved_detailed,omitempty"`
	ExtractedTnved  string           `json:"extracted_tnved"`
}

// AssortmentAnalysis is the response of /analyze, rows grouped by entity type
type AssortmentAnalysis struct {
	Products []AnalysisItem `json:"products"`
	Variants []AnalysisItem `json:"variants"`
	Bundles  []AnalysisItem `json:"bundles"`
	Services []AnalysisItem `json:"services"`
}
