package models

// Product is a single catalog record ready for display.
// Every field is optional; the catalog view substitutes placeholders.
type Product struct {
	Name        Text `json:"name"`
	Article     Text `json:"article"`
	Composition Text `json:"composition"`
	PermitDocs  Text `json:"permit_docs"`
	ProductType Text `json:"product_type"`
	Color       Text `json:"color"`
	Size        Text `json:"size"`
	ItemType    Text `json:"item_type"`
	// Used for national catalog cards, not shown in the catalog view
	BrandNK Text `json:"brand_nk,omitempty"`
	Tnved   Text `json:"tnved,omitempty"`

	// National catalog dictionary checks; nil when the value was not checked
	ColorValid             *bool    `json:"color_valid,omitempty"`
	ColorSuggestions       []string `json:"color_suggestions,omitempty"`
	ProductTypeValid       *bool    `json:"product_type_valid,omitempty"`
	ProductTypeSuggestions []string `json:"product_type_suggestions,omitempty"`

	// Set only by the unfiltered debug listing
	Debug *ProductDebug `json:"debug,omitempty"`
}

// ProductDebug explains why a raw row was or was not selected for the catalog
type ProductDebug struct {
	NationalCatalog string `json:"national_catalog"`
	AttributesCount int    `json:"attributes_count"`
}

// CatalogPage is the input of a catalog render.
// TotalItems counts every upstream row, so it may exceed len(Products).
type CatalogPage struct {
	Products   []Product `json:"products"`
	TotalItems *int      `json:"total_items,omitempty"`
}

// ProductsResponse is the JSON form of the catalog served by /api/products
type ProductsResponse struct {
	Products      []Product `json:"products"`
	TotalFiltered int       `json:"total_filtered"`
	TotalItems    int       `json:"total_items"`
}
