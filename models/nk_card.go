package models

import "encoding/json"

// NKGoodAttr is one attribute of a national catalog card
type NKGoodAttr struct {
	AttrID        int    `json:"attr_id"`
	AttrValue     string `json:"attr_value"`
	AttrValueType string `json:"attr_value_type,omitempty"`
}

// NKCard is the payload of POST /v3/feed
type NKCard struct {
	IsTechGTIN bool         `json:"is_tech_gtin"`
	Tnved      string       `json:"tnved"`
	Brand      string       `json:"brand"`
	GoodName   string       `json:"good_name"`
	Moderation int          `json:"moderation"` // 0 = draft
	Categories []int        `json:"categories"`
	GoodAttrs  []NKGoodAttr `json:"good_attrs"`
}

// NKCategory is a category returned by /v3/categories
type NKCategory struct {
	CatID          int    `json:"cat_id"`
	CatName        string `json:"cat_name,omitempty"`
	CategoryActive *bool  `json:"category_active,omitempty"`
}

// Active treats a missing category_active flag as active
func (c NKCategory) Active() bool {
	return c.CategoryActive == nil || *c.CategoryActive
}

// NKAttribute is an attribute definition returned by /v3/attributes
type NKAttribute struct {
	AttrID   int    `json:"attr_id"`
	AttrName string `json:"attr_name"`
	AttrType string `json:"attr_type,omitempty"`
	// Allowed values, inline or behind PresetURL
	AttrPreset []string `json:"attr_preset,omitempty"`
	PresetURL  string   `json:"preset_url,omitempty"`
}

// FeedResult is the result block of a successful POST /v3/feed
type FeedResult struct {
	FeedID Text `json:"feed_id"`
}

// NKPreview is the response of /nk_preview/{index}
type NKPreview struct {
	ProductData Product `json:"product_data"`
	NKCardData  NKCard  `json:"nk_card_data"`
	CategoryID  int     `json:"category_id"`
}

// FeedStatus is the response of /check_feed_status/{feed_id}
type FeedStatus struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// CategoryDebug is the response of /debug/categories/{tnved}
type CategoryDebug struct {
	Tnved              string        `json:"tnved"`
	Categories         []NKCategory  `json:"categories"`
	SelectedCategory   int           `json:"selected_category"`
	RequiredAttributes []NKAttribute `json:"required_attributes_sample"`
}
