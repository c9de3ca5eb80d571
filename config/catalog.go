package config

import (
	_ "embed"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// AttributeNames are the МойСклад custom attribute names the catalog reads
type AttributeNames struct {
	NationalCatalog string `yaml:"national_catalog"`
	Composition     string `yaml:"composition"`
	PermitDocs      string `yaml:"permit_docs"`
	BrandNK         string `yaml:"brand_nk"`
	ProductType     string `yaml:"product_type"`
	Color           string `yaml:"color"`
	Size            string `yaml:"size"`
}

// CharacteristicKeywords are matched against lower-cased characteristic names
type CharacteristicKeywords struct {
	Color []string `yaml:"color"`
	Size  []string `yaml:"size"`
}

// CategoryEntry is one national catalog category candidate for a TN VED code
type CategoryEntry struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// CatalogSettings holds the domain constants of the national catalog export
type CatalogSettings struct {
	Attributes            AttributeNames             `yaml:"attributes"`
	Characteristics       CharacteristicKeywords     `yaml:"characteristics"`
	CategoryAttribute     string                     `yaml:"category_attribute"`
	TnvedGroupAttrID      int                        `yaml:"tnved_group_attr_id"`
	DetailedTnvedAttrID   int                        `yaml:"detailed_tnved_attr_id"`
	FullTnvedCategories   []int                      `yaml:"full_tnved_categories"`
	DefaultCategory       int                        `yaml:"default_category"`
	PriorityCategories    []int                      `yaml:"priority_categories"`
	LowPriorityCategories []int                      `yaml:"low_priority_categories"`
	ColorPresetCategory   int                        `yaml:"color_preset_category"`
	KindPresetCategory    int                        `yaml:"kind_preset_category"`
	DefaultBrand          string                     `yaml:"default_brand"`
	TechnicalRegulation   string                     `yaml:"technical_regulation"`
	CategoryMapping       map[string][]CategoryEntry `yaml:"category_mapping"`
}

// DefaultCatalogSettings parses the embedded catalog.yaml
func DefaultCatalogSettings() (*CatalogSettings, error) {
	return ParseCatalogSettings(defaultCatalogYAML)
}

// LoadCatalogSettings reads settings from path, or the embedded defaults when path is empty
func LoadCatalogSettings(path string) (*CatalogSettings, error) {
	if path == "" {
		return DefaultCatalogSettings()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog settings %s: %w", path, err)
	}
	log.Printf("📄 Catalog settings loaded from %s", path)
	return ParseCatalogSettings(data)
}

// ParseCatalogSettings decodes YAML settings and checks the required values
func ParseCatalogSettings(data []byte) (*CatalogSettings, error) {
	var settings CatalogSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse catalog settings: %w", err)
	}

	if settings.Attributes.NationalCatalog == "" {
		return nil, fmt.Errorf("catalog settings: attributes.national_catalog is required")
	}
	if settings.DefaultCategory <= 0 {
		return nil, fmt.Errorf("catalog settings: default_category must be greater than 0")
	}
	return &settings, nil
}

