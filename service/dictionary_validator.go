package service

import (
	"context"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"nk-catalog/config"
	"nk-catalog/models"
)

// maxSuggestions caps the dictionary values offered for an unknown color or kind
const maxSuggestions = 5

// DictionaryValidator checks product colors and kinds against the national catalog presets
type DictionaryValidator struct {
	nk       NKServiceInterface
	resolver *CategoryResolver
	settings *config.CatalogSettings
}

// NewDictionaryValidator creates a new DictionaryValidator
func NewDictionaryValidator(nk NKServiceInterface, resolver *CategoryResolver, settings *config.CatalogSettings) *DictionaryValidator {
	return &DictionaryValidator{
		nk:       nk,
		resolver: resolver,
		settings: settings,
	}
}

// Ensure DictionaryValidator implements ProductValidatorInterface
var _ ProductValidatorInterface = (*DictionaryValidator)(nil)

// presetSet is an upper-cased dictionary; ok is false when it could not be loaded
type presetSet struct {
	values map[string]struct{}
	list   []string
	ok     bool
}

func (p presetSet) contains(value string) bool {
	_, found := p.values[strings.ToUpper(strings.TrimSpace(value))]
	return found
}

// validation holds what one Validate call has fetched
type validation struct {
	v          *DictionaryValidator
	ctx        context.Context
	attributes map[int][]models.NKAttribute // nil entry when the request failed
	presets    map[[2]int]presetSet
	categories map[string]int
}

func (run *validation) categoryAttributes(catID int) ([]models.NKAttribute, bool) {
	if attrs, found := run.attributes[catID]; found {
		return attrs, attrs != nil
	}
	attrs, err := run.v.nk.GetAttributes(run.ctx, catID, AttrTypeAll)
	if err != nil {
		log.Printf("⚠️  Attributes of category %d unavailable: %v", catID, err)
		run.attributes[catID] = nil
		return nil, false
	}
	if attrs == nil {
		attrs = []models.NKAttribute{}
	}
	run.attributes[catID] = attrs
	return attrs, true
}

func (run *validation) preset(catID, attrID int) presetSet {
	key := [2]int{catID, attrID}
	if p, found := run.presets[key]; found {
		return p
	}

	var p presetSet
	if attrs, ok := run.categoryAttributes(catID); ok {
		p = run.v.loadPreset(run.ctx, attrs, attrID)
	}
	run.presets[key] = p
	return p
}

func (run *validation) kindCategory(tnved string) int {
	if tnved == "" {
		return run.v.settings.KindPresetCategory
	}
	if id, found := run.categories[tnved]; found {
		return id
	}
	id := run.v.resolver.ForTnved(run.ctx, tnved)
	run.categories[tnved] = id
	return id
}

// Validate fills the color and product type checks of every product in place.
// Presets are fetched at most once per call. A value whose preset cannot be
// loaded is left unchecked.
func (v *DictionaryValidator) Validate(ctx context.Context, products []models.Product) {
	run := &validation{
		v:          v,
		ctx:        ctx,
		attributes: make(map[int][]models.NKAttribute),
		presets:    make(map[[2]int]presetSet),
		categories: make(map[string]int),
	}

	for i := range products {
		p := &products[i]

		if !p.Color.IsEmpty() {
			if preset := run.preset(v.settings.ColorPresetCategory, attrColor); preset.ok {
				valid := preset.contains(p.Color.String())
				p.ColorValid = &valid
				if !valid {
					p.ColorSuggestions = SimilarValues(p.Color.String(), preset.list)
				}
			}
		}

		if !p.ProductType.IsEmpty() {
			catID := run.kindCategory(strings.TrimSpace(p.Tnved.String()))
			if preset := run.preset(catID, attrProductKind); preset.ok {
				valid := preset.contains(p.ProductType.String())
				p.ProductTypeValid = &valid
				if !valid {
					p.ProductTypeSuggestions = SimilarValues(p.ProductType.String(), preset.list)
				}
			}
		}
	}
}

// loadPreset reads the allowed values of attrID, inline or from its preset URL.
// A category without the attribute yields an empty dictionary.
func (v *DictionaryValidator) loadPreset(ctx context.Context, attrs []models.NKAttribute, attrID int) presetSet {
	idx := slices.IndexFunc(attrs, func(a models.NKAttribute) bool { return a.AttrID == attrID })
	if idx < 0 {
		return newPresetSet(nil)
	}

	attr := attrs[idx]
	if len(attr.AttrPreset) > 0 {
		return newPresetSet(attr.AttrPreset)
	}
	if attr.PresetURL == "" {
		return newPresetSet(nil)
	}

	values, err := v.nk.GetPreset(ctx, attr.PresetURL)
	if err != nil {
		log.Printf("⚠️  Preset of attribute %d unavailable: %v", attrID, err)
		return presetSet{}
	}
	return newPresetSet(values)
}

func newPresetSet(values []string) presetSet {
	set := presetSet{values: make(map[string]struct{}, len(values)), ok: true}
	for _, value := range values {
		upper := strings.ToUpper(strings.TrimSpace(value))
		if _, dup := set.values[upper]; dup || upper == "" {
			continue
		}
		set.values[upper] = struct{}{}
		set.list = append(set.list, upper)
	}
	return set
}

// SimilarValues returns up to five dictionary values that contain the value or are
// contained in it, case-insensitively, in sorted order
func SimilarValues(value string, preset []string) []string {
	needle := strings.ToLower(strings.TrimSpace(value))
	if needle == "" {
		return nil
	}

	var similar []string
	for _, candidate := range preset {
		lower := strings.ToLower(candidate)
		if strings.Contains(lower, needle) || strings.Contains(needle, lower) {
			similar = append(similar, candidate)
		}
	}

	slices.Sort(similar)
	similar = slices.Compact(similar)
	if len(similar) > maxSuggestions {
		similar = similar[:maxSuggestions]
	}
	return similar
}
