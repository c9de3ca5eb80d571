package service

import (
	"context"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"nk-catalog/config"
	"nk-catalog/models"
)

// CategoryResolver picks the national catalog category of a product.
// The local TN VED mapping is consulted before the national catalog API.
type CategoryResolver struct {
	nk       NKServiceInterface
	settings *config.CatalogSettings
}

// NewCategoryResolver creates a new CategoryResolver
func NewCategoryResolver(nk NKServiceInterface, settings *config.CatalogSettings) *CategoryResolver {
	return &CategoryResolver{
		nk:       nk,
		settings: settings,
	}
}

func (r *CategoryResolver) mappingFor(tnved string) []config.CategoryEntry {
	if entries := r.settings.CategoryMapping[tnved]; len(entries) > 0 {
		return entries
	}
	if len(tnved) >= 4 {
		return r.settings.CategoryMapping[tnved[:4]]
	}
	return nil
}

func (r *CategoryResolver) lowPriority(id int) bool {
	return slices.Contains(r.settings.LowPriorityCategories, id)
}

// firstNormal returns the first category that is not low priority, else the first one
func (r *CategoryResolver) firstNormal(ids []int) int {
	for _, id := range ids {
		if !r.lowPriority(id) {
			return id
		}
	}
	return ids[0]
}

// FromMapping looks the code up in the local mapping. With a product type the first
// category whose name contains it wins, preferring normal over low priority ones.
func (r *CategoryResolver) FromMapping(tnved, productType string) (int, bool) {
	entries := r.mappingFor(tnved)
	if len(entries) == 0 {
		return 0, false
	}

	all := make([]int, 0, len(entries))
	for _, e := range entries {
		all = append(all, e.ID)
	}

	productType = strings.ToLower(strings.TrimSpace(productType))
	if productType == "" {
		return r.firstNormal(all), true
	}

	var matches []int
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), productType) {
			matches = append(matches, e.ID)
		}
	}
	if len(matches) > 0 {
		return r.firstNormal(matches), true
	}
	return r.firstNormal(all), true
}

// ChooseFromAPI picks a priority active category, else the first active one, else the first
func (r *CategoryResolver) ChooseFromAPI(cats []models.NKCategory) int {
	if len(cats) == 0 {
		return r.settings.DefaultCategory
	}
	for _, c := range cats {
		if slices.Contains(r.settings.PriorityCategories, c.CatID) && c.Active() {
			return c.CatID
		}
	}
	for _, c := range cats {
		if c.Active() {
			return c.CatID
		}
	}
	return cats[0].CatID
}

// ForTnved resolves a category by TN VED code alone. The default category is
// returned when nothing matches or the national catalog API fails.
func (r *CategoryResolver) ForTnved(ctx context.Context, tnved string) int {
	if id, ok := r.FromMapping(tnved, ""); ok {
		return id
	}
	if tnved == "" {
		return r.settings.DefaultCategory
	}

	cats, err := r.nk.GetCategoriesByTnved(ctx, tnved)
	if err != nil {
		log.Printf("⚠️  ForTnved: %v, using default category %d", err, r.settings.DefaultCategory)
		return r.settings.DefaultCategory
	}
	return r.ChooseFromAPI(cats)
}

// ForProduct resolves a category by TN VED code and product type
func (r *CategoryResolver) ForProduct(ctx context.Context, tnved, productType string) int {
	if tnved != "" && productType != "" {
		if id, ok := r.FromMapping(tnved, productType); ok {
			return id
		}
	}
	if tnved != "" {
		return r.ForTnved(ctx, tnved)
	}

	log.Printf("➡️  No TN VED code, using default category %d", r.settings.DefaultCategory)
	return r.settings.DefaultCategory
}
