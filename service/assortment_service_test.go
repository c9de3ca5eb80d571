package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nk-catalog/models"
)

const productHref = "https://api.moysklad.ru/api/remap/1.2/entity/product/"

func attr(name, value string) models.Attribute {
	return models.Attribute{Name: name, Value: json.RawMessage(value)}
}

func product(id, name string, flag string, attrs ...models.Attribute) models.AssortmentItem {
	if flag != "" {
		attrs = append(attrs, attr("Для нац.каталога", flag))
	}
	return models.AssortmentItem{
		ID:         id,
		Name:       models.Text(name),
		Meta:       models.EntityMeta{Type: models.EntityTypeProduct, Href: productHref + id},
		Attributes: attrs,
	}
}

func variant(id, name, parentID string, chars ...models.Characteristic) models.AssortmentItem {
	return models.AssortmentItem{
		ID:              id,
		Name:            models.Text(name),
		Meta:            models.EntityMeta{Type: models.EntityTypeVariant},
		Product:         &models.EntityRef{Meta: models.EntityMeta{Href: productHref + parentID, Type: models.EntityTypeProduct}},
		Characteristics: chars,
	}
}

func char(name, value string) models.Characteristic {
	return models.Characteristic{Name: name, Value: json.RawMessage(value)}
}

func entryNames(entries []models.CatalogEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Item.Name.String())
	}
	return names
}

func TestSelectCatalogEntries(t *testing.T) {
	items := []models.AssortmentItem{
		variant("v1", "Футболка красная", "p1"),
		product("p1", "Футболка", `true`),
		product("p2", "Шорты", `"нет"`),
		variant("v2", "Шорты S", "p2"),
		product("p3", "Кепка", `"Да"`),
		variant("v3", "Футболка синяя", "p1"),
		product("p4", "Шарф", ""),
		product("p5", "Ремень", `{"name":"yes"}`),
		{ID: "s1", Name: "Доставка", Meta: models.EntityMeta{Type: models.EntityTypeService}},
	}

	entries := SelectCatalogEntries(items, testSettings(t))

	assert.Equal(t, []string{"Футболка красная", "Футболка синяя", "Кепка", "Ремень"}, entryNames(entries))
	require.NotNil(t, entries[0].Parent)
	assert.Equal(t, "p1", entries[0].Parent.ID)
	assert.Nil(t, entries[2].Parent)
}

func TestSelectCatalogEntries_Empty(t *testing.T) {
	assert.Empty(t, SelectCatalogEntries(nil, testSettings(t)))
}

func TestExtractProduct_Inheritance(t *testing.T) {
	parent := product("p1", "Футболка", `true`,
		attr("Состав", `"хлопок"`),
		attr("Разрешительные документы", `"<b>Декларация</b>"`),
		attr("Бренд НК", `{"name":"МойБренд"}`),
		attr("Вид товара", `"Футболки"`),
		attr("Цвет", `"белый"`),
		attr("Размер", `"L"`),
	)
	parent.Article = "ART-1"
	parent.Tnved = "6109"

	v := variant("v1", "Футболка (красный)", "p1", char("Цвет товара", `"красный"`))
	v.Attributes = []models.Attribute{attr("Состав", `"лён"`), attr("Вид товара", `""`)}

	got := ExtractProduct(models.CatalogEntry{Item: v, Parent: &parent}, testSettings(t))

	assert.Equal(t, models.Product{
		Name:        "Футболка (красный)",
		Article:     "ART-1",
		Composition: "лён",
		PermitDocs:  "Декларация",
		ProductType: "Футболки",
		Color:       "красный",
		Size:        "L",
		ItemType:    models.EntityTypeVariant,
		BrandNK:     "МойБренд",
		Tnved:       "6109",
	}, got)
}

func TestExtractProduct_ClearsEmptyMarkers(t *testing.T) {
	item := product("p1", "None", `true`,
		attr("Состав", `"nan"`),
		attr("Разрешительные документы", `false`),
		attr("Цвет", `"None"`),
	)
	item.Article = "  "

	got := ExtractProduct(models.CatalogEntry{Item: item}, testSettings(t))

	assert.True(t, got.Name.IsEmpty())
	assert.True(t, got.Article.IsEmpty())
	assert.True(t, got.Composition.IsEmpty())
	assert.True(t, got.PermitDocs.IsEmpty())
	assert.True(t, got.Color.IsEmpty())
	assert.Equal(t, models.Text(models.EntityTypeProduct), got.ItemType)
}

func TestExtractTnved(t *testing.T) {
	settings := testSettings(t)

	detailed := models.Attribute{AttrID: 13933, Value: json.RawMessage(`"6403990000"`)}
	group := models.Attribute{AttrID: 3959, Value: json.RawMessage(`"6403"`)}

	tests := []struct {
		name  string
		entry models.CatalogEntry
		want  string
	}{
		{
			name: "full code category uses detailed attribute",
			entry: models.CatalogEntry{Item: models.AssortmentItem{
				Tnved:      "6403",
				Categories: []models.CategoryRef{{CatID: 30717}},
				Attributes: []models.Attribute{group, detailed},
			}},
			want: "6403990000",
		},
		{
			name: "category from attribute value",
			entry: models.CatalogEntry{Item: models.AssortmentItem{
				Attributes: []models.Attribute{
					{Name: "Категория", Value: json.RawMessage(`{"cat_id":30717}`)},
					detailed,
				},
			}},
			want: "6403990000",
		},
		{
			name: "parent category and attributes",
			entry: models.CatalogEntry{
				Item:   models.AssortmentItem{Tnved: "6403"},
				Parent: &models.AssortmentItem{Categories: []models.CategoryRef{{CatID: 30717}}, Attributes: []models.Attribute{detailed}},
			},
			want: "6403990000",
		},
		{
			name:  "item tnved field",
			entry: models.CatalogEntry{Item: models.AssortmentItem{Tnved: "6109", Attributes: []models.Attribute{group}}},
			want:  "6109",
		},
		{
			name: "parent tnved field",
			entry: models.CatalogEntry{
				Item:   models.AssortmentItem{},
				Parent: &models.AssortmentItem{Tnved: "6110"},
			},
			want: "6110",
		},
		{
			name:  "group attribute",
			entry: models.CatalogEntry{Item: models.AssortmentItem{Attributes: []models.Attribute{group}}},
			want:  "6403",
		},
		{
			name:  "nothing",
			entry: models.CatalogEntry{Item: models.AssortmentItem{}},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTnved(tt.entry, settings))
		})
	}
}

func TestAssortmentService_CatalogProducts(t *testing.T) {
	ms := &mockMoySklad{}
	ms.On("GetAllAssortment", mock.Anything).Return([]models.AssortmentItem{
		product("p1", "Кепка", `true`),
		product("p2", "Шарф", `false`),
		{ID: "s1", Meta: models.EntityMeta{Type: models.EntityTypeService}},
	}, nil)

	svc := NewAssortmentService(ms, testSettings(t))
	page, err := svc.CatalogProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, page.Products, 1)
	assert.Equal(t, models.Text("Кепка"), page.Products[0].Name)
	require.NotNil(t, page.TotalItems)
	assert.Equal(t, 3, *page.TotalItems)
}

func TestAssortmentService_CatalogProducts_Error(t *testing.T) {
	ms := &mockMoySklad{}
	ms.On("GetAllAssortment", mock.Anything).Return(nil, ErrUnauthorized)

	_, err := NewAssortmentService(ms, testSettings(t)).CatalogProducts(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAssortmentService_AllProducts(t *testing.T) {
	ms := &mockMoySklad{}
	ms.On("GetAssortment", mock.Anything, 20, 0).Return(&models.AssortmentResponse{Rows: []models.AssortmentItem{
		product("p1", "Кепка", `false`, attr("Состав", `"хлопок"`)),
		variant("v1", "Кепка M", "p1", char("Размер", `"M"`)),
	}}, nil)

	page, err := NewAssortmentService(ms, testSettings(t)).AllProducts(context.Background(), 20)
	require.NoError(t, err)

	require.Len(t, page.Products, 2)
	assert.Equal(t, models.Text("M"), page.Products[1].Size)
	assert.Equal(t, 2, *page.TotalItems)
	assert.Equal(t, &models.ProductDebug{NationalCatalog: "Нет", AttributesCount: 2}, page.Products[0].Debug)
	assert.Equal(t, &models.ProductDebug{NationalCatalog: "не задан", AttributesCount: 0}, page.Products[1].Debug)
}

func TestAssortmentService_ProductAt(t *testing.T) {
	ms := &mockMoySklad{}
	ms.On("GetAllAssortment", mock.Anything).Return([]models.AssortmentItem{
		product("p1", "Кепка", `true`),
		product("p2", "Ремень", `true`),
	}, nil)
	svc := NewAssortmentService(ms, testSettings(t))

	p, err := svc.ProductAt(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.Text("Ремень"), p.Name)

	for _, index := range []int{-1, 2} {
		_, err = svc.ProductAt(context.Background(), index)
		assert.True(t, errors.Is(err, ErrProductNotFound))
	}
}
