package fieldresolve_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"storefront/internal/fieldresolve"
)

func TestResolve_String(t *testing.T) {
	paths := []string{"name", "product_name", "product.name", "title"}

	tests := []struct {
		name   string
		record string
		want   string
	}{
		{"top_level", `{"name":"Kurta"}`, "Kurta"},
		{"fallback_key", `{"product_name":"Saree"}`, "Saree"},
		{"nested", `{"product":{"name":"Dupatta"}}`, "Dupatta"},
		{"blank_skipped", `{"name":"  ","title":"Lehenga"}`, "Lehenga"},
		{"null_skipped", `{"name":null,"product":{"name":"Shawl"}}`, "Shawl"},
		{"priority_order", `{"title":"B","name":"A"}`, "A"},
		{"numeric_name", `{"name":42}`, "42"},
		{"missing", `{"sku":"x"}`, "Unnamed"},
		{"object_value", `{"name":{"en":"x"}}`, "Unnamed"},
		{"not_object", `[1,2]`, "Unnamed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldresolve.Resolve(gjson.Parse(tt.record), paths, fieldresolve.String, "Unnamed")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Amount(t *testing.T) {
	paths := []string{"price", "product.price", "unit_price"}

	tests := []struct {
		name   string
		record string
		want   string
	}{
		{"number", `{"price":590}`, "590"},
		{"fractional", `{"price":99.95}`, "99.95"},
		{"numeric_string", `{"price":"1,250.50"}`, "1250.5"},
		{"rupee_prefix", `{"price":"₹ 499"}`, "499"},
		{"nested", `{"product":{"price":1000}}`, "1000"},
		{"zero_falls_through", `{"price":0,"unit_price":300}`, "300"},
		{"negative_falls_through", `{"price":-5,"product":{"price":10}}`, "10"},
		{"garbage_string", `{"price":"free"}`, "0"},
		{"missing", `{}`, "0"},
		{"tiny_exponent_falls_through", `{"price":"1e-20000000","unit_price":250}`, "250"},
		{"tiny_exponent_number", `{"price":1e-20000000}`, "0"},
		{"huge_exponent", `{"price":"9e99999"}`, "0"},
		{"overlong_literal", `{"price":"1000000000000000000000000000000000.5"}`, "0"},
		{"six_places_kept", `{"price":"0.000001"}`, "0.000001"},
		{"plain_large_kept", `{"price":"100000000000000000"}`, "100000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldresolve.Resolve(gjson.Parse(tt.record), paths, fieldresolve.Amount, decimal.Zero)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestResolve_PositiveInt(t *testing.T) {
	paths := []string{"quantity", "qty"}

	assert.Equal(t, 3, fieldresolve.Resolve(gjson.Parse(`{"quantity":3}`), paths, fieldresolve.PositiveInt, 1))
	assert.Equal(t, 2, fieldresolve.Resolve(gjson.Parse(`{"qty":"2"}`), paths, fieldresolve.PositiveInt, 1))
	assert.Equal(t, 4, fieldresolve.Resolve(gjson.Parse(`{"quantity":0,"qty":4}`), paths, fieldresolve.PositiveInt, 1))
	assert.Equal(t, 1, fieldresolve.Resolve(gjson.Parse(`{"quantity":-2}`), paths, fieldresolve.PositiveInt, 1))
	assert.Equal(t, 1, fieldresolve.Resolve(gjson.Parse(`{"quantity":"many"}`), paths, fieldresolve.PositiveInt, 1))
	assert.Equal(t, 1, fieldresolve.Resolve(gjson.Parse(`{}`), paths, fieldresolve.PositiveInt, 1))
}

func TestResolve_Lists(t *testing.T) {
	rec := gjson.Parse(`{"images":["", "a.jpg", 3, "b.jpg"],"image":"c.jpg"}`)
	got := fieldresolve.Resolve(rec, []string{"images"}, fieldresolve.StringList, nil)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got)

	got = fieldresolve.Resolve(rec, []string{"image"}, fieldresolve.SingleAsList, nil)
	assert.Equal(t, []string{"c.jpg"}, got)

	empty := gjson.Parse(`{"images":[]}`)
	assert.Nil(t, fieldresolve.Resolve(empty, []string{"images"}, fieldresolve.StringList, nil))
}

func TestFirst_ChainsCoercers(t *testing.T) {
	steps := []fieldresolve.Step[[]string]{
		{Paths: []string{"images"}, Coerce: fieldresolve.StringList},
		{Paths: []string{"image"}, Coerce: fieldresolve.SingleAsList},
		{Paths: []string{"product.images"}, Coerce: fieldresolve.StringList},
	}

	assert.Equal(t, []string{"x.png"}, fieldresolve.First(gjson.Parse(`{"images":[],"image":"x.png"}`), []string{}, steps...))
	assert.Equal(t, []string{"p.png"}, fieldresolve.First(gjson.Parse(`{"product":{"images":["p.png"]}}`), []string{}, steps...))
	assert.Equal(t, []string{}, fieldresolve.First(gjson.Parse(`{}`), []string{}, steps...))
}

func TestOptionalString(t *testing.T) {
	rec := gjson.Parse(`{"product":{"id":17}}`)
	got := fieldresolve.Resolve(rec, []string{"product_id", "product.id"}, fieldresolve.OptionalString, nil)
	if assert.NotNil(t, got) {
		assert.Equal(t, "17", *got)
	}
	assert.Nil(t, fieldresolve.Resolve(gjson.Parse(`{}`), []string{"product_id"}, fieldresolve.OptionalString, nil))
}
