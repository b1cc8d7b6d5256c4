// Package normalize turns item payloads written by different storefront
// versions into one canonical item shape.
package normalize

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"storefront/internal/domain"
	"storefront/internal/fieldresolve"
)

// maxUnwrap bounds how many layers of JSON-in-a-string are peeled off.
const maxUnwrap = 2

// Normalizer maps raw item records to domain.NormalizedItem using a KeyPaths table.
type Normalizer struct {
	paths KeyPaths
}

// New returns a Normalizer over the given key path table.
func New(paths KeyPaths) *Normalizer {
	return &Normalizer{paths: paths}
}

var defaultNormalizer = New(DefaultKeyPaths)

// Normalize normalizes raw with DefaultKeyPaths.
func Normalize(raw json.RawMessage) []domain.NormalizedItem {
	return defaultNormalizer.Normalize(raw)
}

// Version reports the key path table version in use.
func (n *Normalizer) Version() int { return n.paths.Version }

// Normalize accepts an array of item records, or a JSON string holding one,
// and returns the canonical items in input order. Anything that is not an
// array yields an empty slice; entries that are not objects or have no keys
// are dropped.
func (n *Normalizer) Normalize(raw json.RawMessage) []domain.NormalizedItem {
	arr, ok := unwrapArray(raw)
	if !ok {
		return []domain.NormalizedItem{}
	}

	items := make([]domain.NormalizedItem, 0, len(arr))
	for _, el := range arr {
		rec, ok := asRecord(el)
		if !ok {
			continue
		}
		items = append(items, n.item(rec))
	}
	return items
}

func (n *Normalizer) item(rec gjson.Result) domain.NormalizedItem {
	p := &n.paths
	images := fieldresolve.First(rec, []string{},
		fieldresolve.Step[[]string]{Paths: p.Images, Coerce: fieldresolve.StringList},
		fieldresolve.Step[[]string]{Paths: p.Image, Coerce: fieldresolve.SingleAsList},
		fieldresolve.Step[[]string]{Paths: p.NestedImages, Coerce: fieldresolve.StringList},
		fieldresolve.Step[[]string]{Paths: p.NestedImage, Coerce: fieldresolve.SingleAsList},
	)

	return domain.NormalizedItem{
		Name:      fieldresolve.Resolve(rec, p.Name, fieldresolve.String, UnnamedProduct),
		Images:    images,
		UnitPrice: fieldresolve.Resolve(rec, p.Price, fieldresolve.Amount, decimal.Zero),
		Quantity:  fieldresolve.Resolve(rec, p.Quantity, fieldresolve.PositiveInt, 1),
		Size:      fieldresolve.Resolve(rec, p.Size, fieldresolve.String, ""),
		Color:     fieldresolve.Resolve(rec, p.Color, fieldresolve.String, ""),
		ProductID: fieldresolve.Resolve(rec, p.ProductID, fieldresolve.OptionalString, (*string)(nil)),
	}
}

// Preview returns at most n leading items, sharing the backing array.
func Preview(items []domain.NormalizedItem, n int) []domain.NormalizedItem {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func unwrapArray(raw json.RawMessage) ([]gjson.Result, bool) {
	data := bytes.TrimSpace(raw)
	for i := 0; i <= maxUnwrap; i++ {
		if len(data) == 0 || !gjson.ValidBytes(data) {
			return nil, false
		}
		v := gjson.ParseBytes(data)
		switch {
		case v.IsArray():
			return v.Array(), true
		case v.Type == gjson.String:
			data = bytes.TrimSpace([]byte(v.Str))
		default:
			return nil, false
		}
	}
	return nil, false
}

// asRecord accepts an object with at least one key, or a string holding one.
func asRecord(el gjson.Result) (gjson.Result, bool) {
	if el.Type == gjson.String && gjson.Valid(el.Str) {
		el = gjson.Parse(el.Str)
	}
	if !el.IsObject() {
		return gjson.Result{}, false
	}
	hasKey := false
	el.ForEach(func(_, _ gjson.Result) bool {
		hasKey = true
		return false
	})
	return el, hasKey
}
