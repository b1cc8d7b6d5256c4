package invoice

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"

	"storefront/internal/domain"
	"storefront/internal/fieldresolve"
)

var (
	addrName    = []string{"name", "full_name", "fullName"}
	addrLine1   = []string{"line1", "address_line1", "addressLine1", "address", "street"}
	addrLine2   = []string{"line2", "address_line2", "addressLine2", "landmark"}
	addrCity    = []string{"city", "town"}
	addrState   = []string{"state", "region"}
	addrPostal  = []string{"postal_code", "pincode", "pin_code", "zip", "zipcode", "postalCode"}
	addrCountry = []string{"country"}
	addrPhone   = []string{"phone", "mobile"}
)

// ParseAddress reads a shipping address stored either as an object or as the
// JSON text of one. Anything unreadable, or an object with no usable fields,
// yields nil.
func ParseAddress(raw json.RawMessage) *domain.Address {
	rec, ok := addressRecord(raw)
	if !ok {
		return nil
	}
	str := func(paths []string) string {
		return fieldresolve.Resolve(rec, paths, fieldresolve.String, "")
	}
	addr := domain.Address{
		Name:       str(addrName),
		Line1:      str(addrLine1),
		Line2:      str(addrLine2),
		City:       str(addrCity),
		State:      str(addrState),
		PostalCode: str(addrPostal),
		Country:    str(addrCountry),
		Phone:      str(addrPhone),
	}
	if addr == (domain.Address{}) {
		return nil
	}
	return &addr
}

func addressRecord(raw json.RawMessage) (gjson.Result, bool) {
	data := bytes.TrimSpace(raw)
	for i := 0; i < 3; i++ {
		if len(data) == 0 || !gjson.ValidBytes(data) {
			return gjson.Result{}, false
		}
		v := gjson.ParseBytes(data)
		switch {
		case v.IsObject():
			return v, true
		case v.Type == gjson.String:
			data = bytes.TrimSpace([]byte(v.Str))
		default:
			return gjson.Result{}, false
		}
	}
	return gjson.Result{}, false
}
