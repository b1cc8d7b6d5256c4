package export

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// nonFilename matches characters that are not alphanumeric, hyphen, or underscore.
var nonFilename = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces anything outside [A-Za-z0-9_-] with _, collapses
// runs of underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonFilename.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns "<brand>-Invoice-<orderId>.<ext>".
func BuildFilename(brand, orderID, ext string) string {
	b := SanitizeFilename(brand)
	if b == "" {
		b = "Store"
	}
	id := SanitizeFilename(orderID)
	if id == "" {
		id = "unknown"
	}
	return fmt.Sprintf("%s-Invoice-%s.%s", b, id, strings.TrimPrefix(ext, "."))
}

// objectKey places an artifact under prefix/orderID/filename.
func objectKey(prefix, orderID, filename string) string {
	return path.Join(strings.Trim(prefix, "/"), SanitizeFilename(orderID), filename)
}
