package normalize

// KeyPaths lists, per item attribute, the candidate key paths in priority
// order. Bump Version whenever a writer's shape is added or reordered so
// stored previews can be compared against the table that produced them.
type KeyPaths struct {
	Version      int
	Name         []string
	Images       []string
	Image        []string
	NestedImages []string
	NestedImage  []string
	Price        []string
	Quantity     []string
	Size         []string
	Color        []string
	ProductID    []string
}

// DefaultKeyPaths covers the storefront checkout, the cart snapshot writer and
// the legacy admin importer.
var DefaultKeyPaths = KeyPaths{
	Version:      3,
	Name:         []string{"name", "product_name", "product.name", "title", "product.title"},
	Images:       []string{"images"},
	Image:        []string{"image"},
	NestedImages: []string{"product.images"},
	NestedImage:  []string{"product.image", "product.thumbnail"},
	Price:        []string{"price", "product.price", "unit_price", "selling_price"},
	Quantity:     []string{"quantity", "qty"},
	Size:         []string{"size", "selected_size", "selectedSize"},
	Color:        []string{"color", "selected_color", "selectedColor"},
	ProductID:    []string{"product_id", "product.id", "productId"},
}

// UnnamedProduct stands in for items that carry no usable name.
const UnnamedProduct = "Unnamed Product"

// PreviewSize is how many items the order list shows before "+N more".
const PreviewSize = 4
