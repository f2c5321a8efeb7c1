package catalog

// Product is a storefront catalog entry. Price is in minor currency units
// (paise) so checkout amounts never touch floating point.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}

// Catalog is a fixed in-memory product list. Checkout resolves products by id
// against this list so the charged amount always matches the listed price.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

func New(products []Product) *Catalog {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}
}

// Default returns the storefront's product lineup.
func Default() *Catalog {
	return New([]Product{
		{ID: "prod_1", Name: "VisionAI Pro", Price: 4900, Image: "https://techcrunch.com/wp-content/uploads/2024/06/Apple-Vision-Pro-global-availability-e1718041644616.jpg?resize=1095,617"},
		{ID: "prod_2", Name: "NLP Toolkit", Price: 7900, Image: "https://images-na.ssl-images-amazon.com/images/S/compressed.photo.goodreads.com/books/1347529819i/6817045.jpg"},
		{ID: "prod_3", Name: "GenAI Suite", Price: 9900, Image: "https://www.amdocs.com/sites/default/files/2025-02/girl-city-lights-glasses-ai.png"},
	})
}

// List returns a snapshot of the catalog in listing order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
