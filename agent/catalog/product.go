package catalog

type Product struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Price    float64 `json:"price" yaml:"price"`
	Category string  `json:"category" yaml:"category"`
	InStock  bool    `json:"in_stock" yaml:"in_stock"`
}

// Record returns the product as plain data keyed by its JSON field names.
func (p Product) Record() map[string]any {
	return map[string]any{
		"id":       float64(p.ID),
		"name":     p.Name,
		"price":    p.Price,
		"category": p.Category,
		"in_stock": p.InStock,
	}
}

type Products []Product

func (ps Products) Records() []map[string]any {
	out := make([]map[string]any, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Record())
	}
	return out
}

// NewProduct holds the caller-supplied fields of a product; the store assigns the id.
type NewProduct struct {
	Name     string
	Price    float64
	Category string
	InStock  bool
}

type Stats struct {
	TotalCount   int     `json:"total_count" yaml:"total_count"`
	AveragePrice float64 `json:"average_price" yaml:"average_price"`
}

func (s Stats) Record() map[string]any {
	return map[string]any{
		"total_count":   float64(s.TotalCount),
		"average_price": s.AveragePrice,
	}
}

// NextID is one more than the highest id, or 1 for an empty catalog.
func NextID(products []Product) int {
	maxID := 0
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

func ComputeStats(products []Product) Stats {
	if len(products) == 0 {
		return Stats{}
	}
	sum := 0.0
	for _, p := range products {
		sum += p.Price
	}
	return Stats{
		TotalCount:   len(products),
		AveragePrice: sum / float64(len(products)),
	}
}
