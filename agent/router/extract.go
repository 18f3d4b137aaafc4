package router

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultName     = "New product"
	DefaultCategory = "uncategorized"

	// MaxProductID is the largest id passed on to get_product. Ids travel as
	// JSON numbers, so longer ones are clamped and end up not found.
	MaxProductID = 1 << 53
)

var (
	numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	// \b is ASCII-only in RE2, so the word boundary before "id" is spelled out.
	productIDPattern = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])id\s*([0-9]+)`)
	categoryPattern  = regexp.MustCompile(`(?i)(?:категор|categor)[\p{L}\p{N}_]*\s+([^\n,]+)`)
)

// Numbers returns every numeric token left to right. Comma is accepted as a
// decimal separator.
func Numbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		f, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

func ProductID(text string) (int, bool) {
	m := productIDPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil || id > MaxProductID {
		return MaxProductID, true
	}
	return int(id), true
}

// Category returns the words after a category keyword up to a newline or
// comma, or "" when there is no keyword.
func Category(text string) string {
	m := categoryPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func OutOfStock(text string) bool {
	return containsAny(strings.ToLower(text), outOfStockMarkers)
}

type AddFields struct {
	Name     string
	Price    float64
	Category string
	InStock  bool
}

func (f AddFields) Args() map[string]any {
	return map[string]any{
		"name":     f.Name,
		"price":    f.Price,
		"category": f.Category,
		"in_stock": f.InStock,
	}
}

// ExtractAddFields reads "<anything>: name, price N, category X" style text.
// Missing fields fall back to defaults; it never fails.
func ExtractAddFields(text string) AddFields {
	tail := text
	if _, after, ok := strings.Cut(text, ":"); ok {
		tail = after
	}

	var (
		name     string
		price    float64
		category string
	)
	for _, part := range strings.Split(tail, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lowered := strings.ToLower(part)
		switch {
		case containsAny(lowered, priceStems):
			if numbers := Numbers(part); len(numbers) > 0 {
				price = numbers[0]
			}
		case containsAny(lowered, categoryStems):
			category = ""
			if _, after, ok := strings.Cut(part, " "); ok {
				category = strings.TrimSpace(after)
			}
		case name == "":
			name = part
		}
	}

	if name == "" {
		name = DefaultName
	}
	if category == "" {
		category = DefaultCategory
	}
	return AddFields{
		Name:     name,
		Price:    price,
		Category: category,
		InStock:  !OutOfStock(text),
	}
}

// DiscountTerms picks price and percentage from free text. With two or more
// numbers a first value <= 100 is the percentage; otherwise the first is the
// price.
func DiscountTerms(text string) (price, percentage float64) {
	price, percentage = 100, 10
	numbers := Numbers(text)
	switch {
	case len(numbers) >= 2:
		first, second := numbers[0], numbers[1]
		if first <= 100 {
			percentage, price = first, second
		} else {
			price, percentage = first, second
		}
	case len(numbers) == 1:
		price = numbers[0]
	}
	return price, percentage
}
