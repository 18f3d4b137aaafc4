package router

import "strings"

type Intent int

const (
	IntentNone Intent = iota
	IntentAdd
	IntentList
	IntentStats
	IntentDiscount
)

func (i Intent) String() string {
	switch i {
	case IntentAdd:
		return "add"
	case IntentList:
		return "list"
	case IntentStats:
		return "stats"
	case IntentDiscount:
		return "discount"
	default:
		return "none"
	}
}

var (
	addStems      = []string{"добав", "add"}
	listStems     = []string{"электрон", "категор", "electron", "categor"}
	categoryStems = []string{"категор", "categor"}
	priceStems    = []string{"цен", "price"}
	statsStems    = []string{"цен", "статист", "price", "statist"}
	discountStems = []string{"скидк", "discount"}

	outOfStockMarkers = []string{"не в наличии", "нет в наличии", "out of stock"}
)

// Ordered by priority; the first matching intent wins.
var intentStems = []struct {
	intent Intent
	stems  []string
}{
	{IntentAdd, addStems},
	{IntentList, listStems},
	{IntentStats, statsStems},
	{IntentDiscount, discountStems},
}

// Classify returns the highest-priority intent whose stem occurs in text.
func Classify(text string) Intent {
	lowered := strings.ToLower(text)
	for _, candidate := range intentStems {
		if containsAny(lowered, candidate.stems) {
			return candidate.intent
		}
	}
	return IntentNone
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
