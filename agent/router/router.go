// Package router decides the next step of a conversation from its history
// using keyword and pattern rules. Decide is pure: equal histories always
// produce equal actions.
package router

import (
	"fmt"
	"strconv"
	"strings"

	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
	"github.com/tanpawarit/catalog-agent/agent/normalize"
)

const defaultPercentage = 10.0

var _ contractx.DecideFunc = Decide

func Decide(history []contractx.Message) contractx.Action {
	if n := len(history); n > 0 && history[n-1].Kind == contractx.MessageTool && history[n-1].Result != nil {
		return afterTool(history, *history[n-1].Result)
	}
	return fromUser(history)
}

func fromUser(history []contractx.Message) contractx.Action {
	raw := contractx.LastUserText(history)
	text := strings.ToLower(raw)

	switch Classify(text) {
	case IntentAdd:
		return invoke(history, contractx.ToolAddProduct, ExtractAddFields(raw).Args())
	case IntentList:
		return invoke(history, contractx.ToolListProducts, map[string]any{})
	case IntentStats:
		return invoke(history, contractx.ToolGetStatistics, map[string]any{})
	case IntentDiscount:
		if id, ok := ProductID(raw); ok {
			return invoke(history, contractx.ToolGetProduct, map[string]any{"product_id": float64(id)})
		}
		price, percentage := DiscountTerms(text)
		return invoke(history, contractx.ToolCalculateDiscount, map[string]any{
			"price":      price,
			"percentage": percentage,
		})
	default:
		return contractx.Respond(contractx.Answer{Text: Unrecognized})
	}
}

func afterTool(history []contractx.Message, result contractx.ToolResult) contractx.Action {
	text := strings.ToLower(contractx.LastUserText(history))

	switch result.Tool {
	case contractx.ToolListProducts:
		if !containsAny(text, categoryStems) {
			break
		}
		items, ok := result.Payload.([]any)
		category := Category(text)
		if ok && category != "" {
			return contractx.Respond(StructuredAnswer(filterByCategory(items, category)))
		}
	case contractx.ToolGetProduct:
		if !containsAny(text, discountStems) {
			break
		}
		product, ok := result.Payload.(map[string]any)
		if !ok {
			break
		}
		price, ok := priceOf(product)
		if !ok {
			break
		}
		percentage := defaultPercentage
		if numbers := Numbers(text); len(numbers) > 0 {
			percentage = numbers[0]
		}
		return invoke(history, contractx.ToolCalculateDiscount, map[string]any{
			"price":      price,
			"percentage": percentage,
		})
	}

	return contractx.Respond(answerFor(result.Payload))
}

// filterByCategory always returns a non-nil list so an empty match still
// renders as [].
func filterByCategory(items []any, category string) []any {
	want := strings.ToLower(category)
	out := make([]any, 0, len(items))
	for _, item := range items {
		product, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if strings.ToLower(normalize.Text(product["category"])) == want {
			out = append(out, product)
		}
	}
	return out
}

func priceOf(product map[string]any) (float64, bool) {
	switch v := product["price"].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func invoke(history []contractx.Message, tool contractx.ToolName, args map[string]any) contractx.Action {
	return contractx.Invoke(contractx.ToolCall{
		ID:   fmt.Sprintf("call_%d", contractx.CountCalls(history)+1),
		Tool: tool,
		Args: args,
	})
}
