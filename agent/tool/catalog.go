package tool

import (
	"context"

	"github.com/cloudwego/eino/schema"
	catalogx "github.com/tanpawarit/catalog-agent/agent/catalog"
	contractx "github.com/tanpawarit/catalog-agent/agent/contract"
)

type handler func(ctx context.Context, store catalogx.Store, args map[string]any) (any, error)

var handlers = map[contractx.ToolName]handler{
	contractx.ToolListProducts:      listProducts,
	contractx.ToolGetProduct:        getProduct,
	contractx.ToolAddProduct:        addProduct,
	contractx.ToolGetStatistics:     getStatistics,
	contractx.ToolCalculateDiscount: calculateDiscount,
}

// Infos describes the registry in the order of contract.ToolNames.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: string(contractx.ToolListProducts),
			Desc: "Return every product in the catalog.",
		},
		{
			Name: string(contractx.ToolGetProduct),
			Desc: "Return one product by id.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {Type: schema.Integer, Desc: "Product id", Required: true},
			}),
		},
		{
			Name: string(contractx.ToolAddProduct),
			Desc: "Add a product to the catalog and return it with its assigned id.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"name":     {Type: schema.String, Desc: "Product name", Required: true},
				"price":    {Type: schema.Number, Desc: "Unit price", Required: true},
				"category": {Type: schema.String, Desc: "Category label", Required: true},
				"in_stock": {Type: schema.Boolean, Desc: "Availability, defaults to true"},
			}),
		},
		{
			Name: string(contractx.ToolGetStatistics),
			Desc: "Return the product count and average price.",
		},
		{
			Name: string(contractx.ToolCalculateDiscount),
			Desc: "Apply a percentage discount to a price, rounded to 2 decimals.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"price":      {Type: schema.Number, Desc: "Original price", Required: true},
				"percentage": {Type: schema.Number, Desc: "Discount percentage", Required: true},
			}),
		},
	}
}

func listProducts(ctx context.Context, store catalogx.Store, _ map[string]any) (any, error) {
	products, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalogx.Products(products), nil
}

func getProduct(ctx context.Context, store catalogx.Store, args map[string]any) (any, error) {
	id, err := intArg(args, "product_id")
	if err != nil {
		return nil, err
	}
	return store.Get(ctx, id)
}

func addProduct(ctx context.Context, store catalogx.Store, args map[string]any) (any, error) {
	name, err := stringArg(args, "name")
	if err != nil {
		return nil, err
	}
	price, err := numberArg(args, "price")
	if err != nil {
		return nil, err
	}
	category, err := stringArg(args, "category")
	if err != nil {
		return nil, err
	}
	inStock, err := boolArg(args, "in_stock", true)
	if err != nil {
		return nil, err
	}
	return store.Add(ctx, catalogx.NewProduct{
		Name:     name,
		Price:    price,
		Category: category,
		InStock:  inStock,
	})
}

func getStatistics(ctx context.Context, store catalogx.Store, _ map[string]any) (any, error) {
	return store.Stats(ctx)
}

func calculateDiscount(_ context.Context, _ catalogx.Store, args map[string]any) (any, error) {
	price, err := numberArg(args, "price")
	if err != nil {
		return nil, err
	}
	percentage, err := numberArg(args, "percentage")
	if err != nil {
		return nil, err
	}
	return CalculateDiscount(price, percentage), nil
}
