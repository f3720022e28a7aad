// Package dashboard exposes the management GraphQL surface: full CRUD over
// products, options, option values, variants and collections, without the
// visibility filtering the storefront applies.
package dashboard

import (
	"github.com/graphql-go/graphql"
	collectiondomain "github.com/smallbiznis/mall/internal/collection/domain"
	optionvaluedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productoptiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	Products    productdomain.Service
	Options     productoptiondomain.Service
	Values      optionvaluedomain.Service
	Variants    variantdomain.Service
	Collections collectiondomain.Service
}

// Schema wraps the executable schema so the container can tell the two
// GraphQL surfaces apart.
type Schema struct {
	graphql.Schema
}

type resolver struct {
	log         *zap.Logger
	products    productdomain.Service
	options     productoptiondomain.Service
	values      optionvaluedomain.Service
	variants    variantdomain.Service
	collections collectiondomain.Service
}

func NewSchema(p Params) (Schema, error) {
	r := &resolver{
		log:         p.Log.Named("graphql.dashboard"),
		products:    p.Products,
		options:     p.Options,
		values:      p.Values,
		variants:    p.Variants,
		collections: p.Collections,
	}

	types := r.buildTypes()
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.queryType(types),
		Mutation: r.mutationType(types),
	})
	if err != nil {
		return Schema{}, err
	}
	return Schema{Schema: schema}, nil
}
