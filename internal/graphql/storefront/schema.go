// Package storefront exposes the public GraphQL surface. Every read applies
// the visibility predicate, variants hide their sku and raw price columns
// behind money values, and the only mutation is the access counter.
package storefront

import (
	"github.com/graphql-go/graphql"
	"github.com/smallbiznis/mall/internal/clock"
	collectiondomain "github.com/smallbiznis/mall/internal/collection/domain"
	optionvaluedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productoptiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	"github.com/smallbiznis/mall/internal/ratelimit"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	Clock       clock.Clock
	Products    productdomain.Service
	Options     productoptiondomain.Service
	Values      optionvaluedomain.Service
	Variants    variantdomain.Service
	Collections collectiondomain.Service
	Limiter     *ratelimit.AccessLimiter
}

// Schema wraps the executable schema so the container can tell the two
// GraphQL surfaces apart.
type Schema struct {
	graphql.Schema
}

type resolver struct {
	log         *zap.Logger
	clock       clock.Clock
	products    productdomain.Service
	options     productoptiondomain.Service
	values      optionvaluedomain.Service
	variants    variantdomain.Service
	collections collectiondomain.Service
	limiter     *ratelimit.AccessLimiter
}

func NewSchema(p Params) (Schema, error) {
	r := &resolver{
		log:         p.Log.Named("graphql.storefront"),
		clock:       p.Clock,
		products:    p.Products,
		options:     p.Options,
		values:      p.Values,
		variants:    p.Variants,
		collections: p.Collections,
		limiter:     p.Limiter,
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
