package storefront

import (
	"github.com/graphql-go/graphql"
	"github.com/smallbiznis/mall/internal/clock"
	collectiondomain "github.com/smallbiznis/mall/internal/collection/domain"
	gql "github.com/smallbiznis/mall/internal/graphql"
	optionvaluedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productoptiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/internal/validate"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	"github.com/smallbiznis/mall/pkg/db/pagination"
)

func listingArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"orderBy":    &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
		"pageNumber": &graphql.ArgumentConfig{Type: graphql.Int},
		"pageSize":   &graphql.ArgumentConfig{Type: graphql.Int},
	}
	for name, cfg := range extra {
		args[name] = cfg
	}
	return args
}

func listingResult(items interface{}, total int64, page pagination.Pagination) *connection {
	return &connection{
		Items:      items,
		TotalCount: total,
		PageInfo:   pagination.BuildPageInfo(page, total),
	}
}

func (r *resolver) collectionVisible(c *collectiondomain.Collection) bool {
	if c == nil || !c.IsPublished {
		return false
	}
	cutoff := clock.PublishCutoff(r.clock.Now())
	return c.PublishedAt == nil || c.PublishedAt.Before(cutoff)
}

func (r *resolver) queryType(t *typeSet) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type: t.product,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					return r.products.GetVisible(p.Context, scope, gql.String(p.Args, "id"))
				},
			},
			"products": &graphql.Field{
				Type: t.productConnection,
				Args: listingArgs(graphql.FieldConfigArgument{
					"languageCode": &graphql.ArgumentConfig{Type: graphql.String},
					"name":         &graphql.ArgumentConfig{Type: graphql.String},
					"description":  &graphql.ArgumentConfig{Type: graphql.String},
					"summary":      &graphql.ArgumentConfig{Type: graphql.String},
					"content":      &graphql.ArgumentConfig{Type: graphql.String},
					"slug":         &graphql.ArgumentConfig{Type: graphql.String},
					"serial":       &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					req := productdomain.ListRequest{
						LanguageCode: gql.String(p.Args, "languageCode"),
						Name:         gql.String(p.Args, "name"),
						Description:  gql.String(p.Args, "description"),
						Summary:      gql.String(p.Args, "summary"),
						Content:      gql.String(p.Args, "content"),
						Slug:         gql.String(p.Args, "slug"),
						Serial:       gql.String(p.Args, "serial"),
						OrderBy:      gql.OrderBy(p.Args),
						Pagination:   gql.Pagination(p.Args),
					}
					items, total, err := r.products.ListVisible(p.Context, scope, req)
					if err != nil {
						return nil, err
					}
					return listingResult(items, total, req.Pagination), nil
				},
			},
			"productOption": &graphql.Field{
				Type: t.option,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					return r.options.GetVisible(p.Context, scope, gql.String(p.Args, "id"))
				},
			},
			"productOptions": &graphql.Field{
				Type: t.optionConnection,
				Args: listingArgs(graphql.FieldConfigArgument{
					"productId":    &graphql.ArgumentConfig{Type: graphql.ID},
					"languageCode": &graphql.ArgumentConfig{Type: graphql.String},
					"name":         &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					req := productoptiondomain.ListRequest{
						ProductID:    gql.String(p.Args, "productId"),
						LanguageCode: gql.String(p.Args, "languageCode"),
						Name:         gql.String(p.Args, "name"),
						OrderBy:      gql.OrderBy(p.Args),
						Pagination:   gql.Pagination(p.Args),
					}
					items, total, err := r.options.ListVisible(p.Context, scope, req)
					if err != nil {
						return nil, err
					}
					return listingResult(items, total, req.Pagination), nil
				},
			},
			"productOptionValue": &graphql.Field{
				Type: t.value,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					return r.values.GetVisible(p.Context, scope, gql.String(p.Args, "id"))
				},
			},
			"productOptionValues": &graphql.Field{
				Type: t.valueConnection,
				Args: listingArgs(graphql.FieldConfigArgument{
					"optionId":     &graphql.ArgumentConfig{Type: graphql.ID},
					"languageCode": &graphql.ArgumentConfig{Type: graphql.String},
					"name":         &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					req := optionvaluedomain.ListRequest{
						OptionID:     gql.String(p.Args, "optionId"),
						LanguageCode: gql.String(p.Args, "languageCode"),
						Name:         gql.String(p.Args, "name"),
						OrderBy:      gql.OrderBy(p.Args),
						Pagination:   gql.Pagination(p.Args),
					}
					items, total, err := r.values.ListVisible(p.Context, scope, req)
					if err != nil {
						return nil, err
					}
					return listingResult(items, total, req.Pagination), nil
				},
			},
			"variant": &graphql.Field{
				Type: t.variant,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					return r.variants.GetVisible(p.Context, scope, gql.String(p.Args, "id"))
				},
			},
			"variants": &graphql.Field{
				Type: t.variantConnection,
				Args: listingArgs(graphql.FieldConfigArgument{
					"slug":         &graphql.ArgumentConfig{Type: graphql.String},
					"productName":  &graphql.ArgumentConfig{Type: graphql.String},
					"languageCode": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					req := variantdomain.ListRequest{
						Slug:         gql.String(p.Args, "slug"),
						ProductName:  gql.String(p.Args, "productName"),
						LanguageCode: gql.String(p.Args, "languageCode"),
						OrderBy:      gql.OrderBy(p.Args),
						Pagination:   gql.Pagination(p.Args),
					}
					items, total, err := r.variants.ListVisible(p.Context, scope, req)
					if err != nil {
						return nil, err
					}
					return listingResult(items, total, req.Pagination), nil
				},
			},
			"collection": &graphql.Field{
				Type: t.collection,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					collection, err := r.collections.Get(p.Context, scope, gql.String(p.Args, "id"))
					if err != nil {
						return nil, err
					}
					if !r.collectionVisible(collection) {
						return nil, validate.NewError("Bad Request!")
					}
					return collection, nil
				},
			},
			"collections": &graphql.Field{
				Type: t.collectionConnection,
				Args: listingArgs(graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.String},
					"slug": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					published := true
					req := collectiondomain.ListRequest{
						Name:        gql.String(p.Args, "name"),
						Slug:        gql.String(p.Args, "slug"),
						IsPublished: &published,
						OrderBy:     gql.OrderBy(p.Args),
						Pagination:  gql.Pagination(p.Args),
					}
					items, total, err := r.collections.List(p.Context, scope, req)
					if err != nil {
						return nil, err
					}
					return listingResult(items, total, req.Pagination), nil
				},
			},
		},
	})
}
