package dashboard

import (
	"github.com/graphql-go/graphql"
	collectiondomain "github.com/smallbiznis/mall/internal/collection/domain"
	gql "github.com/smallbiznis/mall/internal/graphql"
	optionvaluedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productoptiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	"github.com/smallbiznis/mall/internal/tenant"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	"github.com/smallbiznis/mall/pkg/db/pagination"
)

func listingArgs(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"createdAtGt":  &graphql.ArgumentConfig{Type: graphql.DateTime},
		"createdAtGte": &graphql.ArgumentConfig{Type: graphql.DateTime},
		"createdAtLt":  &graphql.ArgumentConfig{Type: graphql.DateTime},
		"createdAtLte": &graphql.ArgumentConfig{Type: graphql.DateTime},
		"updatedAtGt":  &graphql.ArgumentConfig{Type: graphql.DateTime},
		"updatedAtGte": &graphql.ArgumentConfig{Type: graphql.DateTime},
		"updatedAtLt":  &graphql.ArgumentConfig{Type: graphql.DateTime},
		"updatedAtLte": &graphql.ArgumentConfig{Type: graphql.DateTime},
		"orderBy":      &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
		"pageNumber":   &graphql.ArgumentConfig{Type: graphql.Int},
		"pageSize":     &graphql.ArgumentConfig{Type: graphql.Int},
	}
	for name, cfg := range extra {
		args[name] = cfg
	}
	return args
}

func productListRequest(args map[string]interface{}) productdomain.ListRequest {
	return productdomain.ListRequest{
		LanguageCode: gql.String(args, "languageCode"),
		Name:         gql.String(args, "name"),
		Description:  gql.String(args, "description"),
		Summary:      gql.String(args, "summary"),
		Content:      gql.String(args, "content"),
		Slug:         gql.String(args, "slug"),
		Serial:       gql.String(args, "serial"),
		CanSearch:    gql.BoolPtr(args, "canSearch"),
		IsPublished:  gql.BoolPtr(args, "isPublished"),
		CreatedAtGT:  gql.TimePtr(args, "createdAtGt"),
		CreatedAtGTE: gql.TimePtr(args, "createdAtGte"),
		CreatedAtLT:  gql.TimePtr(args, "createdAtLt"),
		CreatedAtLTE: gql.TimePtr(args, "createdAtLte"),
		UpdatedAtGT:  gql.TimePtr(args, "updatedAtGt"),
		UpdatedAtGTE: gql.TimePtr(args, "updatedAtGte"),
		UpdatedAtLT:  gql.TimePtr(args, "updatedAtLt"),
		UpdatedAtLTE: gql.TimePtr(args, "updatedAtLte"),
		OrderBy:      gql.OrderBy(args),
		Pagination:   gql.Pagination(args),
	}
}

func optionListRequest(args map[string]interface{}) productoptiondomain.ListRequest {
	return productoptiondomain.ListRequest{
		ProductID:    gql.String(args, "productId"),
		LanguageCode: gql.String(args, "languageCode"),
		Name:         gql.String(args, "name"),
		CreatedAtGT:  gql.TimePtr(args, "createdAtGt"),
		CreatedAtGTE: gql.TimePtr(args, "createdAtGte"),
		CreatedAtLT:  gql.TimePtr(args, "createdAtLt"),
		CreatedAtLTE: gql.TimePtr(args, "createdAtLte"),
		UpdatedAtGT:  gql.TimePtr(args, "updatedAtGt"),
		UpdatedAtGTE: gql.TimePtr(args, "updatedAtGte"),
		UpdatedAtLT:  gql.TimePtr(args, "updatedAtLt"),
		UpdatedAtLTE: gql.TimePtr(args, "updatedAtLte"),
		OrderBy:      gql.OrderBy(args),
		Pagination:   gql.Pagination(args),
	}
}

func valueListRequest(args map[string]interface{}) optionvaluedomain.ListRequest {
	return optionvaluedomain.ListRequest{
		OptionID:     gql.String(args, "optionId"),
		LanguageCode: gql.String(args, "languageCode"),
		Name:         gql.String(args, "name"),
		CreatedAtGT:  gql.TimePtr(args, "createdAtGt"),
		CreatedAtGTE: gql.TimePtr(args, "createdAtGte"),
		CreatedAtLT:  gql.TimePtr(args, "createdAtLt"),
		CreatedAtLTE: gql.TimePtr(args, "createdAtLte"),
		UpdatedAtGT:  gql.TimePtr(args, "updatedAtGt"),
		UpdatedAtGTE: gql.TimePtr(args, "updatedAtGte"),
		UpdatedAtLT:  gql.TimePtr(args, "updatedAtLt"),
		UpdatedAtLTE: gql.TimePtr(args, "updatedAtLte"),
		OrderBy:      gql.OrderBy(args),
		Pagination:   gql.Pagination(args),
	}
}

func variantListRequest(args map[string]interface{}) variantdomain.ListRequest {
	return variantdomain.ListRequest{
		Slug:         gql.String(args, "slug"),
		ProductName:  gql.String(args, "productName"),
		IsPrimary:    gql.BoolPtr(args, "isPrimary"),
		LanguageCode: gql.String(args, "languageCode"),
		CreatedAtGT:  gql.TimePtr(args, "createdAtGt"),
		CreatedAtGTE: gql.TimePtr(args, "createdAtGte"),
		CreatedAtLT:  gql.TimePtr(args, "createdAtLt"),
		CreatedAtLTE: gql.TimePtr(args, "createdAtLte"),
		UpdatedAtGT:  gql.TimePtr(args, "updatedAtGt"),
		UpdatedAtGTE: gql.TimePtr(args, "updatedAtGte"),
		UpdatedAtLT:  gql.TimePtr(args, "updatedAtLt"),
		UpdatedAtLTE: gql.TimePtr(args, "updatedAtLte"),
		OrderBy:      gql.OrderBy(args),
		Pagination:   gql.Pagination(args),
	}
}

func collectionListRequest(args map[string]interface{}) collectiondomain.ListRequest {
	return collectiondomain.ListRequest{
		Name:        gql.String(args, "name"),
		Slug:        gql.String(args, "slug"),
		IsPublished: gql.BoolPtr(args, "isPublished"),
		OrderBy:     gql.OrderBy(args),
		Pagination:  gql.Pagination(args),
	}
}

func listingResult(items interface{}, total int64, page pagination.Pagination) *connection {
	return &connection{
		Items:      items,
		TotalCount: total,
		PageInfo:   pagination.BuildPageInfo(page, total),
	}
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
					return r.products.Get(p.Context, scope, gql.String(p.Args, "id"))
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
					"canSearch":    &graphql.ArgumentConfig{Type: graphql.Boolean},
					"isPublished":  &graphql.ArgumentConfig{Type: graphql.Boolean},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					req := productListRequest(p.Args)
					items, total, err := r.products.List(p.Context, scope, req)
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
					return r.options.Get(p.Context, scope, gql.String(p.Args, "id"))
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
					req := optionListRequest(p.Args)
					items, total, err := r.options.List(p.Context, scope, req)
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
					return r.values.Get(p.Context, scope, gql.String(p.Args, "id"))
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
					req := valueListRequest(p.Args)
					items, total, err := r.values.List(p.Context, scope, req)
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
					return r.variants.Get(p.Context, scope, gql.String(p.Args, "id"))
				},
			},
			"variants": &graphql.Field{
				Type: t.variantConnection,
				Args: listingArgs(graphql.FieldConfigArgument{
					"slug":         &graphql.ArgumentConfig{Type: graphql.String},
					"productName":  &graphql.ArgumentConfig{Type: graphql.String},
					"isPrimary":    &graphql.ArgumentConfig{Type: graphql.Boolean},
					"languageCode": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					req := variantListRequest(p.Args)
					items, total, err := r.variants.List(p.Context, scope, req)
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
					return r.collections.Get(p.Context, scope, gql.String(p.Args, "id"))
				},
			},
			"collections": &graphql.Field{
				Type: t.collectionConnection,
				Args: listingArgs(graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.String},
					"slug":        &graphql.ArgumentConfig{Type: graphql.String},
					"isPublished": &graphql.ArgumentConfig{Type: graphql.Boolean},
				}),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					req := collectionListRequest(p.Args)
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
