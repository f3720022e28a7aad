package dashboard

import (
	"encoding/json"

	"github.com/graphql-go/graphql"
	collectiondomain "github.com/smallbiznis/mall/internal/collection/domain"
	gql "github.com/smallbiznis/mall/internal/graphql"
	optionvaluedomain "github.com/smallbiznis/mall/internal/optionvalue/domain"
	productdomain "github.com/smallbiznis/mall/internal/product/domain"
	productoptiondomain "github.com/smallbiznis/mall/internal/productoption/domain"
	"github.com/smallbiznis/mall/internal/tenant"
	"github.com/smallbiznis/mall/internal/validate"
	variantdomain "github.com/smallbiznis/mall/internal/variant/domain"
	"github.com/smallbiznis/mall/pkg/optional"
)

func productTranslationInputs(raw interface{}) []productdomain.TranslationInput {
	entries, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]productdomain.TranslationInput, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, productdomain.TranslationInput{
			LanguageCode: gql.String(fields, "languageCode"),
			Name:         gql.String(fields, "name"),
			Description:  gql.StringPtr(fields, "description"),
			Summary:      gql.StringPtr(fields, "summary"),
			Content:      gql.StringPtr(fields, "content"),
		})
	}
	return out
}

func optionTranslationInputs(raw interface{}) []productoptiondomain.TranslationInput {
	entries, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]productoptiondomain.TranslationInput, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, productoptiondomain.TranslationInput{
			LanguageCode: gql.String(fields, "languageCode"),
			Name:         gql.String(fields, "name"),
		})
	}
	return out
}

func valueTranslationInputs(raw interface{}) []optionvaluedomain.TranslationInput {
	entries, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]optionvaluedomain.TranslationInput, 0, len(entries))
	for _, entry := range entries {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, optionvaluedomain.TranslationInput{
			LanguageCode: gql.String(fields, "languageCode"),
			Name:         gql.String(fields, "name"),
		})
	}
	return out
}

func metadataArg(args map[string]interface{}) (map[string]any, error) {
	raw := gql.StringPtr(args, "metadata")
	if raw == nil {
		return nil, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(*raw), &parsed); err != nil {
		return nil, validate.NewError("Bad Request!")
	}
	return parsed, nil
}

func optionalMetadataArg(args map[string]interface{}) (optional.Value[map[string]any], error) {
	raw, present := args["metadata"]
	if !present {
		return optional.Value[map[string]any]{}, nil
	}
	s, ok := raw.(string)
	if !ok {
		return optional.Null[map[string]any](), nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return optional.Value[map[string]any]{}, validate.NewError("Bad Request!")
	}
	return optional.Of(parsed), nil
}

func payload(key string, entity interface{}) map[string]interface{} {
	return map[string]interface{}{"success": true, key: entity}
}

func batchPayload(report interface{}) map[string]interface{} {
	return map[string]interface{}{"success": true, "warnings": report}
}

func (r *resolver) mutationType(t *typeSet) *graphql.Object {
	productPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductPayload",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.Boolean},
			"product": &graphql.Field{Type: t.product},
		},
	})
	optionPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductOptionPayload",
		Fields: graphql.Fields{
			"success":       &graphql.Field{Type: graphql.Boolean},
			"productOption": &graphql.Field{Type: t.option},
		},
	})
	valuePayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductOptionValuePayload",
		Fields: graphql.Fields{
			"success":            &graphql.Field{Type: graphql.Boolean},
			"productOptionValue": &graphql.Field{Type: t.value},
		},
	})
	variantPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "VariantPayload",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.Boolean},
			"variant": &graphql.Field{Type: t.variant},
		},
	})
	collectionPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CollectionPayload",
		Fields: graphql.Fields{
			"success":    &graphql.Field{Type: graphql.Boolean},
			"collection": &graphql.Field{Type: t.collection},
		},
	})
	deletePayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "DeleteBatchPayload",
		Fields: graphql.Fields{
			"success":  &graphql.Field{Type: graphql.Boolean},
			"warnings": &graphql.Field{Type: t.taskWarning},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"productCreate": &graphql.Field{
				Type: productPayload,
				Args: graphql.FieldConfigArgument{
					"slug":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"serial":          &graphql.ArgumentConfig{Type: graphql.String},
					"sortKey":         &graphql.ArgumentConfig{Type: graphql.Int},
					"priceAmount":     &graphql.ArgumentConfig{Type: graphql.Float},
					"priceSaleAmount": &graphql.ArgumentConfig{Type: graphql.Float},
					"placeId":         &graphql.ArgumentConfig{Type: graphql.ID},
					"supplierId":      &graphql.ArgumentConfig{Type: graphql.ID},
					"collectionId":    &graphql.ArgumentConfig{Type: graphql.ID},
					"collectionIds":   &graphql.ArgumentConfig{Type: graphql.NewList(graphql.ID)},
					"canSearch":       &graphql.ArgumentConfig{Type: graphql.Boolean},
					"isPublished":     &graphql.ArgumentConfig{Type: graphql.Boolean},
					"publishedAt":     &graphql.ArgumentConfig{Type: graphql.DateTime},
					"metadata":        &graphql.ArgumentConfig{Type: graphql.String},
					"translations":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(t.productTranslationInput))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					metadata, err := metadataArg(p.Args)
					if err != nil {
						return nil, err
					}
					req := productdomain.CreateRequest{
						Slug:            gql.String(p.Args, "slug"),
						Serial:          gql.StringPtr(p.Args, "serial"),
						SortKey:         gql.IntPtr(p.Args, "sortKey"),
						PriceAmount:     gql.FloatPtr(p.Args, "priceAmount"),
						PriceSaleAmount: gql.FloatPtr(p.Args, "priceSaleAmount"),
						PlaceID:         gql.StringPtr(p.Args, "placeId"),
						SupplierID:      gql.StringPtr(p.Args, "supplierId"),
						CollectionID:    gql.StringPtr(p.Args, "collectionId"),
						CollectionIDs:   gql.StringList(p.Args, "collectionIds"),
						CanSearch:       gql.BoolPtr(p.Args, "canSearch"),
						IsPublished:     gql.BoolPtr(p.Args, "isPublished"),
						PublishedAt:     gql.TimePtr(p.Args, "publishedAt"),
						Metadata:        metadata,
						Translations:    productTranslationInputs(p.Args["translations"]),
					}
					product, err := r.products.Create(p.Context, scope, req)
					if err != nil {
						return nil, err
					}
					return payload("product", product), nil
				},
			},
			"productUpdate": &graphql.Field{
				Type: productPayload,
				Args: graphql.FieldConfigArgument{
					"id":              &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"slug":            &graphql.ArgumentConfig{Type: graphql.String},
					"serial":          &graphql.ArgumentConfig{Type: graphql.String},
					"sortKey":         &graphql.ArgumentConfig{Type: graphql.Int},
					"priceAmount":     &graphql.ArgumentConfig{Type: graphql.Float},
					"priceSaleAmount": &graphql.ArgumentConfig{Type: graphql.Float},
					"placeId":         &graphql.ArgumentConfig{Type: graphql.ID},
					"supplierId":      &graphql.ArgumentConfig{Type: graphql.ID},
					"collectionId":    &graphql.ArgumentConfig{Type: graphql.ID},
					"collectionIds":   &graphql.ArgumentConfig{Type: graphql.NewList(graphql.ID)},
					"canSearch":       &graphql.ArgumentConfig{Type: graphql.Boolean},
					"isPublished":     &graphql.ArgumentConfig{Type: graphql.Boolean},
					"publishedAt":     &graphql.ArgumentConfig{Type: graphql.DateTime},
					"metadata":        &graphql.ArgumentConfig{Type: graphql.String},
					"translations":    &graphql.ArgumentConfig{Type: graphql.NewList(t.productTranslationInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					metadata, err := optionalMetadataArg(p.Args)
					if err != nil {
						return nil, err
					}
					req := productdomain.UpdateRequest{
						ID:              gql.String(p.Args, "id"),
						Slug:            gql.OptionalString(p.Args, "slug"),
						Serial:          gql.OptionalString(p.Args, "serial"),
						SortKey:         gql.OptionalInt(p.Args, "sortKey"),
						PriceAmount:     gql.OptionalFloat(p.Args, "priceAmount"),
						PriceSaleAmount: gql.OptionalFloat(p.Args, "priceSaleAmount"),
						PlaceID:         gql.OptionalString(p.Args, "placeId"),
						SupplierID:      gql.OptionalString(p.Args, "supplierId"),
						CollectionID:    gql.OptionalString(p.Args, "collectionId"),
						CollectionIDs:   gql.OptionalStringList(p.Args, "collectionIds"),
						CanSearch:       gql.OptionalBool(p.Args, "canSearch"),
						IsPublished:     gql.OptionalBool(p.Args, "isPublished"),
						PublishedAt:     gql.OptionalTime(p.Args, "publishedAt"),
						Metadata:        metadata,
						Translations:    productTranslationInputs(p.Args["translations"]),
					}
					product, err := r.products.Update(p.Context, scope, req)
					if err != nil {
						return nil, err
					}
					return payload("product", product), nil
				},
			},
			"productDeleteBatch": &graphql.Field{
				Type: deletePayload,
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.ID))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					report, err := r.products.DeleteBatch(p.Context, scope, gql.StringList(p.Args, "ids"))
					if err != nil {
						return nil, err
					}
					return batchPayload(report), nil
				},
			},
			"productOptionCreate": &graphql.Field{
				Type: optionPayload,
				Args: graphql.FieldConfigArgument{
					"productId":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"sortKey":      &graphql.ArgumentConfig{Type: graphql.Int},
					"translations": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(t.nameTranslationInput))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					sortKey := 0
					if v := gql.IntPtr(p.Args, "sortKey"); v != nil {
						sortKey = *v
					}
					option, err := r.options.Create(p.Context, scope, productoptiondomain.CreateRequest{
						ProductID:    gql.String(p.Args, "productId"),
						SortKey:      sortKey,
						Translations: optionTranslationInputs(p.Args["translations"]),
					})
					if err != nil {
						return nil, err
					}
					return payload("productOption", option), nil
				},
			},
			"productOptionUpdate": &graphql.Field{
				Type: optionPayload,
				Args: graphql.FieldConfigArgument{
					"id":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"sortKey":      &graphql.ArgumentConfig{Type: graphql.Int},
					"translations": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(t.nameTranslationInput))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					sortKey := 0
					if v := gql.IntPtr(p.Args, "sortKey"); v != nil {
						sortKey = *v
					}
					option, err := r.options.Update(p.Context, scope, productoptiondomain.UpdateRequest{
						ID:           gql.String(p.Args, "id"),
						SortKey:      sortKey,
						Translations: optionTranslationInputs(p.Args["translations"]),
					})
					if err != nil {
						return nil, err
					}
					return payload("productOption", option), nil
				},
			},
			"productOptionDeleteBatch": &graphql.Field{
				Type: deletePayload,
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.ID))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					report, err := r.options.DeleteBatch(p.Context, scope, gql.StringList(p.Args, "ids"))
					if err != nil {
						return nil, err
					}
					return batchPayload(report), nil
				},
			},
			"productOptionValueCreate": &graphql.Field{
				Type: valuePayload,
				Args: graphql.FieldConfigArgument{
					"optionId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"sortKey":      &graphql.ArgumentConfig{Type: graphql.Int},
					"translations": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(t.nameTranslationInput))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					sortKey := 0
					if v := gql.IntPtr(p.Args, "sortKey"); v != nil {
						sortKey = *v
					}
					value, err := r.values.Create(p.Context, scope, optionvaluedomain.CreateRequest{
						OptionID:     gql.String(p.Args, "optionId"),
						SortKey:      sortKey,
						Translations: valueTranslationInputs(p.Args["translations"]),
					})
					if err != nil {
						return nil, err
					}
					return payload("productOptionValue", value), nil
				},
			},
			"productOptionValueUpdate": &graphql.Field{
				Type: valuePayload,
				Args: graphql.FieldConfigArgument{
					"id":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"sortKey":      &graphql.ArgumentConfig{Type: graphql.Int},
					"translations": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(t.nameTranslationInput))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					sortKey := 0
					if v := gql.IntPtr(p.Args, "sortKey"); v != nil {
						sortKey = *v
					}
					value, err := r.values.Update(p.Context, scope, optionvaluedomain.UpdateRequest{
						ID:           gql.String(p.Args, "id"),
						SortKey:      sortKey,
						Translations: valueTranslationInputs(p.Args["translations"]),
					})
					if err != nil {
						return nil, err
					}
					return payload("productOptionValue", value), nil
				},
			},
			"productOptionValueDeleteBatch": &graphql.Field{
				Type: deletePayload,
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.ID))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					report, err := r.values.DeleteBatch(p.Context, scope, gql.StringList(p.Args, "ids"))
					if err != nil {
						return nil, err
					}
					return batchPayload(report), nil
				},
			},
			"variantCreate": &graphql.Field{
				Type: variantPayload,
				Args: graphql.FieldConfigArgument{
					"productId":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"sku":             &graphql.ArgumentConfig{Type: graphql.String},
					"priceAmount":     &graphql.ArgumentConfig{Type: graphql.Float},
					"priceSaleAmount": &graphql.ArgumentConfig{Type: graphql.Float},
					"optionValues":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.ID))},
					"isPublished":     &graphql.ArgumentConfig{Type: graphql.Boolean},
					"publishedAt":     &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					variant, err := r.variants.Create(p.Context, scope, variantdomain.CreateRequest{
						ProductID:       gql.String(p.Args, "productId"),
						SKU:             gql.StringPtr(p.Args, "sku"),
						PriceAmount:     gql.FloatPtr(p.Args, "priceAmount"),
						PriceSaleAmount: gql.FloatPtr(p.Args, "priceSaleAmount"),
						OptionValues:    gql.StringList(p.Args, "optionValues"),
						IsPublished:     gql.BoolPtr(p.Args, "isPublished"),
						PublishedAt:     gql.TimePtr(p.Args, "publishedAt"),
					})
					if err != nil {
						return nil, err
					}
					return payload("variant", variant), nil
				},
			},
			"variantUpdate": &graphql.Field{
				Type: variantPayload,
				Args: graphql.FieldConfigArgument{
					"id":              &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"productId":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"sku":             &graphql.ArgumentConfig{Type: graphql.String},
					"priceAmount":     &graphql.ArgumentConfig{Type: graphql.Float},
					"priceSaleAmount": &graphql.ArgumentConfig{Type: graphql.Float},
					"optionValues":    &graphql.ArgumentConfig{Type: graphql.NewList(graphql.ID)},
					"isPublished":     &graphql.ArgumentConfig{Type: graphql.Boolean},
					"publishedAt":     &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					variant, err := r.variants.Update(p.Context, scope, variantdomain.UpdateRequest{
						ID:              gql.String(p.Args, "id"),
						ProductID:       gql.String(p.Args, "productId"),
						SKU:             gql.OptionalString(p.Args, "sku"),
						PriceAmount:     gql.OptionalFloat(p.Args, "priceAmount"),
						PriceSaleAmount: gql.OptionalFloat(p.Args, "priceSaleAmount"),
						OptionValues:    gql.StringList(p.Args, "optionValues"),
						IsPublished:     gql.OptionalBool(p.Args, "isPublished"),
						PublishedAt:     gql.OptionalTime(p.Args, "publishedAt"),
					})
					if err != nil {
						return nil, err
					}
					return payload("variant", variant), nil
				},
			},
			"variantDeleteBatch": &graphql.Field{
				Type: deletePayload,
				Args: graphql.FieldConfigArgument{
					"ids": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.ID))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					report, err := r.variants.DeleteBatch(p.Context, scope, gql.StringList(p.Args, "ids"))
					if err != nil {
						return nil, err
					}
					return batchPayload(report), nil
				},
			},
			"collectionCreate": &graphql.Field{
				Type: collectionPayload,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"isPublished": &graphql.ArgumentConfig{Type: graphql.Boolean},
					"publishedAt": &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					collection, err := r.collections.Create(p.Context, scope, collectiondomain.CreateRequest{
						Name:        gql.String(p.Args, "name"),
						IsPublished: gql.BoolPtr(p.Args, "isPublished"),
						PublishedAt: gql.TimePtr(p.Args, "publishedAt"),
					})
					if err != nil {
						return nil, err
					}
					return payload("collection", collection), nil
				},
			},
		},
	})
}
