package storefront

import (
	"github.com/graphql-go/graphql"
	gql "github.com/smallbiznis/mall/internal/graphql"
	"github.com/smallbiznis/mall/internal/tenant"
	"go.uber.org/zap"
)

func (r *resolver) mutationType(t *typeSet) *graphql.Object {
	productPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductPayload",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.Boolean},
			"product": &graphql.Field{Type: t.product},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"productCountAccessIncrement": &graphql.Field{
				Type: productPayload,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					scope, err := tenant.FromContext(p.Context)
					if err != nil {
						return nil, err
					}
					id := gql.String(p.Args, "id")
					// Throttled clients still get the product back; only the
					// counter write is skipped.
					if !r.limiter.Allow(p.Context, scope.ClientIP) {
						r.log.Debug("access increment throttled", zap.String("client_ip", scope.ClientIP))
						product, err := r.products.GetVisible(p.Context, scope, id)
						if err != nil {
							return nil, err
						}
						return map[string]interface{}{"success": true, "product": product}, nil
					}
					product, err := r.products.IncrementAccess(p.Context, scope, id)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{"success": true, "product": product}, nil
				},
			},
		},
	})
}
