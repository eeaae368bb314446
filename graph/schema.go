package graph

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds the GraphQL schema around the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl":  &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	// User.posts and Post.creator reference each other, so both are
	// attached after construction.
	postType.AddFieldConfig("creator", &graphql.Field{
		Type: graphql.NewNonNull(userType),
	})
	userType.AddFieldConfig("posts", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
	})

	authDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthData",
		Fields: graphql.Fields{
			"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postsDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PostsData",
		Fields: graphql.Fields{
			"posts":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType)))},
			"totalPosts": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authDataType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.Login,
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(postsDataType),
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.PostsQuery,
			},
			"post": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.PostQuery,
			},
			"user": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: r.UserQuery,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: r.CreateUser,
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: r.CreatePost,
			},
			"updatePost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: r.UpdatePost,
			},
			"deletePost": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.DeletePost,
			},
			"updateStatus": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.UpdateStatus,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
