package handlers

import (
	"net/http"

	"inkwell/metrics"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

type graphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// GraphQL executes a GraphQL request against the schema. Resolver
// errors stay in the response body with their status under
// extensions.code; only a malformed request body is an HTTP error.
func GraphQL(schema graphql.Schema, collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req graphQLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Request.Context(),
		})

		if collector != nil {
			if len(result.Errors) > 0 {
				collector.RecordGraphQL("error")
			} else {
				collector.RecordGraphQL("ok")
			}
		}

		c.JSON(http.StatusOK, result)
	}
}
