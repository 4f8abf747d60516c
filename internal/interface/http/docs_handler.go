package handlers

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggest/swgui/v5emb"
)

const (
	OpenAPIPath = "/swagger.yaml"
	DocsPath    = "/api-docs/"
)

// openAPIDoc is the OpenAPI document served at OpenAPIPath.
//
//go:embed openapi/openapi.yaml
var openAPIDoc []byte

// OpenAPIDocument GET /swagger.yaml
func OpenAPIDocument(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", openAPIDoc)
}

// SwaggerUI serves the Swagger playground under DocsPath.
func SwaggerUI(title string) gin.HandlerFunc {
	return gin.WrapH(v5emb.New(title, OpenAPIPath, DocsPath))
}
