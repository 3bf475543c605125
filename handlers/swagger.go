package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the item service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRoutes) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>jpo item service - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "jpo-item-service", "version": "v1.0.0" },
  "paths": {
    "/item": {
      "get": {
        "summary": "Advance the shared cursor and return the next 20 translation pairs",
        "responses": {
          "200": { "description": "page of items", "content": { "application/json": { "schema": {"type":"array","items":{"type":"object","properties":{"item":{"type":"object","properties":{"tn":{},"en":{}}},"id":{"type":"integer"}}}}}}},
          "404": { "description": "Items not found" },
          "500": { "description": "Internal Server Error" },
          "503": { "description": "database not connected yet" }
        }
      }
    },
    "/write_item": {
      "post": {
        "summary": "Store a user-edited translation",
        "description": "Fields are stored as sent, whatever their JSON type. Falsy status is stored as null.",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"orig_id":{},"tn":{},"en":{},"status":{}}}}}},
        "responses": {
          "201": { "description": "inserted", "content": { "application/json": { "schema": {"type":"object","properties":{"message":{"type":"string"},"inserted_id":{"type":"string"}}}}}},
          "400": { "description": "body is not JSON" },
          "500": { "description": "Internal Server Error" },
          "503": { "description": "database not connected yet" }
        }
      }
    },
    "/cursor": { "get": { "summary": "Current shared cursor value", "responses": { "200": { "description": "cursor" }, "404": { "description": "cursor record missing" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
