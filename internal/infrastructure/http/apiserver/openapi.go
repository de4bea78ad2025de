package apiserver

import (
	"embed"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

//go:embed openapi.yaml
var openAPISpec embed.FS

// OpenAPIHandler provides OpenAPI/Swagger documentation endpoints
type OpenAPIHandler struct {
	logger *zap.Logger
	spec   []byte
}

// NewOpenAPIHandler creates a new OpenAPI handler
func NewOpenAPIHandler(logger *zap.Logger) *OpenAPIHandler {
	specData, err := openAPISpec.ReadFile("openapi.yaml")
	if err != nil {
		logger.Error("Failed to read OpenAPI spec", zap.Error(err))
		specData = []byte("# OpenAPI spec not available\n")
	}

	return &OpenAPIHandler{
		logger: logger,
		spec:   specData,
	}
}

// ServeOpenAPISpec serves the OpenAPI specification in YAML format
func (h *OpenAPIHandler) ServeOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.spec); err != nil {
		h.logger.Debug("Failed to write OpenAPI spec", zap.Error(err))
	}
}

// ServeSwaggerUI serves a basic Swagger UI interface
func (h *OpenAPIHandler) ServeSwaggerUI(w http.ResponseWriter, r *http.Request) {
	specURL := fmt.Sprintf("%s://%s/api/v1/openapi.yaml", getScheme(r), r.Host)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The UI loads its assets from a CDN, so the API-wide CSP is relaxed here.
	w.Header().Set("Content-Security-Policy", "default-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline' https://unpkg.com; script-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data: https:")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Matchmaker API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css" />
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({ url: %q, dom_id: '#swagger-ui' });
        };
    </script>
</body>
</html>`, specURL)
}

func getScheme(r *http.Request) string {
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		return "https"
	}
	return "http"
}
