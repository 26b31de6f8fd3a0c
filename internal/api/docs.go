package api

import (
	_ "embed"
	"net/http"
)

// openAPIDoc is the hand-maintained OpenAPI description of the inspection
// API. Keep it in sync with the routes in NewRouter.
//
//go:embed openapi.json
var openAPIDoc []byte

// ServeOpenAPIDoc serves the embedded OpenAPI document for the swagger UI.
func ServeOpenAPIDoc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(openAPIDoc)
}
