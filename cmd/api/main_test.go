package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The swagger middleware stats its FilePath inside New and panics when the
// file is missing, so the spec must ship with the binary and stay in step
// with the registered routes.
func TestSwaggerSpecShipsWithBinary(t *testing.T) {
	raw, err := os.ReadFile("../../docs/swagger.json")
	require.NoError(t, err, "docs/swagger.json must exist or the server panics at startup")

	var spec struct {
		Swagger string                            `json:"swagger"`
		Paths   map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &spec))
	assert.Equal(t, "2.0", spec.Swagger)

	// Every route the router registers
	routes := map[string][]string{
		"/api/auth/register":                  {"post"},
		"/api/auth/login":                     {"post"},
		"/api/products":                       {"post", "get"},
		"/api/products/{id}":                  {"get", "put", "delete"},
		"/api/stock":                          {"get"},
		"/api/stock/movements":                {"post"},
		"/api/stock/{productId}":              {"get"},
		"/api/stock/{productId}/movements":    {"get"},
		"/api/customers":                      {"post", "get"},
		"/api/customers/{id}":                 {"get", "put"},
		"/api/invoices":                       {"post", "get"},
		"/api/invoices/{id}":                  {"get"},
		"/api/invoices/{id}/pdf":              {"get"},
		"/api/quotations":                     {"post", "get"},
		"/api/quotations/{id}":                {"get"},
		"/api/quotations/{id}/status":         {"put"},
		"/api/quotations/{id}/convert":        {"post"},
		"/api/reports/dashboard":              {"get"},
		"/api/reports/sales":                  {"get"},
		"/api/reports/low-stock":              {"get"},
	}
	for path, methods := range routes {
		ops, ok := spec.Paths[path]
		if !assert.True(t, ok, "path %s missing from spec", path) {
			continue
		}
		for _, m := range methods {
			assert.Contains(t, ops, m, "method %s %s missing from spec", m, path)
		}
	}
}
