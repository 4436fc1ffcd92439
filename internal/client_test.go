package internal

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplatesByOwner(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewWarehouseClient(server.URL, "")
	templates, err := client.TemplatesByOwner()
	assert.Nil(t, err)
	assert.Equal(t, map[string][]string{
		"researcher": {"GeneSymbols"},
		"curator":    {"ProteinDomains"},
	}, templates)
}

func TestTemplate(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewWarehouseClient(server.URL, "")
	template, err := client.Template("GeneSymbols", "researcher")
	assert.Nil(t, err)
	assert.Equal(t, []string{"Gene.symbol", "Gene.length"}, template.Views)
	assert.Equal(t, []string{"java.lang.String", "java.lang.Integer"}, template.ViewTypes)
}

func TestExecute(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewWarehouseClient(server.URL, "")
	rows, err := client.Execute(&Template{Name: "GeneSymbols", Owner: "researcher"})
	assert.Nil(t, err)
	assert.Equal(t, 2, len(rows))
	assert.Equal(t, "BRCA2", rows[0][0])
	assert.Equal(t, float64(84793), rows[0][1])
}

func TestToken(t *testing.T) {
	var token string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = r.URL.Query().Get("token")
		fmt.Fprint(w, `{"templates": []}`)
	}))
	defer server.Close()

	client := NewWarehouseClient(server.URL, "secret")
	_, err := client.TemplatesByOwner()
	assert.Nil(t, err)
	assert.Equal(t, "secret", token)
}

func TestServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "invalid token"}`)
	}))
	defer server.Close()

	client := NewWarehouseClient(server.URL, "bad")
	_, err := client.TemplatesByOwner()
	assert.Contains(t, err.Error(), "invalid token")
}

// helpers

func newTestServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		switch r.URL.Path {
		case "/templates":
			fmt.Fprint(w, `{"templates": [
				{"name": "GeneSymbols", "owner": "researcher"},
				{"name": "ProteinDomains", "owner": "curator"}
			]}`)
		case "/template":
			assert.Equal(t, "GeneSymbols", r.URL.Query().Get("name"))
			assert.Equal(t, "researcher", r.URL.Query().Get("user"))
			fmt.Fprint(w, `{"template": {
				"name": "GeneSymbols",
				"owner": "researcher",
				"views": ["Gene.symbol", "Gene.length"],
				"viewTypes": ["java.lang.String", "java.lang.Integer"]
			}}`)
		case "/template/results":
			fmt.Fprint(w, `{"results": [["BRCA2", 84793], ["TP53", 19149]]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error": "not found"}`)
		}
	}))
}
