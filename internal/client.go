package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Template is a named, parameterized query registered in the warehouse under
// an owning user account. Views are the qualified output field names and
// ViewTypes their declared value types, index-aligned with Views.
type Template struct {
	Name      string   `json:"name"`
	Owner     string   `json:"owner"`
	Views     []string `json:"views"`
	ViewTypes []string `json:"viewTypes"`
}

// TemplateService is the capability contract the warehouse must provide:
// enumerate templates by owner, fetch a template by name and owner, and
// execute a template.
type TemplateService interface {
	TemplatesByOwner() (map[string][]string, error)
	Template(name string, owner string) (*Template, error)
	Execute(template *Template) ([][]interface{}, error)
}

// WarehouseClient talks to a warehouse web service over its JSON API.
// Calls are synchronous and blocking; transport failures propagate to the
// caller untranslated.
type WarehouseClient struct {
	BaseURL string
	Token   string

	client *http.Client
}

func NewWarehouseClient(baseURL string, token string) *WarehouseClient {
	return &WarehouseClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		client:  http.DefaultClient,
	}
}

func (c *WarehouseClient) String() string {
	return c.BaseURL
}

func (c *WarehouseClient) TemplatesByOwner() (map[string][]string, error) {
	var r struct {
		Templates []Template `json:"templates"`
	}
	err := c.get("/templates", nil, &r)
	if err != nil {
		return nil, err
	}

	templates := map[string][]string{}
	for _, t := range r.Templates {
		templates[t.Owner] = append(templates[t.Owner], t.Name)
	}
	return templates, nil
}

func (c *WarehouseClient) Template(name string, owner string) (*Template, error) {
	var r struct {
		Template *Template `json:"template"`
	}
	params := url.Values{}
	params.Set("name", name)
	params.Set("user", owner)
	err := c.get("/template", params, &r)
	if err != nil {
		return nil, err
	}
	if r.Template == nil {
		return nil, fmt.Errorf("template %s not returned by service", name)
	}
	return r.Template, nil
}

func (c *WarehouseClient) Execute(template *Template) ([][]interface{}, error) {
	var r struct {
		Results [][]interface{} `json:"results"`
	}
	params := url.Values{}
	params.Set("name", template.Name)
	params.Set("user", template.Owner)
	err := c.get("/template/results", params, &r)
	if err != nil {
		return nil, err
	}
	return r.Results, nil
}

func (c *WarehouseClient) get(path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("format", "json")
	if c.Token != "" {
		params.Set("token", c.Token)
	}

	res, err := c.client.Get(c.BaseURL + path + "?" + params.Encode())
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("[%s] %s", res.Status, e.Error)
		}
		return fmt.Errorf("[%s] request failed", res.Status)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
