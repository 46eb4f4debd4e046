package search

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

type roundTrip func(*http.Request) *http.Response

func (f roundTrip) RoundTrip(r *http.Request) (*http.Response, error) { return f(r), nil }

type seen struct {
	method string
	path   string
	body   string
}

func fakeES(t *testing.T, searchBody string, status int) (http.RoundTripper, *[]seen) {
	t.Helper()
	var calls []seen
	rt := roundTrip(func(r *http.Request) *http.Response {
		var body string
		if r.Body != nil {
			b, _ := io.ReadAll(r.Body)
			body = string(b)
		}
		calls = append(calls, seen{method: r.Method, path: r.URL.Path, body: body})

		payload := `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`
		code := http.StatusOK
		switch {
		case strings.HasSuffix(r.URL.Path, "/_search"):
			payload = searchBody
		case r.URL.Path != "/":
			payload = `{"result":"ok"}`
			code = status
		}
		h := http.Header{}
		h.Set("Content-Type", "application/json")
		h.Set("X-Elastic-Product", "Elasticsearch")
		return &http.Response{
			StatusCode: code,
			Header:     h,
			Body:       io.NopCloser(strings.NewReader(payload)),
			Request:    r,
		}
	})
	return rt, &calls
}

func newTestClient(t *testing.T, rt http.RoundTripper) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), Config{URL: "http://es.local:9200", Index: "products", Transport: rt}, logging.Discard())
	require.NoError(t, err)
	return c
}

func TestIndexAndDeleteProduct(t *testing.T) {
	rt, calls := fakeES(t, `{}`, http.StatusOK)
	c := newTestClient(t, rt)
	ctx := context.Background()

	err := c.IndexProduct(ctx, models.Product{ID: 3, Name: "Glitter Sandals", Price: decimal.NewFromInt(80)})
	require.NoError(t, err)
	require.NoError(t, c.DeleteProduct(ctx, 3))

	var paths []string
	for _, s := range *calls {
		paths = append(paths, s.method+" "+s.path)
	}
	assert.Contains(t, paths, "PUT /products/_doc/3")
	assert.Contains(t, paths, "DELETE /products/_doc/3")
}

func TestDeleteMissingDocumentIsNotAnError(t *testing.T) {
	rt, _ := fakeES(t, `{}`, http.StatusNotFound)
	c := newTestClient(t, rt)
	assert.NoError(t, c.DeleteProduct(context.Background(), 42))
}

func TestSearchIDs(t *testing.T) {
	rt, calls := fakeES(t, `{"hits":{"hits":[{"_source":{"id":2}},{"_source":{"id":1}}]}}`, http.StatusOK)
	c := newTestClient(t, rt)

	ids, err := c.SearchIDs(context.Background(), "dress", 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids)

	last := (*calls)[len(*calls)-1]
	assert.Contains(t, last.body, `"multi_match"`)
	assert.Contains(t, last.body, `"dress"`)
}

func TestIndexErrorStatus(t *testing.T) {
	rt, _ := fakeES(t, `{}`, http.StatusInternalServerError)
	c := newTestClient(t, rt)
	err := c.IndexProduct(context.Background(), models.Product{ID: 1})
	require.Error(t, err)
}
