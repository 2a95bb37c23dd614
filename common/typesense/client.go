package typesense

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ts "github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"
)

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Client is the narrow surface the directory needs from Typesense.
type Client interface {
	// EnsureCollection creates the collection when it does not exist yet.
	EnsureCollection(ctx context.Context) error
	Upsert(ctx context.Context, doc CompanyDocument) error
	// Delete removes a document; a missing document is not an error.
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

type client struct {
	ts         *ts.Client
	collection string
}

func New(cfg Config) (Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("typesense url is required")
	}
	if cfg.Collection == "" {
		return nil, errors.New("typesense collection is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &client{
		ts: ts.NewClient(
			ts.WithServer(cfg.URL),
			ts.WithAPIKey(cfg.APIKey),
			ts.WithConnectionTimeout(timeout),
		),
		collection: cfg.Collection,
	}, nil
}

func (c *client) EnsureCollection(ctx context.Context) error {
	_, err := c.ts.Collection(c.collection).Retrieve(ctx)
	if err == nil {
		return nil
	}
	if !isStatus(err, http.StatusNotFound) {
		return fmt.Errorf("retrieving collection %s: %w", c.collection, err)
	}

	_, err = c.ts.Collections().Create(ctx, collectionSchema(c.collection))
	if err != nil && !isStatus(err, http.StatusConflict) {
		return fmt.Errorf("creating collection %s: %w", c.collection, err)
	}
	return nil
}

func (c *client) Upsert(ctx context.Context, doc CompanyDocument) error {
	_, err := c.ts.Collection(c.collection).Documents().Upsert(ctx, doc, &api.DocumentIndexParameters{})
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}
	return nil
}

func (c *client) Delete(ctx context.Context, id string) error {
	_, err := c.ts.Collection(c.collection).Document(id).Delete(ctx)
	if err != nil && !isStatus(err, http.StatusNotFound) {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	return nil
}

func (c *client) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	params := searchParams(req)

	res, err := c.ts.Collection(c.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", c.collection, err)
	}

	out := &SearchResult{}
	if res.Found != nil {
		out.Found = int64(*res.Found)
	}
	if res.Hits != nil {
		for _, h := range *res.Hits {
			if h.Document == nil {
				continue
			}
			id, _ := (*h.Document)["id"].(string)
			if id == "" {
				continue
			}
			hit := Hit{ID: id}
			if h.TextMatch != nil {
				hit.TextMatch = *h.TextMatch
			}
			out.Hits = append(out.Hits, hit)
		}
	}
	if res.FacetCounts != nil {
		for _, fc := range *res.FacetCounts {
			if fc.Counts == nil {
				continue
			}
			for _, v := range *fc.Counts {
				if v.Value == nil || v.Count == nil {
					continue
				}
				out.Facets = append(out.Facets, FacetValue{Value: *v.Value, Count: int64(*v.Count)})
			}
		}
	}
	return out, nil
}

func collectionSchema(name string) *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: name,
		Fields: []api.Field{
			{Name: "name", Type: "string", Index: pointer.False(), Optional: pointer.True()},
			{Name: "name_sort", Type: "string", Sort: pointer.True()},
			{Name: "search_name", Type: "string"},
			{Name: "search_document", Type: "string"},
			{Name: "region", Type: "string", Facet: pointer.True()},
			{Name: "categories", Type: "string[]", Facet: pointer.True()},
			{Name: "is_verified", Type: "bool", Facet: pointer.True()},
			{Name: "is_featured", Type: "bool"},
			{Name: "boost", Type: "int32"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("boost"),
	}
}

func searchParams(req SearchRequest) *api.SearchCollectionParams {
	q := req.Query
	if q == "" {
		q = "*"
	}

	params := &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String("search_name,search_document"),
		SortBy:  pointer.String(sortBy(req.Sort, req.Query != "")),
		Page:    pointer.Int(max(req.Page, 1)),
		PerPage: pointer.Int(req.PerPage),
	}
	if filter := FilterBy(req); filter != "" {
		params.FilterBy = pointer.String(filter)
	}
	if req.FacetBy != "" {
		params.FacetBy = pointer.String(req.FacetBy)
		params.MaxFacetValues = pointer.Int(100)
		params.PerPage = pointer.Int(0)
	}
	return params
}

// FilterBy renders the filter_by clause for req. Values are backtick-quoted
// so region and category names may contain commas and spaces.
func FilterBy(req SearchRequest) string {
	var clauses []string
	if req.Region != "" && req.FacetBy != FacetRegion {
		clauses = append(clauses, fmt.Sprintf("region:=%s", quote(req.Region)))
	}
	if req.Category != "" && req.FacetBy != FacetCategories {
		clauses = append(clauses, fmt.Sprintf("categories:=[%s]", quote(req.Category)))
	}
	if req.VerifiedOnly {
		clauses = append(clauses, "is_verified:=true")
	}
	return strings.Join(clauses, " && ")
}

func sortBy(order SortOrder, hasQuery bool) string {
	switch order {
	case SortName:
		return "name_sort:asc"
	case SortNewest:
		return "created_at:desc"
	}
	if hasQuery {
		return "_text_match:desc,boost:desc,name_sort:asc"
	}
	return "boost:desc,name_sort:asc"
}

func quote(v string) string {
	return "`" + strings.ReplaceAll(v, "`", "") + "`"
}

func isStatus(err error, status int) bool {
	var httpErr *ts.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == status
}
