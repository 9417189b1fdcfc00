package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CategoryRef identifies a category either by id or by name. The backend
// filters by id; name references are resolved through ListCategories first.
type CategoryRef struct {
	id   int64
	name string
}

// CategoryByID references a category by its numeric id.
func CategoryByID(id int64) CategoryRef {
	return CategoryRef{id: id}
}

// CategoryByName references a category by its display name (case-insensitive).
func CategoryByName(name string) CategoryRef {
	return CategoryRef{name: strings.TrimSpace(name)}
}

// IsZero reports whether the reference selects no category.
func (r CategoryRef) IsZero() bool {
	return r.id == 0 && r.name == ""
}

// ID returns the id and whether the reference is id-based.
func (r CategoryRef) ID() (int64, bool) {
	return r.id, r.id != 0
}

// Name returns the name and whether the reference is name-based.
func (r CategoryRef) Name() (string, bool) {
	return r.name, r.id == 0 && r.name != ""
}

func (r CategoryRef) String() string {
	if r.id != 0 {
		return "#" + strconv.FormatInt(r.id, 10)
	}
	return r.name
}

// ResourceFilter narrows ListResources.
type ResourceFilter struct {
	Category CategoryRef
	Search   string
}

// ListResources searches the public resource catalogue.
func (c *Client) ListResources(ctx context.Context, filter ResourceFilter) ([]Resource, error) {
	query := url.Values{}
	if !filter.Category.IsZero() {
		id, err := c.ResolveCategory(ctx, filter.Category)
		if err != nil {
			return nil, err
		}
		query.Set("categoryId", strconv.FormatInt(id, 10))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query.Set("search", search)
	}
	return call[[]Resource](ctx, c, request{method: http.MethodGet, path: "/resources", query: query})
}

// ResolveCategory maps a category reference to the id the backend filters by.
func (c *Client) ResolveCategory(ctx context.Context, ref CategoryRef) (int64, error) {
	if id, ok := ref.ID(); ok {
		return id, nil
	}
	name, ok := ref.Name()
	if !ok {
		return 0, &ValidationError{Field: "category", Message: "category reference is empty"}
	}
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve category %q: %w", name, err)
	}
	for _, category := range categories {
		if strings.EqualFold(category.Name, name) {
			return category.ID, nil
		}
	}
	return 0, &ValidationError{Field: "category", Message: fmt.Sprintf("no category named %q", name)}
}

// GetResource fetches a single resource (public endpoint).
func (c *Client) GetResource(ctx context.Context, id int64) (*Resource, error) {
	resource, err := call[Resource](ctx, c, request{method: http.MethodGet, path: "/resources/" + strconv.FormatInt(id, 10)})
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// MyResources lists the resources owned by the signed-in servicer.
func (c *Client) MyResources(ctx context.Context) ([]Resource, error) {
	return call[[]Resource](ctx, c, request{method: http.MethodGet, path: "/servicer/resources"})
}

// CreateResource creates a resource in one of the servicer's categories.
func (c *Client) CreateResource(ctx context.Context, input ResourceInput) (*Resource, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	resource, err := call[Resource](ctx, c, request{method: http.MethodPost, path: "/servicer/resources", body: input})
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// UpdateResource replaces a resource's fields.
func (c *Client) UpdateResource(ctx context.Context, id int64, input ResourceInput) (*Resource, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	resource, err := call[Resource](ctx, c, request{method: http.MethodPut, path: servicerPath("resources", id), body: input})
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// DeleteResource deletes a resource owned by the servicer.
func (c *Client) DeleteResource(ctx context.Context, id int64) error {
	_, err := call[discard](ctx, c, request{method: http.MethodDelete, path: servicerPath("resources", id)})
	return err
}
