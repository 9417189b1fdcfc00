package sdk

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// ListCategories returns every category (public endpoint).
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	return call[[]Category](ctx, c, request{method: http.MethodGet, path: "/categories"})
}

// GetCategory fetches a single category by id (public endpoint).
func (c *Client) GetCategory(ctx context.Context, id int64) (*Category, error) {
	category, err := call[Category](ctx, c, request{method: http.MethodGet, path: "/categories/" + strconv.FormatInt(id, 10)})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// MyCategories lists the categories owned by the signed-in servicer.
func (c *Client) MyCategories(ctx context.Context) ([]Category, error) {
	return call[[]Category](ctx, c, request{method: http.MethodGet, path: "/servicer/categories"})
}

// CreateCategory creates a category owned by the signed-in servicer.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	category, err := call[Category](ctx, c, request{method: http.MethodPost, path: "/servicer/categories", body: input})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory replaces the name and description of a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*Category, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	category, err := call[Category](ctx, c, request{method: http.MethodPut, path: servicerPath("categories", id), body: input})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory deletes a category. What happens to resources that still
// reference it is decided by the backend.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := call[discard](ctx, c, request{method: http.MethodDelete, path: servicerPath("categories", id)})
	return err
}

func servicerPath(collection string, id int64) string {
	return fmt.Sprintf("/servicer/%s/%d", collection, id)
}
