package products

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newJSONCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newParamCtx(e *echo.Echo, method, val, body string) (echo.Context, *httptest.ResponseRecorder) {
	ctx, rec := newJSONCtx(e, method, "/", body)
	ctx.SetPath("/products/:product_id")
	ctx.SetParamNames("product_id")
	ctx.SetParamValues(val)
	return ctx, rec
}

func restore() {
	createProduct = store.CreateProduct
	getProductByID = store.GetProductByID
	listProducts = store.ListProducts
	updateProduct = store.UpdateProduct
	deleteProduct = store.DeleteProduct
	getCategoryByID = store.GetCategoryByID
}

func TestCreateProductHandler(t *testing.T) {
	e := echo.New()

	t.Run("category not found", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getCategoryByID = func(context.Context, database.DB, int) (*model.Category, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/", `{"category_id":9,"sku":"X","name":"x"}`)
		require.NoError(t, CreateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "category not found")
	})

	t.Run("duplicate sku", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getCategoryByID = func(_ context.Context, _ database.DB, id int) (*model.Category, error) {
			return &model.Category{ID: id}, nil
		}
		createProduct = func(context.Context, database.DB, *model.Product) (*model.Product, error) {
			return nil, &pgconn.PgError{Code: "23505"}
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/", `{"category_id":1,"sku":"BEV-001","name":"x"}`)
		require.NoError(t, CreateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("category deleted before insert", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getCategoryByID = func(_ context.Context, _ database.DB, id int) (*model.Category, error) {
			return &model.Category{ID: id}, nil
		}
		createProduct = func(context.Context, database.DB, *model.Product) (*model.Product, error) {
			return nil, &pgconn.PgError{Code: "23503"}
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/", `{"category_id":1,"sku":"BEV-001","name":"x"}`)
		require.NoError(t, CreateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "category not found")
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getCategoryByID = func(_ context.Context, _ database.DB, id int) (*model.Category, error) {
			return &model.Category{ID: id}, nil
		}
		createProduct = func(_ context.Context, _ database.DB, p *model.Product) (*model.Product, error) {
			out := *p
			out.ID = 1
			out.CreatedAt = time.Now()
			out.UpdatedAt = out.CreatedAt
			return &out, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/", `{"category_id":1,"sku":"BEV-001","name":"Espresso","price":2.5,"stock":10}`)
		require.NoError(t, CreateProductHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"sku":"BEV-001"`)
	})
}

func TestListProductsHandler(t *testing.T) {
	e := echo.New()

	t.Run("bad limit", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newJSONCtx(e, http.MethodGet, "/?limit=abc", "")
		require.NoError(t, ListProductsHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("passes filters", func(t *testing.T) {
		t.Cleanup(restore)
		listProducts = func(_ context.Context, _ database.DB, categoryID, limit, offset int) ([]model.Product, error) {
			require.Equal(t, 2, categoryID)
			require.Equal(t, 10, limit)
			require.Equal(t, 20, offset)
			return []model.Product{}, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "/?category_id=2&limit=10&offset=20", "")
		require.NoError(t, ListProductsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "[]\n", rec.Body.String())
	})
}

func TestGetProductHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getProductByID = func(context.Context, database.DB, int) (*model.Product, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "9", "")
		require.NoError(t, GetProductHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getProductByID = func(_ context.Context, _ database.DB, id int) (*model.Product, error) {
			return &model.Product{ID: id, SKU: "BEV-001"}, nil
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "5", "")
		require.NoError(t, GetProductHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":5`)
	})
}

func TestUpdateProductHandler(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)

	e.Validator = &stubValidator{}
	getCategoryByID = func(_ context.Context, _ database.DB, id int) (*model.Category, error) {
		return &model.Category{ID: id}, nil
	}
	var got *model.Product
	updateProduct = func(_ context.Context, _ database.DB, p *model.Product) error { got = p; return nil }
	ctx, rec := newParamCtx(e, http.MethodPut, "5", `{"category_id":2,"name":"Espresso","price":3,"stock":7}`)
	require.NoError(t, UpdateProductHandler(nil)(ctx))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 5, got.ID)
	require.Equal(t, 2, got.CategoryID)

	updateProduct = func(context.Context, database.DB, *model.Product) error {
		return &pgconn.PgError{Code: "23503"}
	}
	ctx, rec = newParamCtx(e, http.MethodPut, "5", `{"category_id":2,"name":"Espresso","price":3,"stock":7}`)
	require.NoError(t, UpdateProductHandler(nil)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "category not found")
}

func TestDeleteProductHandler(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)

	deleteProduct = func(context.Context, database.DB, int) error { return store.ErrNotFound }
	ctx, rec := newParamCtx(e, http.MethodDelete, "9", "")
	require.NoError(t, DeleteProductHandler(nil)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
