package categories

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

func newJSONCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newParamCtx(e *echo.Echo, method, val, body string) (echo.Context, *httptest.ResponseRecorder) {
	ctx, rec := newJSONCtx(e, method, body)
	ctx.SetPath("/categories/:category_id")
	ctx.SetParamNames("category_id")
	ctx.SetParamValues(val)
	return ctx, rec
}

func restore() {
	createCategory = store.CreateCategory
	getCategoryByID = store.GetCategoryByID
	listCategories = store.ListCategories
	updateCategory = store.UpdateCategory
	deleteCategory = store.DeleteCategory
	countProductsByCategory = store.CountProductsByCategory
	listProducts = store.ListProducts
}

func TestCreateCategoryHandler(t *testing.T) {
	e := echo.New()

	t.Run("duplicate name", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createCategory = func(context.Context, database.DB, *model.Category) (*model.Category, error) {
			return nil, &pgconn.PgError{Code: "23505"}
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"Beverages"}`)
		require.NoError(t, CreateCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createCategory = func(_ context.Context, _ database.DB, cat *model.Category) (*model.Category, error) {
			out := *cat
			out.ID = 1
			out.CreatedAt = time.Now()
			return &out, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"Beverages","description":"drinks"}`)
		require.NoError(t, CreateCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"name":"Beverages"`)
	})
}

func TestGetCategoryHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getCategoryByID = func(context.Context, database.DB, int) (*model.Category, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "9", "")
		require.NoError(t, GetCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getCategoryByID = func(_ context.Context, _ database.DB, id int) (*model.Category, error) {
			return &model.Category{ID: id, Name: "Beverages"}, nil
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "3", "")
		require.NoError(t, GetCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"id":3`)
	})
}

func TestDeleteCategoryHandler(t *testing.T) {
	e := echo.New()

	t.Run("still has products", func(t *testing.T) {
		t.Cleanup(restore)
		countProductsByCategory = func(context.Context, database.DB, int) (int, error) { return 2, nil }
		ctx, rec := newParamCtx(e, http.MethodDelete, "3", "")
		require.NoError(t, DeleteCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Contains(t, rec.Body.String(), "still has products")
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		countProductsByCategory = func(context.Context, database.DB, int) (int, error) { return 0, nil }
		deleteCategory = func(context.Context, database.DB, int) error { return store.ErrNotFound }
		ctx, rec := newParamCtx(e, http.MethodDelete, "9", "")
		require.NoError(t, DeleteCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		countProductsByCategory = func(context.Context, database.DB, int) (int, error) { return 0, nil }
		deleteCategory = func(context.Context, database.DB, int) error { return nil }
		ctx, rec := newParamCtx(e, http.MethodDelete, "3", "")
		require.NoError(t, DeleteCategoryHandler(nil)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestListCategoryProductsHandler(t *testing.T) {
	e := echo.New()

	t.Run("category not found", func(t *testing.T) {
		t.Cleanup(restore)
		getCategoryByID = func(context.Context, database.DB, int) (*model.Category, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "9", "")
		require.NoError(t, ListCategoryProductsHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getCategoryByID = func(_ context.Context, _ database.DB, id int) (*model.Category, error) {
			return &model.Category{ID: id}, nil
		}
		listProducts = func(_ context.Context, _ database.DB, categoryID, _, _ int) ([]model.Product, error) {
			require.Equal(t, 3, categoryID)
			return []model.Product{{ID: 1, CategoryID: 3, SKU: "BEV-001"}}, nil
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "3", "")
		require.NoError(t, ListCategoryProductsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"sku":"BEV-001"`)
	})
}
