// File: internal/handler/categories/category.go
package categories

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/internal/api"
	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createCategory          = store.CreateCategory
	getCategoryByID         = store.GetCategoryByID
	listCategories          = store.ListCategories
	updateCategory          = store.UpdateCategory
	deleteCategory          = store.DeleteCategory
	countProductsByCategory = store.CountProductsByCategory
	listProducts            = store.ListProducts
)

func toCategoryResponse(cat *model.Category) api.CategoryResponse {
	return api.CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt,
	}
}

func toProductResponse(p *model.Product) api.ProductResponse {
	return api.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// @Summary     Create a category
// @Description 建立商品分類，名稱不可重複
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body     api.CreateCategoryRequest true "分類資料"
// @Success     201     {object} api.CategoryResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     409     {object} api.ErrorResponse "分類名稱已存在"
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /categories [post]
func CreateCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateCategoryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		cat, err := createCategory(c.Request().Context(), db, &model.Category{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "category name already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, toCategoryResponse(cat))
	}
}

// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Success     200 {array}  api.CategoryResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /categories [get]
func ListCategoriesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		cats, err := listCategories(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.CategoryResponse, 0, len(cats))
		for i := range cats {
			resp = append(resp, toCategoryResponse(&cats[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a category by ID
// @Tags        categories
// @Produce     json
// @Param       category_id path     int true "分類 ID"
// @Success     200         {object} api.CategoryResponse
// @Failure     400         {object} api.ErrorResponse
// @Failure     404         {object} api.ErrorResponse "分類不存在"
// @Security    ApiKeyAuth
// @Router      /categories/{category_id} [get]
func GetCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("category_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category ID"})
		}
		cat, err := getCategoryByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
		}
		return c.JSON(http.StatusOK, toCategoryResponse(cat))
	}
}

// @Summary     Update a category by ID
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       category_id path     int                       true "分類 ID"
// @Param       request     body     api.UpdateCategoryRequest true "更新資料"
// @Success     204         "No Content"
// @Failure     400         {object} api.ErrorResponse
// @Failure     404         {object} api.ErrorResponse
// @Failure     409         {object} api.ErrorResponse
// @Failure     500         {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /categories/{category_id} [put]
func UpdateCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("category_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category ID"})
		}

		var req api.UpdateCategoryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		err = updateCategory(c.Request().Context(), db, &model.Category{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
		})
		switch {
		case err == nil:
			return c.NoContent(http.StatusNoContent)
		case store.IsUniqueViolation(err):
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "category name already exists"})
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
		default:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
	}
}

// @Summary     Delete a category by ID
// @Description 刪除分類，若分類下仍有商品則拒絕刪除
// @Tags        categories
// @Param       category_id path int true "分類 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse "分類下仍有商品"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /categories/{category_id} [delete]
func DeleteCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("category_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category ID"})
		}

		count, err := countProductsByCategory(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		if count > 0 {
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "category still has products"})
		}

		if err := deleteCategory(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     List products in a category
// @Tags        categories
// @Produce     json
// @Param       category_id path     int true "分類 ID"
// @Success     200         {array}  api.ProductResponse
// @Failure     400         {object} api.ErrorResponse
// @Failure     404         {object} api.ErrorResponse "分類不存在"
// @Failure     500         {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /categories/{category_id}/products [get]
func ListCategoryProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("category_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category ID"})
		}
		if _, err := getCategoryByID(c.Request().Context(), db, id); err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
		}

		products, err := listProducts(c.Request().Context(), db, id, 0, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.ProductResponse, 0, len(products))
		for i := range products {
			resp = append(resp, toProductResponse(&products[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}
