// File: internal/handler/products/product.go
package products

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
	createProduct   = store.CreateProduct
	getProductByID  = store.GetProductByID
	listProducts    = store.ListProducts
	updateProduct   = store.UpdateProduct
	deleteProduct   = store.DeleteProduct
	getCategoryByID = store.GetCategoryByID
)

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

// @Summary     Create a product
// @Description 建立商品，SKU 不可重複且分類必須存在
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       request body     api.CreateProductRequest true "商品資料"
// @Success     201     {object} api.ProductResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse "分類不存在"
// @Failure     409     {object} api.ErrorResponse "SKU 已存在"
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products [post]
func CreateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		if _, err := getCategoryByID(c.Request().Context(), db, req.CategoryID); err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
		}

		p, err := createProduct(c.Request().Context(), db, &model.Product{
			CategoryID:  req.CategoryID,
			SKU:         req.SKU,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
		})
		if err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "sku already exists"})
			}
			// 分類在前面檢查後仍可能被刪除，外鍵違反同樣視為分類不存在
			if store.IsForeignKeyViolation(err) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, toProductResponse(p))
	}
}

// @Summary     List products
// @Description 列出商品，可依分類過濾並分頁
// @Tags        products
// @Produce     json
// @Param       category_id query    int false "分類 ID"
// @Param       limit       query    int false "每頁筆數 (預設 100)"
// @Param       offset      query    int false "略過筆數"
// @Success     200         {array}  api.ProductResponse
// @Failure     400         {object} api.ErrorResponse
// @Failure     500         {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products [get]
func ListProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		categoryID, err := queryInt(c, "category_id", 0)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category_id"})
		}
		limit, err := queryInt(c, "limit", 0)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid limit"})
		}
		offset, err := queryInt(c, "offset", 0)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid offset"})
		}

		products, err := listProducts(c.Request().Context(), db, categoryID, limit, offset)
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

// @Summary     Get a product by ID
// @Tags        products
// @Produce     json
// @Param       product_id path     int true "商品 ID"
// @Success     200        {object} api.ProductResponse
// @Failure     400        {object} api.ErrorResponse
// @Failure     404        {object} api.ErrorResponse "商品不存在"
// @Security    ApiKeyAuth
// @Router      /products/{product_id} [get]
func GetProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		p, err := getProductByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
		}
		return c.JSON(http.StatusOK, toProductResponse(p))
	}
}

// @Summary     Update a product by ID
// @Description 更新商品資料，SKU 不可變更
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       product_id path     int                      true "商品 ID"
// @Param       request    body     api.UpdateProductRequest true "更新資料"
// @Success     204        "No Content"
// @Failure     400        {object} api.ErrorResponse
// @Failure     404        {object} api.ErrorResponse
// @Failure     500        {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{product_id} [put]
func UpdateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}

		var req api.UpdateProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		if _, err := getCategoryByID(c.Request().Context(), db, req.CategoryID); err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
		}

		err = updateProduct(c.Request().Context(), db, &model.Product{
			ID:          id,
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
		})
		switch {
		case err == nil:
			return c.NoContent(http.StatusNoContent)
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
		case store.IsForeignKeyViolation(err):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "category not found"})
		default:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
	}
}

// @Summary     Delete a product by ID
// @Tags        products
// @Param       product_id path int true "商品 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /products/{product_id} [delete]
func DeleteProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		if err := deleteProduct(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
