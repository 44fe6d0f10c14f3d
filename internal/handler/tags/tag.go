// File: internal/handler/tags/tag.go
package tags

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
	createTag  = store.CreateTag
	getTagByID = store.GetTagByID
	listTags   = store.ListTags
	updateTag  = store.UpdateTag
	deleteTag  = store.DeleteTag
)

const defaultColor = "#888888"

func toTagResponse(t *model.Tag) api.TagResponse {
	return api.TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

// @Summary     Create a tag
// @Description 建立標籤，名稱不可重複，僅管理員可用
// @Tags        tags
// @Accept      json
// @Produce     json
// @Param       request body     api.CreateTagRequest true "標籤資料"
// @Success     201     {object} api.TagResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     409     {object} api.ErrorResponse "標籤名稱已存在"
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tags [post]
func CreateTagHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateTagRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if req.Color == "" {
			req.Color = defaultColor
		}

		tag, err := createTag(c.Request().Context(), db, &model.Tag{
			Name:  req.Name,
			Color: req.Color,
		})
		if err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "tag name already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, toTagResponse(tag))
	}
}

// @Summary     List tags
// @Tags        tags
// @Produce     json
// @Success     200 {array}  api.TagResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tags [get]
func ListTagsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		tags, err := listTags(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.TagResponse, 0, len(tags))
		for i := range tags {
			resp = append(resp, toTagResponse(&tags[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a tag by ID
// @Tags        tags
// @Produce     json
// @Param       tag_id path     int true "標籤 ID"
// @Success     200    {object} api.TagResponse
// @Failure     400    {object} api.ErrorResponse
// @Failure     404    {object} api.ErrorResponse "標籤不存在"
// @Security    ApiKeyAuth
// @Router      /tags/{tag_id} [get]
func GetTagHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("tag_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid tag ID"})
		}
		tag, err := getTagByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "tag not found"})
		}
		return c.JSON(http.StatusOK, toTagResponse(tag))
	}
}

// @Summary     Update a tag by ID
// @Description 更新標籤名稱與顏色，僅管理員可用
// @Tags        tags
// @Accept      json
// @Produce     json
// @Param       tag_id  path     int                  true "標籤 ID"
// @Param       request body     api.UpdateTagRequest true "更新資料"
// @Success     204     "No Content"
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     409     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tags/{tag_id} [put]
func UpdateTagHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("tag_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid tag ID"})
		}

		var req api.UpdateTagRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if req.Color == "" {
			req.Color = defaultColor
		}

		err = updateTag(c.Request().Context(), db, &model.Tag{
			ID:    id,
			Name:  req.Name,
			Color: req.Color,
		})
		switch {
		case err == nil:
			return c.NoContent(http.StatusNoContent)
		case store.IsUniqueViolation(err):
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "tag name already exists"})
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "tag not found"})
		default:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
	}
}

// @Summary     Delete a tag by ID
// @Description 刪除標籤並解除與任務的關聯，僅管理員可用
// @Tags        tags
// @Param       tag_id path int true "標籤 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tags/{tag_id} [delete]
func DeleteTagHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("tag_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid tag ID"})
		}
		if err := deleteTag(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "tag not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
