package tags

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
	ctx.SetPath("/tags/:tag_id")
	ctx.SetParamNames("tag_id")
	ctx.SetParamValues(val)
	return ctx, rec
}

func restore() {
	createTag = store.CreateTag
	getTagByID = store.GetTagByID
	listTags = store.ListTags
	updateTag = store.UpdateTag
	deleteTag = store.DeleteTag
}

func TestCreateTagHandler(t *testing.T) {
	e := echo.New()

	t.Run("duplicate name", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createTag = func(context.Context, database.DB, *model.Tag) (*model.Tag, error) {
			return nil, &pgconn.PgError{Code: "23505"}
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"backend"}`)
		require.NoError(t, CreateTagHandler(nil)(ctx))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("default color", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createTag = func(_ context.Context, _ database.DB, tag *model.Tag) (*model.Tag, error) {
			require.Equal(t, "#888888", tag.Color)
			out := *tag
			out.ID = 1
			out.CreatedAt = time.Now()
			return &out, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"backend"}`)
		require.NoError(t, CreateTagHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestGetTagHandler(t *testing.T) {
	e := echo.New()

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getTagByID = func(context.Context, database.DB, int) (*model.Tag, error) {
			return nil, store.ErrNotFound
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "9", "")
		require.NoError(t, GetTagHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getTagByID = func(_ context.Context, _ database.DB, id int) (*model.Tag, error) {
			return &model.Tag{ID: id, Name: "backend", Color: "#36b37e"}, nil
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "4", "")
		require.NoError(t, GetTagHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"color":"#36b37e"`)
	})
}

func TestUpdateTagHandler(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)

	e.Validator = &stubValidator{}
	updateTag = func(context.Context, database.DB, *model.Tag) error { return store.ErrNotFound }
	ctx, rec := newParamCtx(e, http.MethodPut, "9", `{"name":"backend"}`)
	require.NoError(t, UpdateTagHandler(nil)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTagHandler(t *testing.T) {
	e := echo.New()
	t.Cleanup(restore)

	deleteTag = func(_ context.Context, _ database.DB, id int) error {
		require.Equal(t, 4, id)
		return nil
	}
	ctx, rec := newParamCtx(e, http.MethodDelete, "4", "")
	require.NoError(t, DeleteTagHandler(nil)(ctx))
	require.Equal(t, http.StatusNoContent, rec.Code)
}
