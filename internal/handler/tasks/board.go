// File: internal/handler/tasks/board.go
package tasks

import (
	"net/http"

	"taskboard/internal/api"
	"taskboard/internal/database"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

// @Summary     Get the kanban board
// @Description 將任務依狀態分組為三個看板欄位並附上標籤，非管理員僅含自己的任務
// @Tags        tasks
// @Produce     json
// @Success     200 {object} api.BoardResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /board [get]
func GetBoardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)

		filter := store.TaskFilter{}
		if !claims.IsAdmin {
			filter.OwnerID = claims.UserID
		}

		tasks, err := listTasks(c.Request().Context(), db, filter)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		if err := attachTags(c, db, tasks); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		board := api.BoardResponse{
			Todo:  []api.TaskResponse{},
			Doing: []api.TaskResponse{},
			Done:  []api.TaskResponse{},
		}
		for i := range tasks {
			resp := toTaskResponse(&tasks[i])
			switch tasks[i].Status {
			case model.StatusDoing:
				board.Doing = append(board.Doing, resp)
			case model.StatusDone:
				board.Done = append(board.Done, resp)
			default:
				board.Todo = append(board.Todo, resp)
			}
		}
		return c.JSON(http.StatusOK, board)
	}
}
