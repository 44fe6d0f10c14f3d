// File: internal/handler/tasks/task.go
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/api"
	"taskboard/internal/cache"
	"taskboard/internal/database"
	"taskboard/internal/events"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createTask       = store.CreateTask
	getTaskByID      = store.GetTaskByID
	listTasks        = store.ListTasks
	updateTask       = store.UpdateTask
	updateTaskStatus = store.UpdateTaskStatus
	deleteTask       = store.DeleteTask
	replaceTaskTags  = store.ReplaceTaskTags
	getTagsByTaskIDs = store.GetTagsByTaskIDs
	getUserByID      = store.GetUserByID
)

// 快取鍵與存活時間
const (
	taskCacheKeyFmt = "task:%d"
	taskCacheTTL    = time.Hour
)

func taskCacheKey(id int) string { return fmt.Sprintf(taskCacheKeyFmt, id) }

func toTaskResponse(t *model.Task) api.TaskResponse {
	tags := make([]api.TagResponse, 0, len(t.Tags))
	for i := range t.Tags {
		tags = append(tags, api.TagResponse{
			ID:        t.Tags[i].ID,
			Name:      t.Tags[i].Name,
			Color:     t.Tags[i].Color,
			CreatedAt: t.Tags[i].CreatedAt,
		})
	}
	return api.TaskResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		AssigneeID:  t.AssigneeID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Tags:        tags,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// canAccess 判斷 claims 是否可操作該任務
func canAccess(c echo.Context, t *model.Task) bool {
	claims := middleware.CurrentClaims(c)
	return claims.IsAdmin || t.OwnerID == claims.UserID
}

// loadTask 以讀取穿透快取取得任務與標籤
func loadTask(c echo.Context, db database.DB, rdb cache.Cache, id int) (*model.Task, error) {
	ctx := c.Request().Context()
	key := taskCacheKey(id)

	if raw, err := rdb.Get(ctx, key).Result(); err == nil {
		var t model.Task
		if err := json.Unmarshal([]byte(raw), &t); err == nil {
			return &t, nil
		}
		// 快取內容損毀時移除並回源
		rdb.Del(ctx, key)
	}

	t, err := getTaskByID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	tagsByTask, err := getTagsByTaskIDs(ctx, db, []int{t.ID})
	if err != nil {
		return nil, err
	}
	t.Tags = tagsByTask[t.ID]

	if payload, err := json.Marshal(t); err == nil {
		rdb.Set(ctx, key, payload, taskCacheTTL)
	}
	return t, nil
}

// @Summary     Create a task
// @Description 建立任務，擁有者為目前登入使用者，狀態預設為 todo
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       request body     api.CreateTaskRequest true "任務資料"
// @Success     201     {object} api.TaskResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse "指派對象不存在"
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks [post]
func CreateTaskHandler(db database.DB, bus events.Bus) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)

		var req api.CreateTaskRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if req.Status == "" {
			req.Status = model.StatusTodo
		}

		if req.AssigneeID != nil {
			if _, err := getUserByID(c.Request().Context(), db, *req.AssigneeID); err != nil {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "assignee not found"})
			}
		}

		t, err := createTask(c.Request().Context(), db, &model.Task{
			OwnerID:     claims.UserID,
			AssigneeID:  req.AssigneeID,
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
		})
		if err != nil {
			// 指派對象可能在檢查後被刪除，外鍵違反同樣視為不存在
			if store.IsForeignKeyViolation(err) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "assignee not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		bus.Publish(c.Request().Context(), model.TaskEvent{
			Type:    model.EventTaskCreated,
			TaskID:  t.ID,
			Status:  t.Status,
			ActorID: claims.UserID,
		})

		return c.JSON(http.StatusCreated, toTaskResponse(t))
	}
}

// @Summary     List tasks
// @Description 列出任務，可依狀態與標籤過濾，非管理員僅能看到自己的任務
// @Tags        tasks
// @Produce     json
// @Param       status query    string false "狀態 (todo/doing/done)"
// @Param       tag_id query    int    false "標籤 ID"
// @Success     200    {array}  api.TaskResponse
// @Failure     400    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks [get]
func ListTasksHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)

		filter := store.TaskFilter{}
		if !claims.IsAdmin {
			filter.OwnerID = claims.UserID
		}
		if status := c.QueryParam("status"); status != "" {
			if !model.ValidStatus(status) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid status"})
			}
			filter.Status = status
		}
		if raw := c.QueryParam("tag_id"); raw != "" {
			tagID, err := strconv.Atoi(raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid tag_id"})
			}
			filter.TagID = tagID
		}

		tasks, err := listTasks(c.Request().Context(), db, filter)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		if err := attachTags(c, db, tasks); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.TaskResponse, 0, len(tasks))
		for i := range tasks {
			resp = append(resp, toTaskResponse(&tasks[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a task by ID
// @Description 查詢任務詳細資料 (含標籤)，非管理員僅能查詢自己的任務
// @Tags        tasks
// @Produce     json
// @Param       task_id path     int true "任務 ID"
// @Success     200     {object} api.TaskResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     403     {object} api.ErrorResponse "非任務擁有者"
// @Failure     404     {object} api.ErrorResponse "任務不存在"
// @Security    ApiKeyAuth
// @Router      /tasks/{task_id} [get]
func GetTaskHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("task_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid task ID"})
		}

		t, err := loadTask(c, db, rdb, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "task not found"})
		}
		// 快取命中也要做權限檢查
		if !canAccess(c, t) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "not the task owner"})
		}
		return c.JSON(http.StatusOK, toTaskResponse(t))
	}
}

// @Summary     Update a task by ID
// @Description 更新任務標題、描述與指派對象，非管理員僅能更新自己的任務
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       task_id path     int                   true "任務 ID"
// @Param       request body     api.UpdateTaskRequest true "更新資料"
// @Success     204     "No Content"
// @Failure     400     {object} api.ErrorResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks/{task_id} [put]
func UpdateTaskHandler(db database.DB, rdb cache.Cache, bus events.Bus) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("task_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid task ID"})
		}

		var req api.UpdateTaskRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		t, err := getTaskByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "task not found"})
		}
		if !canAccess(c, t) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "not the task owner"})
		}

		if req.AssigneeID != nil {
			if _, err := getUserByID(c.Request().Context(), db, *req.AssigneeID); err != nil {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "assignee not found"})
			}
		}

		if err := updateTask(c.Request().Context(), db, &model.Task{
			ID:          id,
			AssigneeID:  req.AssigneeID,
			Title:       req.Title,
			Description: req.Description,
		}); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		rdb.Del(c.Request().Context(), taskCacheKey(id))
		bus.Publish(c.Request().Context(), model.TaskEvent{
			Type:    model.EventTaskUpdated,
			TaskID:  id,
			Status:  t.Status,
			ActorID: middleware.CurrentClaims(c).UserID,
		})

		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Move a task to another column
// @Description 變更任務狀態 (todo/doing/done)，發佈 task.moved 事件
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       task_id path     int                         true "任務 ID"
// @Param       request body     api.UpdateTaskStatusRequest true "目標狀態"
// @Success     204     "No Content"
// @Failure     400     {object} api.ErrorResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks/{task_id}/status [patch]
func UpdateTaskStatusHandler(db database.DB, rdb cache.Cache, bus events.Bus) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("task_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid task ID"})
		}

		var req api.UpdateTaskStatusRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		t, err := getTaskByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "task not found"})
		}
		if !canAccess(c, t) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "not the task owner"})
		}

		if err := updateTaskStatus(c.Request().Context(), db, id, req.Status); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "task not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		rdb.Del(c.Request().Context(), taskCacheKey(id))
		bus.Publish(c.Request().Context(), model.TaskEvent{
			Type:    model.EventTaskMoved,
			TaskID:  id,
			Status:  req.Status,
			ActorID: middleware.CurrentClaims(c).UserID,
		})

		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Replace task tags
// @Description 以指定的標籤集合取代任務現有標籤
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       task_id path     int                        true "任務 ID"
// @Param       request body     api.ReplaceTaskTagsRequest true "標籤 ID 集合"
// @Success     204     "No Content"
// @Failure     400     {object} api.ErrorResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse "任務或標籤不存在"
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks/{task_id}/tags [put]
func ReplaceTaskTagsHandler(db database.DB, rdb cache.Cache, bus events.Bus) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("task_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid task ID"})
		}

		var req api.ReplaceTaskTagsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		t, err := getTaskByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "task not found"})
		}
		if !canAccess(c, t) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "not the task owner"})
		}

		if err := replaceTaskTags(c.Request().Context(), db, id, req.TagIDs); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "tag not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		rdb.Del(c.Request().Context(), taskCacheKey(id))
		bus.Publish(c.Request().Context(), model.TaskEvent{
			Type:    model.EventTaskUpdated,
			TaskID:  id,
			Status:  t.Status,
			ActorID: middleware.CurrentClaims(c).UserID,
		})

		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Delete a task by ID
// @Description 刪除任務，非管理員僅能刪除自己的任務
// @Tags        tasks
// @Param       task_id path int true "任務 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks/{task_id} [delete]
func DeleteTaskHandler(db database.DB, rdb cache.Cache, bus events.Bus) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("task_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid task ID"})
		}

		t, err := getTaskByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "task not found"})
		}
		if !canAccess(c, t) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "not the task owner"})
		}

		if err := deleteTask(c.Request().Context(), db, id); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		rdb.Del(c.Request().Context(), taskCacheKey(id))
		bus.Publish(c.Request().Context(), model.TaskEvent{
			Type:    model.EventTaskDeleted,
			TaskID:  id,
			Status:  t.Status,
			ActorID: middleware.CurrentClaims(c).UserID,
		})

		return c.NoContent(http.StatusNoContent)
	}
}

// attachTags 以單一批次查詢將標籤掛回任務列表
func attachTags(c echo.Context, db database.DB, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]int, 0, len(tasks))
	for i := range tasks {
		ids = append(ids, tasks[i].ID)
	}
	tagsByTask, err := getTagsByTaskIDs(c.Request().Context(), db, ids)
	if err != nil {
		return err
	}
	for i := range tasks {
		tasks[i].Tags = tagsByTask[tasks[i].ID]
	}
	return nil
}
