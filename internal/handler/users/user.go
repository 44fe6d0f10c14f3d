// File: internal/handler/users/user.go
package users

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword       = service.HashPassword
	comparePassword    = service.ComparePassword
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	listUsers          = store.ListUsers
	updateUser         = store.UpdateUser
	updateUserPassword = store.UpdateUserPassword
	deleteUser         = store.DeleteUser
)

func toUserResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// @Summary     Create a new user
// @Description 建立使用者帳號，僅管理員可用 (Email 會自動轉小寫)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body     api.CreateUserRequest true "使用者資料"
// @Success     201     {object} api.UserResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     409     {object} api.ErrorResponse "名稱或 Email 已存在"
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			IsAdmin:      req.IsAdmin,
		})
		if err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "name or email already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, toUserResponse(user))
	}
}

// @Summary     List users
// @Description 列出所有使用者，僅管理員可用
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, toUserResponse(&users[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料，僅管理員可用
// @Tags        users
// @Produce     json
// @Param       user_id path     int true "使用者 ID"
// @Success     200     {object} api.UserResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse "使用者不存在"
// @Security    ApiKeyAuth
// @Router      /users/{user_id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}
		return c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// @Summary     Update a user by ID
// @Description 更新使用者姓名、Email 及管理員狀態，僅管理員可用
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user_id path     int                   true "使用者 ID"
// @Param       request body     api.UpdateUserRequest true "更新資料"
// @Success     204     "No Content"
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     409     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{user_id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		err = updateUser(c.Request().Context(), db, &model.User{
			ID:      id,
			Name:    req.Name,
			Email:   req.Email,
			IsAdmin: req.IsAdmin,
		})
		switch {
		case err == nil:
			return c.NoContent(http.StatusNoContent)
		case store.IsUniqueViolation(err):
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "name or email already exists"})
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		default:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
	}
}

// @Summary     Delete a user by ID
// @Description 刪除使用者帳號，僅管理員可用
// @Tags        users
// @Param       user_id path int true "使用者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{user_id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
