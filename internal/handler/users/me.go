// File: internal/handler/users/me.go
package users

import (
	"net/http"
	"net/mail"
	"strings"

	"taskboard/internal/api"
	"taskboard/internal/database"
	"taskboard/internal/logger"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// @Summary     Get current user
// @Description 回傳目前登入使用者的詳細資料
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)
		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}
		return c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// @Summary     Update current user
// @Description 更新目前登入使用者的姓名與 Email (不可變更管理員狀態)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.UpdateMyUserRequest true "更新資料"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [put]
func UpdateMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)

		var req api.UpdateMyUserRequest
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

		if err := updateUser(c.Request().Context(), db, &model.User{
			ID:      claims.UserID,
			Name:    req.Name,
			Email:   req.Email,
			IsAdmin: claims.IsAdmin,
		}); err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "name or email already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Delete current user
// @Description 刪除目前登入使用者的帳號
// @Tags        users
// @Success     204 "No Content"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [delete]
func DeleteMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)
		if err := deleteUser(c.Request().Context(), db, claims.UserID); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		logger.Audit.Info("user deleted own account", zap.Int("user_id", claims.UserID))
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Change current user's password
// @Description 驗證舊密碼後更新為新密碼
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.UpdateMyPasswordRequest true "密碼資料"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse "舊密碼錯誤"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me/password [patch]
func UpdateMyPasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)

		var req api.UpdateMyPasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}

		if err := comparePassword(user.PasswordHash, req.OldPassword); err != nil {
			logger.Security.Warn("password change rejected",
				zap.Int("user_id", claims.UserID),
				zap.String("reason", "bad old password"),
			)
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "old password is incorrect"})
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}
		if err := updateUserPassword(c.Request().Context(), db, claims.UserID, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		logger.Audit.Info("password changed", zap.Int("user_id", claims.UserID))
		return c.NoContent(http.StatusNoContent)
	}
}
