// File: internal/handler/auth/auth.go
package auth

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"taskboard/internal/api"
	"taskboard/internal/database"
	"taskboard/internal/logger"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	createUser       = store.CreateUser
	getUserByName    = store.GetUserByName
)

const accessTokenTTL = 24 * time.Hour

// @Summary     Register a new account
// @Description 建立一般使用者帳號 (Email 會自動轉小寫，不可註冊為管理員)
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     api.RegisterRequest true "註冊資料"
// @Success     201     {object} api.UserResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     409     {object} api.ErrorResponse "名稱或 Email 已存在"
// @Failure     500     {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
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

		// 註冊一律為一般使用者，管理員只能由管理員建立
		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "name or email already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		logger.Audit.Info("user registered",
			zap.Int("user_id", user.ID),
			zap.String("name", user.Name),
		)

		return c.JSON(http.StatusCreated, api.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			IsAdmin:   user.IsAdmin,
			CreatedAt: user.CreatedAt,
		})
	}
}

// @Summary     Log in
// @Description 使用名稱與密碼進行驗證，回傳存取令牌與有效秒數
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     api.LoginRequest true "登入資料"
// @Success     200     {object} api.LoginResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     401     {object} api.ErrorResponse "帳號或密碼錯誤"
// @Failure     500     {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByName(c.Request().Context(), db, req.Name)
		if err != nil {
			logger.Security.Warn("login failed",
				zap.String("name", req.Name),
				zap.String("reason", "unknown user"),
			)
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		authUser, err := authenticateUser(c.Request().Context(), *user, req.Password)
		if err != nil {
			logger.Security.Warn("login failed",
				zap.String("name", req.Name),
				zap.String("reason", "bad password"),
			)
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		token, err := issueAccessToken(*authUser, accessTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		logger.Audit.Info("user logged in", zap.Int("user_id", authUser.ID))

		return c.JSON(http.StatusOK, api.LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresIn:   int(accessTokenTTL.Seconds()),
		})
	}
}
