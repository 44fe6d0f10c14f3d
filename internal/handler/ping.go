// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"taskboard/internal/api"
	"taskboard/internal/cache"
	"taskboard/internal/database"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查（需通過認證）
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /ping [get]
func PingHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := rdb.Set(c.Request().Context(), "ping", "pong", 10*time.Second).Err(); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
