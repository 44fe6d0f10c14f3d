// File: internal/handler/events/stream.go
package events

import (
	"encoding/json"
	"fmt"
	"net/http"

	"taskboard/internal/events"

	"github.com/labstack/echo/v4"
)

// @Summary     Stream task events
// @Description 以 Server-Sent Events 串流任務事件，每筆事件為一行 data: JSON，連線由客戶端中斷
// @Tags        events
// @Produce     text/event-stream
// @Success     200 {object} api.TaskEventResponse
// @Security    ApiKeyAuth
// @Router      /events/tasks [get]
func StreamTasksHandler(bus events.Bus) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		ch, cancel := bus.Subscribe(ctx)
		defer cancel()

		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set(echo.HeaderCacheControl, "no-cache")
		res.Header().Set(echo.HeaderConnection, "keep-alive")
		res.WriteHeader(http.StatusOK)
		res.Flush()

		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-ch:
				if !ok {
					return nil
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
					return nil
				}
				res.Flush()
			}
		}
	}
}
