package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/events"
	"github.com/zarascrunch/storefront/internal/logging"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id")
	}
	return uint(id), nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// publish sends an event best-effort: failures are logged, never returned.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	if err := p.PublishEvent(c.Request().Context(), topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "topic", topic, "error", err)
	}
}
