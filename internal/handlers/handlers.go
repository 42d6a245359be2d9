package handlers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindPayload decodes the request body into the raw map the validation
// layer consumes. Handlers validate first and only then decode into a
// typed request via validation.Decode.
func bindPayload(c echo.Context) (map[string]any, error) {
	payload := map[string]any{}
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func parsePagination(c echo.Context) (int, int) {
	type pageQuery struct {
		Limit  int `query:"limit"`
		Offset int `query:"offset"`
	}
	var q pageQuery
	_ = c.Bind(&q)
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q.Limit, q.Offset
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// publicContentTTL bounds staleness of the cached public pages.
const publicContentTTL = 5 * time.Minute
