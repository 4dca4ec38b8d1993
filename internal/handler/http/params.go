package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// queryInt reads an integer query parameter. A missing value yields 0 so the
// request DTO reports it as out of range.
func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validator.ValidationErrors{{
			Field:   key,
			Message: key + " must be an integer",
		}}
	}
	return v, nil
}

// queryPeriod reads the month and year query parameters.
func queryPeriod(r *http.Request) (month, year int, err error) {
	var errs validator.ValidationErrors

	month, err = queryInt(r, "month")
	if err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	year, err = queryInt(r, "year")
	if err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return month, year, nil
}

func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

// decodeJSON decodes the request body into dst. An empty body leaves dst
// untouched and the DTO's Validate reports missing fields.
func decodeJSON(r *http.Request, dst interface{}, op string) bool {
	if r.Body == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(op+" decode error", "error", err)
		return false
	}
	return true
}
