package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	statusErr := &StatusError{StatusCode: code, kind: kindOf(code)}

	body := resp.Body()
	var envelope models.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && (envelope.Error != "" || envelope.Message != "") {
		statusErr.Code = envelope.Error
		statusErr.Message = envelope.Message
	} else {
		statusErr.Message = strings.TrimSpace(string(body))
	}
	if statusErr.Code == "" && statusErr.Message == "" {
		statusErr.Message = http.StatusText(code)
	}

	return statusErr
}

func kindOf(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusRequestTimeout:
		return ErrTimeout
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code >= http.StatusInternalServerError:
		return ErrServer
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code == http.StatusBadRequest:
		return ErrBadRequest
	case code >= http.StatusBadRequest:
		return ErrRejected
	default:
		// 1xx and 3xx are not expected from the remote store
		return ErrServer
	}
}
