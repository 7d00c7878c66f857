package code

import (
	"errors"
	"net/http"
)

// IsValidation 是否为校验错误 (HTTP 400)
func IsValidation(err error) bool {
	return statusOf(err) == http.StatusBadRequest
}

// IsNotFound 是否为记录不存在错误 (HTTP 404)
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsStore 是否为存储错误
func IsStore(err error) bool {
	return errors.Is(err, ErrorDBQuery) || errors.Is(err, ErrorUsageCountIncrement)
}

func statusOf(err error) int {
	var c *Code
	if errors.As(err, &c) {
		return c.StatusCode()
	}
	return 0
}
