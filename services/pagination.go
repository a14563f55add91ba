package services

import (
	"strconv"

	"go-storefront/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ParsePage resolves the page and limit query values. Missing, non-numeric
// or non-positive values fall back to page 1 and limit 10.
func ParsePage(page, limit string) models.Page {
	return models.Page{
		Number: positiveOr(page, defaultPage),
		Limit:  positiveOr(limit, defaultLimit),
	}
}

func positiveOr(s string, def int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}
