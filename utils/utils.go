package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/text/unicode/norm"
)

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	return strings.Contains(err.Error(), "E11000 duplicate key error")
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug turns a display name into a lowercase ASCII key, dropping
// accents ("Vie scolaire" and "Vie Scolaire " both become "vie-scolaire").
func GenerateSlug(name string) string {
	t := norm.NFD.String(name)
	var b strings.Builder
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	s := strings.ToLower(b.String())
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func ParseBoolQuery(value string) (*bool, error) {
	if value == "" {
		return nil, nil // not provided
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// QueryLimits bounds the limit/skip pagination accepted by list endpoints.
type QueryLimits struct {
	Default int
	Max     int
}

// Paginate reads ?limit= and ?skip= from the request. Out-of-range limits
// fall back to the default and negative skips to zero.
func (l QueryLimits) Paginate(c *gin.Context) (limit, skip int64) {
	n := ParseIntDefault(c.Query("limit"), l.Default)
	if n < 1 || n > l.Max {
		n = l.Default
	}
	s := ParseIntDefault(c.Query("skip"), 0)
	if s < 0 {
		s = 0
	}
	return int64(n), int64(s)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDateTime accepts RFC 3339 and the zone-less ISO forms browsers and
// Python clients send. Zone-less values are taken as UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
