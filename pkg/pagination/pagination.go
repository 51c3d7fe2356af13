package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the page size used once a caller opts into paging.
	DefaultLimit = 24
	// MaxLimit caps how many items one page may hold.
	MaxLimit = 100

	cursorPrefix = "offset|"
)

// Params holds cursor pagination inputs from controllers.
type Params struct {
	Limit  int
	Cursor string
}

// Page is one window over an ordered listing.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// NormalizeLimit enforces the default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeCursor builds an opaque cursor pointing at offset.
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// ParseCursor decodes a cursor back into its offset. An empty cursor is
// offset zero.
func ParseCursor(value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return 0, fmt.Errorf("decode cursor: %w", err)
	}
	raw, ok := strings.CutPrefix(string(decoded), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid cursor format")
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid cursor offset %q", raw)
	}
	return offset, nil
}

// Slice returns the window of items selected by p. Without a limit or cursor
// every item is returned on a single page.
func Slice[T any](items []T, p Params) (Page[T], error) {
	if p.Limit <= 0 && strings.TrimSpace(p.Cursor) == "" {
		return Page[T]{Items: items}, nil
	}
	offset, err := ParseCursor(p.Cursor)
	if err != nil {
		return Page[T]{}, err
	}
	if offset >= len(items) {
		return Page[T]{Items: []T{}}, nil
	}
	end := offset + NormalizeLimit(p.Limit)
	page := Page[T]{}
	if end < len(items) {
		page.NextCursor = EncodeCursor(end)
	} else {
		end = len(items)
	}
	page.Items = items[offset:end]
	return page, nil
}
