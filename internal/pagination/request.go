package pagination

import (
	"strconv"
	"strings"
)

// Request carries raw page parameters as they arrive from a transport layer.
type Request struct {
	PageNumber int
	PageSize   int
}

// ParseRequest turns query-string values into a Request.
// A missing or garbled page becomes 1. A missing size becomes defaultSize and a size
// above maxSize is capped. A garbled or non-positive size is kept as a non-positive value
// so Paginate rejects it instead of silently serving a default page.
func ParseRequest(pageStr, sizeStr string, defaultSize, maxSize int) Request {
	r := Request{PageNumber: 1, PageSize: defaultSize}

	if n, err := strconv.Atoi(strings.TrimSpace(pageStr)); err == nil && n > 0 {
		r.PageNumber = n
	}

	sizeStr = strings.TrimSpace(sizeStr)
	if sizeStr == "" {
		return r
	}
	n, err := strconv.Atoi(sizeStr)
	switch {
	case err != nil:
		r.PageSize = 0
	case maxSize > 0 && n > maxSize:
		r.PageSize = maxSize
	default:
		r.PageSize = n
	}
	return r
}
