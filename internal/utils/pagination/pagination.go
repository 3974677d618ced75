package pagination

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultSize = 5
	MaxSize     = 100
	// MaxPage keeps the offset inside int32 for every accepted size.
	MaxPage = math.MaxInt32 / MaxSize
)

// Pagination is a zero-based page request.
type Pagination struct {
	Page   int
	Size   int
	Offset int
}

// ParseFromRequest reads the page and size query parameters, falling back
// to page 0 and DefaultSize on missing or malformed values.
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil {
		page = 0
	}
	size, err := strconv.Atoi(c.Query("size", strconv.Itoa(DefaultSize)))
	if err != nil {
		size = DefaultSize
	}
	return Normalize(page, size)
}

// Normalize clamps page to [0, MaxPage] and size to [1, MaxSize], falling
// back to DefaultSize for a non-positive size, and computes the offset.
func Normalize(page, size int) Pagination {
	if page < 0 {
		page = 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Pagination{
		Page:   page,
		Size:   size,
		Offset: page * size,
	}
}
