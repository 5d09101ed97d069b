// ABOUTME: Pagination state machine for the sign history list
// ABOUTME: Pure value type; navigation returns a new value and whether to refetch

package state

import (
	"fmt"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
)

// DefaultPageLimit is the number of log rows requested per page
const DefaultPageLimit = 10

// Pagination tracks the client-side page position.
// Total is only ever taken from the server.
type Pagination struct {
	Page  int
	Limit int
	Total int
}

// NewPagination returns the initial position: page 1 of an empty list
func NewPagination(limit int) Pagination {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return Pagination{Page: 1, Limit: limit}
}

// TotalPages is ceil(total/limit), never less than 1
func (p Pagination) TotalPages() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 1
	}
	pages := (p.Total + p.Limit - 1) / p.Limit
	if pages < 1 {
		return 1
	}
	return pages
}

// CanPrev reports whether a previous page exists
func (p Pagination) CanPrev() bool {
	return p.Page > 1
}

// CanNext reports whether a next page exists
func (p Pagination) CanNext() bool {
	return p.Page < p.TotalPages()
}

// Prev moves back one page. The bool is false at the first page.
func (p Pagination) Prev() (Pagination, bool) {
	if !p.CanPrev() {
		return p, false
	}
	p.Page--
	return p, true
}

// Next moves forward one page. The bool is false at the last page.
func (p Pagination) Next() (Pagination, bool) {
	if !p.CanNext() {
		return p, false
	}
	p.Page++
	return p, true
}

// Apply adopts the server's view of total and page after a fetch
func (p Pagination) Apply(page *client.LogPage) Pagination {
	if page == nil {
		return p
	}
	p.Total = page.Total
	if p.Total < 0 {
		p.Total = 0
	}
	p.Page = page.Page
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// Label renders the page indicator
func (p Pagination) Label() string {
	return fmt.Sprintf("page %d of %d", p.Page, p.TotalPages())
}
