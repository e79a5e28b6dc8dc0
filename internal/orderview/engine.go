// Package orderview implements the order-list view state: filtering, searching
// and sorting over an in-memory order collection, plus the per-screen
// controller that mediates between user input and the derived view.
package orderview

import (
	"sort"
	"strings"

	"github.com/tai160903/viet-coffee-server/internal/order"
)

// StatusAll is the sentinel filter value meaning "no status filtering".
const StatusAll = "All"

type SortKey string

const (
	SortByCode     SortKey = "id"
	SortByCustomer SortKey = "customer"
	SortByDate     SortKey = "date"
	SortByTotal    SortKey = "total"
	SortByStatus   SortKey = "status"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type SortConfig struct {
	Key       SortKey
	Direction Direction
}

// Toggle returns the sort config that results from clicking a column header:
// clicking the active ascending key flips it to descending, anything else
// resets to ascending on the clicked key.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	direction := Ascending
	if c.Key == key && c.Direction == Ascending {
		direction = Descending
	}

	return SortConfig{Key: key, Direction: direction}
}

// Query is one complete view derivation request. Search and status filter
// combine with logical AND; Sort orders the surviving rows.
type Query struct {
	Search string
	Status string
	Sort   SortConfig
}

// Apply derives the visible order list. It never mutates the input slice and
// returns a fresh slice on every call. The sort is stable, so rows with equal
// keys keep their incoming relative order.
func Apply(orders []order.Order, q Query) []order.Order {
	term := strings.ToLower(q.Search)

	visible := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if !matchesSearch(o, term) {
			continue
		}
		if q.Status != "" && q.Status != StatusAll && string(o.Status) != q.Status {
			continue
		}
		visible = append(visible, o)
	}

	if q.Sort.Key != "" {
		less := comparator(q.Sort.Key)
		sort.SliceStable(visible, func(i, j int) bool {
			if q.Sort.Direction == Descending {
				i, j = j, i
			}
			return less(visible[i], visible[j])
		})
	}

	return visible
}

func matchesSearch(o order.Order, term string) bool {
	if term == "" {
		return true
	}

	return strings.Contains(strings.ToLower(o.Code), term) ||
		strings.Contains(strings.ToLower(o.Customer), term) ||
		strings.Contains(strings.ToLower(o.Email), term)
}

func comparator(key SortKey) func(a, b order.Order) bool {
	switch key {
	case SortByCustomer:
		return func(a, b order.Order) bool { return a.Customer < b.Customer }
	case SortByDate:
		return func(a, b order.Order) bool { return a.Date.Before(b.Date) }
	case SortByTotal:
		return func(a, b order.Order) bool { return a.Total.LessThan(b.Total) }
	case SortByStatus:
		return func(a, b order.Order) bool { return a.Status < b.Status }
	default:
		return func(a, b order.Order) bool { return a.Code < b.Code }
	}
}
