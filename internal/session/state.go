package session

import (
	"time"
)

// State is a visitor's whole session, stored as one JSON blob. The basket
// is an ordered list of product id strings, one entry per unit added.
type State struct {
	Products      []string             `json:"products,omitempty"`
	ProductsCount int                  `json:"products_count,omitempty"`
	Visits        map[string]int       `json:"visits,omitempty"`
	StartTimes    map[string]time.Time `json:"start_times,omitempty"`
}

// AddProduct appends one unit of pk and refreshes the derived count.
func (s *State) AddProduct(pk string) {
	s.Products = append(s.Products, pk)
	s.ProductsCount = len(s.Products)
}

// RemoveProduct drops the first occurrence of pk, if any.
func (s *State) RemoveProduct(pk string) {
	for i, p := range s.Products {
		if p == pk {
			s.Products = append(s.Products[:i], s.Products[i+1:]...)
			break
		}
	}
	s.ProductsCount = len(s.Products)
}

// ClearBasket empties the basket after a successful checkout. Visit
// counters are untouched.
func (s *State) ClearBasket() {
	s.Products = nil
	s.ProductsCount = 0
}

// RecordVisit bumps the page's counter and overwrites its start time.
func (s *State) RecordVisit(page string, at time.Time) {
	if s.Visits == nil {
		s.Visits = make(map[string]int)
	}
	if s.StartTimes == nil {
		s.StartTimes = make(map[string]time.Time)
	}
	s.Visits[page]++
	s.StartTimes[page] = at
}
