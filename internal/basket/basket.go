package basket

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"gorm.io/gorm"

	"github.com/avolkov/webshop/internal/models"
)

// ErrProductNotFound marks a basket entry whose product has left the
// catalog since it was added.
var ErrProductNotFound = errors.New("product not found")

type Line struct {
	Product  models.Product `json:"product"`
	Quantity uint           `json:"quantity"`
	Total    float64        `json:"total"`
}

// Totals counts occurrences of each product id in the raw session list.
func Totals(products []string) map[string]uint {
	totals := make(map[string]uint, len(products))
	for _, pk := range products {
		totals[pk]++
	}
	return totals
}

// Build resolves the session's id list against the catalog and returns one
// line per distinct product plus the grand total. Lines come back sorted
// by product id so rendering is stable.
func Build(db *gorm.DB, products []string) ([]Line, float64, error) {
	totals := Totals(products)

	pks := make([]string, 0, len(totals))
	for pk := range totals {
		pks = append(pks, pk)
	}
	sort.Slice(pks, func(i, j int) bool {
		a, _ := strconv.Atoi(pks[i])
		b, _ := strconv.Atoi(pks[j])
		return a < b
	})

	lines := make([]Line, 0, len(pks))
	var grandTotal float64
	for _, pk := range pks {
		id, err := strconv.Atoi(pk)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %q", ErrProductNotFound, pk)
		}
		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, fmt.Errorf("%w: %q", ErrProductNotFound, pk)
			}
			return nil, 0, err
		}
		qty := totals[pk]
		total := product.Price * float64(qty)
		grandTotal += total
		lines = append(lines, Line{Product: product, Quantity: qty, Total: total})
	}
	return lines, grandTotal, nil
}
