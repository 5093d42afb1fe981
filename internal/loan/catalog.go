package loan

import "sort"

// FilterProducts returns the products whose minimum credit score is met by the
// given score, optionally narrowed to those offering the given tenure
// (tenureMonths <= 0 skips the tenure filter). The result is ordered by
// ascending MaxAmount. An empty result is a valid outcome meaning no eligible
// products, not an error.
func FilterProducts(catalog []Product, creditScore, tenureMonths int) []Product {
	matched := make([]Product, 0, len(catalog))
	for _, p := range catalog {
		if p.MinCreditScore > creditScore {
			continue
		}
		if tenureMonths > 0 && !p.HasTenure(tenureMonths) {
			continue
		}
		matched = append(matched, p)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].MaxAmount < matched[j].MaxAmount
	})
	return matched
}

// maxLoanableAmount returns the highest MaxAmount in products, or 0 when empty.
func maxLoanableAmount(products []Product) int {
	best := 0
	for _, p := range products {
		if p.MaxAmount > best {
			best = p.MaxAmount
		}
	}
	return best
}
