// backend-go/internal/wrapped/books.go
package wrapped

import (
	"strings"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
)

// IsLikelyBook decides whether an order line is a book from its product name
// and publisher. Layered heuristic, each layer short-circuiting:
//
//  1. subscription/membership keywords veto everything, including trusted
//     publishers (Kindle Unlimited is sold by a book publisher);
//  2. a known book publisher confirms;
//  3. product exclusion keywords (household goods, electronics, food, ...) deny;
//  4. strong indicators ("paperback", "kindle edition", ...) confirm;
//  5. "Book <n>" series patterns confirm;
//  6. otherwise medium-strength literary terms decide.
//
// Total and deterministic: never errors, always answers.
func IsLikelyBook(productName, publisher string) bool {
	name := strings.ToLower(productName)

	for _, sub := range config.SubscriptionExclusions {
		if strings.Contains(name, sub) {
			return false
		}
	}

	if pub := strings.ToLower(strings.TrimSpace(publisher)); pub != "" && !isGenericPublisher(pub) {
		for _, bookPub := range config.BookPublishers {
			if strings.Contains(pub, bookPub) {
				return true
			}
		}
	}

	for _, exclusion := range config.ProductExclusions {
		if strings.Contains(name, exclusion) {
			return false
		}
	}

	for _, indicator := range config.StrongBookIndicators {
		if strings.Contains(name, indicator) {
			return true
		}
	}

	if config.BookSeriesPattern.MatchString(name) || config.BookSeriesParenPattern.MatchString(name) {
		return true
	}

	for _, indicator := range config.MediumBookIndicators {
		if strings.Contains(name, indicator) {
			return true
		}
	}

	return false
}

func isGenericPublisher(lowered string) bool {
	for _, generic := range config.GenericPublishers {
		if lowered == generic {
			return true
		}
	}
	return false
}
