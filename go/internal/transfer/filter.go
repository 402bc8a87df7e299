package transfer

import (
	"sort"
	"strings"

	"github.com/mcdev12/clubmanager/go/internal/models"
)

// ApplyFilter returns the listings matching criteria, newest first. It never
// modifies listings and equal timestamps keep their input order.
func ApplyFilter(listings []models.Listing, criteria FilterCriteria) []models.Listing {
	name := strings.ToLower(criteria.Name)

	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if name != "" && !strings.Contains(strings.ToLower(l.Player.Name), name) {
			continue
		}
		if criteria.Position != "" && l.Player.Position != criteria.Position {
			continue
		}
		if l.Price.LessThan(criteria.MinPrice) || l.Price.GreaterThan(criteria.MaxPrice) {
			continue
		}
		out = append(out, l)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
