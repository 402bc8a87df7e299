package transfer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/clubmanager/go/internal/models"
)

var t0 = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

func listing(id, name string, pos models.Position, price int64, age time.Duration) models.Listing {
	return models.Listing{
		ID: "t-" + id,
		Player: models.Player{
			ID:               id,
			Name:             name,
			Position:         pos,
			Price:            decimal.NewFromInt(price),
			IsOnTransferList: true,
			AskingPrice:      decimal.NewFromInt(price),
		},
		FromTeam:  models.TeamRef{ID: "seller", Name: "Seller FC"},
		Price:     decimal.NewFromInt(price),
		CreatedAt: t0.Add(-age),
	}
}

func ids(listings []models.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Player.ID
	}
	return out
}

func TestApplyFilter(t *testing.T) {
	listings := []models.Listing{
		listing("p1", "Marco Reus", models.PositionMidfielder, 250000, 3*time.Hour),
		listing("p2", "Manuel Neuer", models.PositionGoalkeeper, 900000, time.Hour),
		listing("p3", "Mats Hummels", models.PositionDefender, 100000, 2*time.Hour),
		listing("p4", "Erling Haaland", models.PositionAttacker, 1000000, 4*time.Hour),
		listing("p5", "Leroy Sane", models.PositionAttacker, 1000001, 0),
	}

	tests := []struct {
		name     string
		criteria func(c *FilterCriteria)
		want     []string
	}{
		{
			name:     "defaults keep everything within one million, newest first",
			criteria: func(c *FilterCriteria) {},
			want:     []string{"p2", "p3", "p1", "p4"},
		},
		{
			name:     "name match ignores case",
			criteria: func(c *FilterCriteria) { c.Name = "MA" },
			want:     []string{"p2", "p3", "p1"},
		},
		{
			name:     "name substring",
			criteria: func(c *FilterCriteria) { c.Name = "neuer" },
			want:     []string{"p2"},
		},
		{
			name:     "position",
			criteria: func(c *FilterCriteria) { c.Position = models.PositionAttacker; c.MaxPrice = decimal.NewFromInt(2000000) },
			want:     []string{"p5", "p4"},
		},
		{
			name: "price bounds are inclusive",
			criteria: func(c *FilterCriteria) {
				c.MinPrice = decimal.NewFromInt(100000)
				c.MaxPrice = decimal.NewFromInt(250000)
			},
			want: []string{"p3", "p1"},
		},
		{
			name:     "empty range",
			criteria: func(c *FilterCriteria) { c.MinPrice = decimal.NewFromInt(5); c.MaxPrice = decimal.NewFromInt(4) },
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultFilterCriteria()
			tt.criteria(&c)
			assert.Equal(t, tt.want, ids(ApplyFilter(listings, c)))
		})
	}
}

func TestApplyFilter_Pure(t *testing.T) {
	listings := []models.Listing{
		listing("old", "A", models.PositionDefender, 200000, 2*time.Hour),
		listing("new", "B", models.PositionDefender, 200000, 0),
	}
	before := ids(listings)
	c := DefaultFilterCriteria()

	first := ApplyFilter(listings, c)
	second := ApplyFilter(listings, c)

	assert.Equal(t, before, ids(listings), "input must not be reordered")
	assert.Equal(t, first, second)
	assert.Equal(t, ids(first), ids(ApplyFilter(first, c)))
}

func TestApplyFilter_StableForEqualTimestamps(t *testing.T) {
	a := listing("a", "A", models.PositionMidfielder, 150000, time.Hour)
	b := listing("b", "B", models.PositionMidfielder, 150000, time.Hour)
	c := listing("c", "C", models.PositionMidfielder, 150000, time.Hour)

	got := ApplyFilter([]models.Listing{b, a, c}, DefaultFilterCriteria())
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))
}

func TestListingState(t *testing.T) {
	assert.Equal(t, StateNotListed, StateOf(models.Player{}))
	assert.Equal(t, StateListed, StateOf(models.Player{IsOnTransferList: true}))
	assert.Equal(t, StateListed, StateNotListed.Next())
	assert.Equal(t, StateNotListed, StateListed.Next())
}
