package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryService_Weekly(t *testing.T) {
	req := require.New(t)
	history := NewHistoryService(7, 0)

	weekly := history.Weekly()

	req.Len(weekly, DefaultHistoryWeeks)
	for i, w := range weekly {
		req.Equal(fmt.Sprintf("W%d", i+1), w.Week)
		// rng part is in [0, 8), the offset is i%3
		req.GreaterOrEqual(w.Count, i%3)
		req.Less(w.Count, 8+i%3)
	}

	// Same seed, same figures
	req.Equal(weekly, NewHistoryService(7, 0).Weekly())
}

func TestHistoryService_Categories_Share(t *testing.T) {
	req := require.New(t)
	categories := NewHistoryService(1, 12).Categories()

	shares := Share(categories)

	req.Len(shares, 4)
	req.InDelta(8*100.0/23, shares["Mind"], 0.001)
	total := 0.0
	for _, s := range shares {
		total += s
	}
	req.InDelta(100, total, 0.001)
	req.Empty(Share(nil))
}
