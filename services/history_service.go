package services

import (
	"fmt"
	"math/rand/v2"
	"no-regret/domain"

	"github.com/samber/lo"
)

const DefaultHistoryWeeks = 12

// HistoryService produces the demo figures of the history tab.
// Weekly counts are sampled, the category distribution is fixed.
type HistoryService struct {
	rng   *rand.Rand
	weeks int
}

func NewHistoryService(seed uint64, weeks int) *HistoryService {
	if weeks <= 0 {
		weeks = DefaultHistoryWeeks
	}
	return &HistoryService{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), weeks: weeks}
}

// Weekly samples one activity count per week, W1 being the oldest.
func (h *HistoryService) Weekly() []domain.WeeklyActivity {
	return lo.Times(h.weeks, func(i int) domain.WeeklyActivity {
		return domain.WeeklyActivity{
			Week:  fmt.Sprintf("W%d", i+1),
			Count: h.rng.IntN(8) + i%3,
		}
	})
}

func (h *HistoryService) Categories() []domain.CategoryShare {
	return []domain.CategoryShare{
		{Name: "Body", Value: 5, Color: "#A78BFA"},
		{Name: "Mind", Value: 8, Color: "#34D399"},
		{Name: "Work", Value: 6, Color: "#60A5FA"},
		{Name: "Social", Value: 4, Color: "#FCD34D"},
	}
}

// Share returns the part of total held by each category, in percent.
func Share(categories []domain.CategoryShare) map[string]float64 {
	total := lo.SumBy(categories, func(c domain.CategoryShare) int { return c.Value })
	return lo.SliceToMap(categories, func(c domain.CategoryShare) (string, float64) {
		if total == 0 {
			return c.Name, 0
		}
		return c.Name, float64(c.Value) * 100 / float64(total)
	})
}
