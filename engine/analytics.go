// api/engine/analytics.go
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"shopsense/api/models"
	"shopsense/api/store"
)

const (
	recentInteractionLimit = 20
	dailyWindowDays        = 30
	trendWindowDays        = 7

	dateLayout = "2006-01-02"
)

// Aggregator rolls raw interaction events up into the admin dashboard
// snapshot. It is a pure read-and-reduce: safe to call concurrently and
// repeatedly without affecting stored state.
type Aggregator struct {
	events store.EventStore
}

func NewAggregator(events store.EventStore) *Aggregator {
	return &Aggregator{events: events}
}

// Snapshot reduces the full event history into an AnalyticsSnapshot.
// Totals cover all history; the daily and trend series cover trailing
// 30- and 7-day UTC windows inclusive of today, zero-filled for days
// without activity. A store failure is surfaced: analytics is the primary
// function of the admin view, not an enhancement.
func (a *Aggregator) Snapshot(ctx context.Context, now time.Time) (models.AnalyticsSnapshot, error) {
	events, err := a.events.QueryEvents(ctx, store.EventQuery{})
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	now = now.UTC()
	snapshot := models.AnalyticsSnapshot{
		GeneratedAt:           now,
		PopularCategories:     []models.CategoryCount{},
		RecentInteractions:    []models.InteractionEvent{},
		DailyInteractions:     emptyDailySeries(now),
		InteractionTypesTrend: emptyTrendSeries(now),
	}

	users := make(map[string]bool)
	categories := make(map[string]int)
	dailyIndex := seriesIndex(now, dailyWindowDays)
	trendIndex := seriesIndex(now, trendWindowDays)

	for _, event := range events {
		users[event.UserID] = true
		snapshot.TotalInteractions++

		switch event.InteractionType {
		case models.InteractionView:
			snapshot.TotalViews++
		case models.InteractionCartAdd:
			snapshot.TotalCartAdds++
		case models.InteractionPurchase:
			snapshot.TotalPurchases++
		}

		if event.Category != "" {
			categories[event.Category]++
		}

		day := event.CreatedAt.UTC().Format(dateLayout)
		if i, ok := dailyIndex[day]; ok {
			bucket := &snapshot.DailyInteractions[i]
			bucket.Total++
			switch event.InteractionType {
			case models.InteractionView:
				bucket.Views++
			case models.InteractionCartAdd:
				bucket.CartAdds++
			case models.InteractionPurchase:
				bucket.Purchases++
			}
		}
		if i, ok := trendIndex[day]; ok {
			bucket := &snapshot.InteractionTypesTrend[i]
			switch event.InteractionType {
			case models.InteractionView:
				bucket.View++
			case models.InteractionCartAdd:
				bucket.CartAdd++
			case models.InteractionPurchase:
				bucket.Purchase++
			}
		}
	}

	snapshot.TotalUsers = len(users)
	snapshot.PopularCategories = rankCategories(categories)
	snapshot.RecentInteractions = recentNewestFirst(events, recentInteractionLimit)

	return snapshot, nil
}

// emptyDailySeries builds the zero-filled trailing 30-day series, oldest
// day first, inclusive of today.
func emptyDailySeries(now time.Time) []models.DailyInteraction {
	series := make([]models.DailyInteraction, dailyWindowDays)
	for i := range series {
		day := now.AddDate(0, 0, i-dailyWindowDays+1)
		series[i] = models.DailyInteraction{Date: day.Format(dateLayout)}
	}
	return series
}

func emptyTrendSeries(now time.Time) []models.InteractionTypeTrend {
	series := make([]models.InteractionTypeTrend, trendWindowDays)
	for i := range series {
		day := now.AddDate(0, 0, i-trendWindowDays+1)
		series[i] = models.InteractionTypeTrend{Date: day.Format(dateLayout)}
	}
	return series
}

// seriesIndex maps each date string in the trailing window to its slice
// position.
func seriesIndex(now time.Time, days int) map[string]int {
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, i-days+1)
		index[day.Format(dateLayout)] = i
	}
	return index
}

// rankCategories sorts categories by descending count, breaking ties by
// category name ascending so the ranking is deterministic.
func rankCategories(counts map[string]int) []models.CategoryCount {
	ranked := make([]models.CategoryCount, 0, len(counts))
	for category, count := range counts {
		ranked = append(ranked, models.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})
	return ranked
}

// recentNewestFirst takes the tail of the created_at-ascending event list
// and reverses it.
func recentNewestFirst(events []models.InteractionEvent, limit int) []models.InteractionEvent {
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	recent := make([]models.InteractionEvent, len(events))
	for i, event := range events {
		recent[len(events)-1-i] = event
	}
	return recent
}
