package corpus

import (
	"fmt"
	"math"
	"sort"

	"corpusdash/internal/models"
)

// DefaultGrowthThreshold is the minimum absolute percentage change that gets
// reported as growth or decline.
const DefaultGrowthThreshold = 10.0

// GenerateInsights derives qualitative observations from an aggregation.
// Rule-based, fixed emission order for reproducible output: dominant media
// type, peak activity period, growth/decline, category diversity, storage.
// prior may be nil; growth then falls back to the last two timeline buckets.
func GenerateInsights(current, prior *models.AggregationResult, threshold float64) []string {
	if threshold <= 0 {
		threshold = DefaultGrowthThreshold
	}

	var insights []string
	if current == nil || current.Total == 0 {
		if prior != nil && prior.Total > 0 {
			insights = append(insights, fmt.Sprintf("Activity stopped: %d records in the prior period, none now", prior.Total))
		}
		return insights
	}

	if kind, count, ok := topCount(current.MediaType); ok {
		share := float64(count) / float64(current.Total) * 100
		insights = append(insights, fmt.Sprintf("Dominant media type is %s with %d of %d records (%.1f%%)", kind, count, current.Total, share))
	}

	if bucket, count, ok := topCount(current.Timeline); ok {
		insights = append(insights, fmt.Sprintf("Peak activity period is %s with %d records", bucket, count))
	}

	if g, ok := growthInsight(current, prior, threshold); ok {
		insights = append(insights, g)
	}

	insights = append(insights, fmt.Sprintf("Records span %d distinct categories", current.CategoryDiversity))

	if current.TotalBytes > 0 {
		line := fmt.Sprintf("Total storage used is %s", formatBytes(current.TotalBytes))
		if kind, bytes, ok := topBytes(current.BytesByMediaType); ok {
			line += fmt.Sprintf(", mostly %s (%s)", kind, formatBytes(bytes))
		}
		insights = append(insights, line)
	}

	return insights
}

func growthInsight(current, prior *models.AggregationResult, threshold float64) (string, bool) {
	if prior != nil {
		if prior.Total == 0 {
			return fmt.Sprintf("New activity: %d records with no prior-period baseline", current.Total), true
		}
		change := float64(current.Total-prior.Total) / float64(prior.Total) * 100
		return trendLine(change, threshold, "total records")
	}

	// No prior period supplied: read the trend off the last two calendar
	// buckets, the way the timeline chart would show it.
	buckets := make([]string, 0, len(current.Timeline))
	for k := range current.Timeline {
		buckets = append(buckets, k)
	}
	if len(buckets) < 2 {
		return "", false
	}
	sort.Strings(buckets)
	last := current.Timeline[buckets[len(buckets)-1]]
	previous := current.Timeline[buckets[len(buckets)-2]]
	if previous == 0 {
		return fmt.Sprintf("New activity: %d records in %s after a quiet %s", last, buckets[len(buckets)-1], buckets[len(buckets)-2]), true
	}
	change := float64(last-previous) / float64(previous) * 100
	return trendLine(change, threshold, fmt.Sprintf("uploads per %s", current.Granularity))
}

func trendLine(change, threshold float64, subject string) (string, bool) {
	if math.Abs(change) < threshold {
		return "", false
	}
	direction := "grew"
	if change < 0 {
		direction = "declined"
	}
	return fmt.Sprintf("%s %s by %.1f%%", capitalize(subject), direction, math.Abs(change)), true
}

// topCount picks the key with the highest count; ties resolve to the
// lexicographically smallest key so output stays deterministic.
func topCount(dist map[string]int) (string, int, bool) {
	best, bestCount, found := "", 0, false
	for k, v := range dist {
		if !found || v > bestCount || (v == bestCount && k < best) {
			best, bestCount, found = k, v, true
		}
	}
	return best, bestCount, found
}

func topBytes(dist map[string]int64) (string, int64, bool) {
	best, bestBytes, found := "", int64(0), false
	for k, v := range dist {
		if !found || v > bestBytes || (v == bestBytes && k < best) {
			best, bestBytes, found = k, v, true
		}
	}
	return best, bestBytes, found
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
