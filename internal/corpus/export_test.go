package corpus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusdash/internal/models"
	"corpusdash/internal/testutil"
)

func TestRecordTable_FlattensRecords(t *testing.T) {
	client := &testutil.MockBackendClient{
		Categories: []models.Category{{ID: "c1", Name: "Folk Songs"}},
	}
	resolver := NewCategoryResolver(client, testutil.NewMockCache(), &testutil.MockLogger{})

	updated := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	set := &models.RecordSet{Records: []models.Record{
		{
			ID: "r1", UserID: "u1", CategoryID: "c1",
			MediaType: models.MediaAudio, Status: models.StatusUploaded,
			Size:      sized(2048),
			Location:  &models.GeoPoint{Latitude: 17.38, Longitude: 78.48},
			CreatedAt: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
			UpdatedAt: &updated,
		},
		{
			ID: "r2", UserID: "u2",
			MediaType: models.MediaText, Status: models.StatusPending,
			CreatedAt: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		},
	}}

	table := RecordTable(context.Background(), "token", set, resolver)

	assert.Equal(t, []string{
		"id", "user_id", "category", "media_type", "status",
		"size", "latitude", "longitude", "created_at", "updated_at",
	}, table.Columns)
	require.Equal(t, 2, table.Len())

	assert.Equal(t, []string{
		"r1", "u1", "Folk Songs", "audio", "uploaded",
		"2048", "17.38", "78.48", "2025-06-01T10:30:00Z", "2025-06-02T08:00:00Z",
	}, table.Rows[0])
	assert.Equal(t, []string{
		"r2", "u2", Uncategorized, "text", "pending",
		"", "", "", "2025-06-03T00:00:00Z", "",
	}, table.Rows[1])
}

func TestRecordTable_CarriesProvenance(t *testing.T) {
	resolver := NewCategoryResolver(&testutil.MockBackendClient{}, testutil.NewMockCache(), &testutil.MockLogger{})

	set := &models.RecordSet{
		Stale:     true,
		FetchedAt: time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC),
	}
	table := RecordTable(context.Background(), "token", set, resolver)

	assert.True(t, table.Stale)
	assert.True(t, set.FetchedAt.Equal(table.AsOf))
}

func TestRecordTable_NilSet(t *testing.T) {
	resolver := NewCategoryResolver(&testutil.MockBackendClient{}, testutil.NewMockCache(), &testutil.MockLogger{})

	table := RecordTable(context.Background(), "token", nil, resolver)
	assert.Zero(t, table.Len())
	assert.Len(t, table.Columns, 10)
}

func TestDistributionTable_SortsByCountThenName(t *testing.T) {
	table := DistributionTable("media_type", map[string]int{
		"text":  5,
		"audio": 9,
		"video": 5,
	})

	assert.Equal(t, []string{"media_type", "count"}, table.Columns)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"audio", "9"}, table.Rows[0])
	assert.Equal(t, []string{"text", "5"}, table.Rows[1])
	assert.Equal(t, []string{"video", "5"}, table.Rows[2])
}

func TestTimelineTable_ChronologicalOrder(t *testing.T) {
	res := models.NewAggregationResult(models.GranularityDay)
	res.Timeline["2025-06-03"] = 1
	res.Timeline["2025-06-01"] = 4
	res.Timeline["2025-06-02"] = 2

	table := TimelineTable(res)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"2025-06-01", "4"}, table.Rows[0])
	assert.Equal(t, []string{"2025-06-02", "2"}, table.Rows[1])
	assert.Equal(t, []string{"2025-06-03", "1"}, table.Rows[2])
}

func TestTimelineTable_NilResult(t *testing.T) {
	table := TimelineTable(nil)
	assert.Zero(t, table.Len())
}
