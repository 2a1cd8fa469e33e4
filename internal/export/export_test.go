package export_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
	"github.com/hatkhataapp/hatkhata-server/internal/export"
)

type staticLists []domain.BazaarList

func (s staticLists) Lists() []domain.BazaarList { return s }

func TestExporter_WriteCSV(t *testing.T) {
	created := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)
	lists := staticLists{
		{
			Title:     "Friday Bazaar",
			Notes:     "before 9am",
			CreatedAt: created,
			Items: []domain.BazaarItem{
				{Name: "Rice", Quantity: "5", Price: 340, IsChecked: true},
				{Name: "Hilsa", Quantity: "1.5", Price: 1200.5},
			},
		},
		{
			Title:     "Empty List",
			CreatedAt: created,
		},
	}

	var buf strings.Builder
	require.NoError(t, export.NewExporter(lists).WriteCSV(&buf))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	// Header plus one row per item; the empty list contributes nothing.
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Date", "List Title", "Notes", "Item Name", "Quantity", "Price", "Status"}, records[0])
	assert.Equal(t, []string{"3/7/2026", "Friday Bazaar", "before 9am", "Rice", "5", "340", "Completed"}, records[1])
	assert.Equal(t, []string{"3/7/2026", "Friday Bazaar", "before 9am", "Hilsa", "1.5", "1200.5", "Pending"}, records[2])
}

func TestExporter_WriteCSV_QuotesEmbeddedCommas(t *testing.T) {
	lists := staticLists{
		{
			Title:     `Eid, "Big" Shopping`,
			CreatedAt: time.Now(),
			Items:     []domain.BazaarItem{{Name: "Semai, fine", Quantity: "2"}},
		},
	}

	var buf strings.Builder
	require.NoError(t, export.NewExporter(lists).WriteCSV(&buf))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `Eid, "Big" Shopping`, records[1][1])
	assert.Equal(t, "Semai, fine", records[1][3])
}

func TestExporter_WriteCSV_EmptyCollection(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, export.NewExporter(staticLists{}).WriteCSV(&buf))

	assert.Equal(t, "Date,List Title,Notes,Item Name,Quantity,Price,Status\n", buf.String())
}
