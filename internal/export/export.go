// Package export renders the list collection as a CSV document for the
// settings screen's "Export Data" action.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hatkhataapp/hatkhata-server/internal/domain"
)

// Status column values derived from an item's checked state.
const (
	statusCompleted = "Completed"
	statusPending   = "Pending"
)

// header is the fixed CSV column set. Consumers (spreadsheets, the mobile
// share sheet) rely on this exact order.
var header = []string{"Date", "List Title", "Notes", "Item Name", "Quantity", "Price", "Status"}

// ListSource supplies lists for export. Satisfied by store.ListStore.
type ListSource interface {
	Lists() []domain.BazaarList
}

// Exporter writes CSV exports of the current list collection.
type Exporter struct {
	lists ListSource
}

// NewExporter creates an Exporter over the given list source.
func NewExporter(lists ListSource) *Exporter {
	return &Exporter{lists: lists}
}

// WriteCSV writes one row per item across all lists, lists in stored order,
// items by their order within the list. Lists with no items contribute no
// rows. The Date column is the parent list's creation date.
func (e *Exporter) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, list := range e.lists.Lists() {
		date := list.CreatedAt.Format("1/2/2006")
		for _, item := range list.Items {
			status := statusPending
			if item.IsChecked {
				status = statusCompleted
			}
			row := []string{
				date,
				list.Title,
				list.Notes,
				item.Name,
				item.Quantity,
				strconv.FormatFloat(item.Price, 'f', -1, 64),
				status,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
