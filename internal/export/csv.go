package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/alexanderramin/wbs/internal/wbs"
)

var csvHeader = []string{
	"code", "name", "type", "owner", "start_date", "finish_date",
	"effort_hours", "cost", "percent_complete", "status", "predecessors",
}

// CSV writes one row per node in pre-order below a header row. Fields that
// contain a comma, quote or newline are quoted with inner quotes doubled.
func CSV(forest []*domain.TreeNode, owners OwnerNames) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range wbs.Flatten(forest) {
		n := row.Node
		f := figures(n)
		record := []string{
			row.Code,
			n.Name,
			string(n.Type),
			ownerLabel(n, owners),
			formatDate(f.StartDate),
			formatDate(f.FinishDate),
			formatNumber(f.EffortHours),
			formatNumber(f.Cost),
			strconv.Itoa(f.PercentComplete),
			string(n.Status),
			strings.Join(n.Predecessors, "|"),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv row %s: %w", row.Code, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}
