package aggregate

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

var exportHeader = []string{"Date", "Exercise", "Sets", "Total Reps", "Average Weight", "Total Volume", "Duration (min)"}

// WriteCSV renders rows as comma-joined lines. Text fields (and the header)
// are always double-quoted, numbers never are.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	bw := bufio.NewWriter(w)
	quoted := make([]string, len(exportHeader))
	for i, h := range exportHeader {
		quoted[i] = quote(h)
	}
	bw.WriteString(strings.Join(quoted, ","))
	bw.WriteString("\n")

	for _, r := range rows {
		fields := []string{
			quote(r.Date),
			quote(r.Exercise),
			strconv.Itoa(r.SetCount),
			strconv.Itoa(r.TotalReps),
			formatNumber(r.AverageWeight),
			formatNumber(r.TotalVolume),
			strconv.Itoa(r.DurationMinutes),
		}
		bw.WriteString(strings.Join(fields, ","))
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
