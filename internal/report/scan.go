package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// PreviousWeekKPI scans existing reports in dir, newest first, and returns
// the KPI recorded in the most recent report before current that carries
// one. Reports without a KPI line are skipped, so a skeleton week does not
// reset the baseline. Returns 0 when no earlier report has a KPI.
func PreviousWeekKPI(dir string, current Descriptor) (float64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read reports directory: %w", err)
	}

	type candidate struct {
		year, week int
		name       string
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		week, year, ok := parseFilename(entry.Name())
		if !ok {
			continue
		}
		if year > current.Year || (year == current.Year && week >= current.Week) {
			continue
		}
		candidates = append(candidates, candidate{year: year, week: week, name: entry.Name()})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].year != candidates[j].year {
			return candidates[i].year > candidates[j].year
		}
		return candidates[i].week > candidates[j].week
	})

	for _, c := range candidates {
		kpi, found, err := scanKPILine(filepath.Join(dir, c.name))
		if err != nil {
			return 0, err
		}
		if found {
			return kpi, nil
		}
	}
	return 0, nil
}

// parseFilename extracts (week, year) from a "week_<W>_<Y>.md" file name.
func parseFilename(name string) (week, year int, ok bool) {
	base, found := strings.CutPrefix(name, "week_")
	if !found {
		return 0, 0, false
	}
	base, found = strings.CutSuffix(base, ".md")
	if !found {
		return 0, 0, false
	}
	parts := strings.Split(base, "_")
	if len(parts) != 2 {
		return 0, 0, false
	}
	week, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return week, year, true
}

// scanKPILine reads a report file and extracts the bolded value from its
// "This Week KPI" line. The second return reports whether a KPI line was
// found.
func scanKPILine(path string) (float64, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, fmt.Errorf("failed to open previous report: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, kpiLinePrefix) {
			continue
		}
		start := strings.Index(line, "**")
		if start < 0 {
			continue
		}
		rest := line[start+2:]
		end := strings.Index(rest, "**")
		if end < 0 {
			continue
		}
		kpi, err := strconv.ParseFloat(rest[:end], 64)
		if err != nil {
			continue
		}
		return kpi, true, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, false, fmt.Errorf("failed to scan previous report: %w", err)
	}
	return 0, false, nil
}
