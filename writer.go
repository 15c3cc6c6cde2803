package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/czerwonk/cloudping/catalog"
	"github.com/czerwonk/cloudping/config"
	"github.com/czerwonk/cloudping/monitor"
)

// newReporter picks the output format for probe results.
func newReporter(cfg *config.Config, w io.Writer) monitor.Reporter {
	if cfg.Report.CSV {
		return newCSVReporter(w, cfg.Report.Sort)
	}

	return newTableReporter(w, cfg.Report.Sort)
}

// tableReporter renders one aligned table per cycle.
type tableReporter struct {
	w         io.Writer
	sortByAvg bool
}

func newTableReporter(w io.Writer, sortByAvg bool) *tableReporter {
	return &tableReporter{w: w, sortByAvg: sortByAvg}
}

func (t *tableReporter) Report(snapshots []monitor.Snapshot) {
	if t.sortByAvg {
		sortByAverage(snapshots)
	}

	table := tablewriter.NewTable(t.w,
		tablewriter.WithHeader([]string{"Region", "Cur. ms", "Avg. ms", "Count"}),
	)

	for _, s := range snapshots {
		table.Append([]string{
			s.ID,
			strconv.FormatInt(s.Current, 10),
			strconv.FormatInt(s.Average, 10),
			strconv.Itoa(s.Count),
		})
	}

	table.Render()
}

// csvReporter writes one header for the whole run and appends a row per
// region after every cycle.
type csvReporter struct {
	w           *csv.Writer
	sortByAvg   bool
	wroteHeader bool
}

func newCSVReporter(w io.Writer, sortByAvg bool) *csvReporter {
	return &csvReporter{w: csv.NewWriter(w), sortByAvg: sortByAvg}
}

func (c *csvReporter) Report(snapshots []monitor.Snapshot) {
	if !c.wroteHeader {
		c.w.Write([]string{"region", "cur_ms", "avg_ms", "count"})
		c.wroteHeader = true
	}

	if c.sortByAvg {
		sortByAverage(snapshots)
	}

	for _, s := range snapshots {
		c.w.Write([]string{
			s.ID,
			strconv.FormatInt(s.Current, 10),
			strconv.FormatInt(s.Average, 10),
			strconv.Itoa(s.Count),
		})
	}

	c.w.Flush()
}

// sortByAverage orders by average RTT ascending, which puts regions without
// a single successful probe first.
func sortByAverage(snapshots []monitor.Snapshot) {
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Average < snapshots[j].Average
	})
}

// writeRegionList prints the directory without probing it: plain region ids
// one per line, or id/name/url rows in CSV mode.
func writeRegionList(w io.Writer, entries []catalog.Entry, asCSV bool) error {
	if !asCSV {
		for _, e := range entries {
			if _, err := fmt.Fprintln(w, e.Region); err != nil {
				return err
			}
		}

		return nil
	}

	cw := csv.NewWriter(w)
	cw.Write([]string{"region", "name", "url"})
	for _, e := range entries {
		cw.Write([]string{e.Region, e.RegionName, e.URL})
	}
	cw.Flush()

	return cw.Error()
}
