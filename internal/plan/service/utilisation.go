package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"planboard-service/internal/config"
	"planboard-service/internal/plan/model"
)

// AggregateUtilisation computes average planned feeds per active day for
// each machine and compares it against rated capacity.
//
// Records with an unknown finish date are dropped. Feeds are summed per
// (machine, day) first — several line items can finish on the same day —
// then averaged over the days the machine actually appears on; idle
// calendar days do not drag the average down. Capacity lookup resolves
// aliases; a machine with no capacity entry reports nil capacity and nil
// utilisation rather than a fabricated number. Rows come back sorted by
// machine code.
func AggregateUtilisation(records []model.Record, tables config.Tables) []model.UtilisationRow {
	perDay := make(map[string]map[string]float64)
	for _, rec := range records {
		d, ok := rec.DateVal(model.FieldFinish)
		if !ok {
			continue
		}
		m := strings.TrimSpace(rec.TextVal(model.FieldMachine))
		if m == "" {
			continue
		}
		day := d.Format(time.DateOnly)
		if perDay[m] == nil {
			perDay[m] = make(map[string]float64)
		}
		perDay[m][day] += rec.NumVal(model.FieldFeeds)
	}

	machines := make([]string, 0, len(perDay))
	for m := range perDay {
		machines = append(machines, m)
	}
	sort.Strings(machines)

	out := make([]model.UtilisationRow, 0, len(machines))
	for _, m := range machines {
		var total float64
		for _, feeds := range perDay[m] {
			total += feeds
		}
		avg := round1(total / float64(len(perDay[m])))

		row := model.UtilisationRow{Machine: m, AvgFeedsPerDay: avg}
		if rated, ok := tables.CapacityFor(m); ok && rated > 0 {
			row.Capacity = &rated
			util := round1(avg / rated * 100)
			row.Utilisation = &util
		}
		out = append(out, row)
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
