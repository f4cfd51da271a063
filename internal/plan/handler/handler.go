package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"planboard-service/internal/config"
	"planboard-service/internal/fileio"
	"planboard-service/internal/plan/export"
	"planboard-service/internal/plan/model"
	"planboard-service/internal/plan/service"
	"planboard-service/internal/plan/source"
)

// Deps bundles what every endpoint closure needs.
type Deps struct {
	Cfg    config.Config
	Tables config.Tables
	Logger zerolog.Logger
	Source *source.CachedSource // nil when SOURCE_URL is not configured
}

func (d Deps) reqLogger(r *http.Request) zerolog.Logger {
	if rid := r.Header.Get("X-Request-ID"); rid != "" {
		return d.Logger.With().Str("req_id", rid).Logger()
	}
	return d.Logger
}

// inputRows resolves the input snapshot: an uploaded file when present,
// otherwise the cached source. fromSource reports which path was taken so
// the caller can map failures to the right status.
func inputRows(r *http.Request, d Deps) (rows []map[string]string, headers []string, fromSource bool, err error) {
	file, fh, ferr := r.FormFile("file")
	if ferr == nil {
		defer file.Close()
		rows, headers, err = fileio.ReadAnyMaps(file, fh.Filename, formInt(r, "header_row", 1))
		if err != nil {
			return nil, nil, false, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		return rows, headers, false, nil
	}
	if d.Source != nil {
		rows, headers, err = d.Source.Load(r.Context(), formBool(r, "refresh", false))
		if err != nil {
			return nil, nil, true, err
		}
		return rows, headers, true, nil
	}
	return nil, nil, false, errNoInput
}

// runProduction is the shared analysis pipeline behind /analyze and its
// export twin: snapshot -> reconcile -> coerce/classify -> filter ->
// aggregate.
func runProduction(r *http.Request, d Deps) (model.AnalyzeResult, int, error) {
	rows, headers, fromSource, err := inputRows(r, d)
	if err != nil {
		code := http.StatusBadRequest
		if fromSource {
			code = http.StatusBadGateway
		}
		return model.AnalyzeResult{}, code, err
	}

	schema := service.ProductionSchema()
	now := time.Now()
	records := service.BuildRecords(rows, headers, schema, service.BuildOptions{
		DayFirst:   formBool(r, "day_first", true),
		UrgentDays: d.Tables.UrgentDays,
		Now:        now,
	})

	var warnings []string
	renamed := service.Reconcile(headers, schema)
	if _, ok := renamed[model.FieldMachine]; !ok {
		warnings = append(warnings, "no machine column found; utilisation disabled")
	}
	if _, ok := renamed[model.FieldFinish]; !ok {
		warnings = append(warnings, "no finish date column found; date filtering and utilisation disabled")
	}
	if _, ok := renamed[model.FieldFeeds]; !ok {
		warnings = append(warnings, "no feeds column found; throughput reported as 0")
	}

	suppress := model.NewKeySet(formList(r, "suppress")...)
	base := service.ApplyFilter(records, model.Filter{Suppress: suppress})

	f := model.Filter{
		DateField: model.FieldFinish,
		From:      formDate(r, "from"),
		To:        formDate(r, "to"),
		Equals: map[string]string{
			model.FieldMachine:    strings.ToUpper(strings.TrimSpace(r.FormValue("machine"))),
			model.FieldCustomer:   strings.ToUpper(strings.TrimSpace(r.FormValue("customer"))),
			model.FieldWorksOrder: strings.TrimSpace(r.FormValue("works_order")),
		},
		Contains: map[string]string{
			model.FieldNextUncoveredOrder: r.FormValue("search"),
		},
		Suppress: suppress,
	}
	filtered := service.ApplyFilter(records, f)
	filtered = service.SortByDate(filtered, model.FieldFinish, r.FormValue("sort") != "desc")

	_, hasMachine := renamed[model.FieldMachine]
	_, hasFinish := renamed[model.FieldFinish]
	var utilOverall, utilFiltered []model.UtilisationRow
	if hasMachine && hasFinish {
		utilOverall = service.AggregateUtilisation(base, d.Tables)
		utilFiltered = service.AggregateUtilisation(filtered, d.Tables)
	}

	columns := presentColumns(filtered, []string{
		model.FieldMachine,
		model.FieldCustomer,
		model.FieldRow,
		model.FieldWorksOrder,
		model.FieldFeeds,
		model.FieldQuantity,
		model.FieldNextUncoveredOrder,
		model.ColNextShortageDate,
		model.ColRiskFlag,
		model.FieldRunDecision,
		model.FieldOrderValue,
		model.FieldFinish,
	})

	return model.AnalyzeResult{
		Summary:             service.SummarizeProduction(filtered),
		Columns:             columns,
		Rows:                service.ViewRows(filtered, columns),
		UtilisationOverall:  utilOverall,
		UtilisationFiltered: utilFiltered,
		Warnings:            warnings,
	}, http.StatusOK, nil
}

// Analyze serves the production-plan analysis as JSON.
func Analyze(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := d.reqLogger(r)
		if err := parseAnyForm(r, d.Cfg.MaxUploadMB); err != nil {
			writeError(w, http.StatusBadRequest, "bad form: "+err.Error())
			return
		}
		res, code, err := runProduction(r, d)
		if err != nil {
			log.Error().Err(err).Msg("analyze")
			writeError(w, code, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
		log.Info().
			Int("rows", len(res.Rows)).
			Int("machines", len(res.UtilisationOverall)).
			Dur("elapsed", time.Since(start)).
			Msg("analyze done")
	}
}

// AnalyzeExport streams the filtered production view as CSV or XLSX.
func AnalyzeExport(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := d.reqLogger(r)
		if err := parseAnyForm(r, d.Cfg.MaxUploadMB); err != nil {
			writeError(w, http.StatusBadRequest, "bad form: "+err.Error())
			return
		}
		res, code, err := runProduction(r, d)
		if err != nil {
			log.Error().Err(err).Msg("analyze export")
			writeError(w, code, err.Error())
			return
		}
		streamView(w, r, log, "production_plan", res.Columns, res.Rows)
	}
}

// PurchaseOrders serves the incoming-PO analysis: filtered lines plus the
// due-date-change report.
func PurchaseOrders(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := d.reqLogger(r)
		if err := parseAnyForm(r, d.Cfg.MaxUploadMB); err != nil {
			writeError(w, http.StatusBadRequest, "bad form: "+err.Error())
			return
		}
		res, code, err := runPurchaseOrders(r, d)
		if err != nil {
			log.Error().Err(err).Msg("purchase orders")
			writeError(w, code, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
		log.Info().
			Int("rows", len(res.Rows)).
			Int("changes", len(res.DueDateChanges)).
			Dur("elapsed", time.Since(start)).
			Msg("purchase orders done")
	}
}

// PurchaseOrdersExport streams either the filtered lines or the
// due-date-change report (view=changes) as CSV or XLSX.
func PurchaseOrdersExport(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := d.reqLogger(r)
		if err := parseAnyForm(r, d.Cfg.MaxUploadMB); err != nil {
			writeError(w, http.StatusBadRequest, "bad form: "+err.Error())
			return
		}
		res, code, err := runPurchaseOrders(r, d)
		if err != nil {
			log.Error().Err(err).Msg("purchase orders export")
			writeError(w, code, err.Error())
			return
		}
		rows, name := res.Rows, "purchase_orders"
		if r.FormValue("view") == "changes" {
			rows, name = res.DueDateChanges, "due_date_changes"
		}
		streamView(w, r, log, name, res.Columns, rows)
	}
}

func runPurchaseOrders(r *http.Request, d Deps) (model.PurchaseOrderResult, int, error) {
	file, fh, err := r.FormFile("file")
	if err != nil {
		return model.PurchaseOrderResult{}, http.StatusBadRequest, fmt.Errorf("missing file: %w", err)
	}
	defer file.Close()
	rows, headers, err := fileio.ReadAnyMaps(file, fh.Filename, formInt(r, "header_row", 1))
	if err != nil {
		return model.PurchaseOrderResult{}, http.StatusBadRequest, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	schema := service.PurchaseOrderSchema()
	now := time.Now()
	records := service.BuildRecords(rows, headers, schema, service.BuildOptions{
		DayFirst:   true,
		UrgentDays: d.Tables.UrgentDays,
		Now:        now,
	})
	service.FallbackCustomer(records)

	var warnings []string
	renamed := service.Reconcile(headers, schema)
	if _, ok := renamed[model.FieldPONumber]; ok {
		kept := records[:0]
		for _, rec := range records {
			if strings.TrimSpace(rec.TextVal(model.FieldPONumber)) != "" {
				kept = append(kept, rec)
			}
		}
		records = kept
	} else {
		warnings = append(warnings, "no PO number column found")
	}
	if _, ok := renamed[model.FieldCurrentDueDate]; !ok {
		warnings = append(warnings, "no current due date column found; date filtering and overdue counts disabled")
	}

	suppress := model.NewKeySet(formList(r, "suppress")...)
	f := model.Filter{
		DateField: model.FieldCurrentDueDate,
		From:      formDate(r, "from"),
		To:        formDate(r, "to"),
		Equals: map[string]string{
			model.FieldActiveWorksOrders: strings.TrimSpace(r.FormValue("works_order")),
			model.FieldProductCode:       strings.TrimSpace(r.FormValue("product_code")),
			model.FieldSupplierTripNo:    strings.TrimSpace(r.FormValue("trip")),
		},
		Suppress: suppress,
	}
	filtered := service.ApplyFilter(records, f)

	changes := service.DueDateChanges(records)
	changes = service.ApplyFilter(changes, model.Filter{
		In:       map[string][]string{model.FieldCustomer: formList(r, "customers")},
		Suppress: suppress,
	})

	columns := presentColumns(records, []string{
		model.FieldPONumber,
		model.FieldSupplierTripNo,
		model.FieldProductCode,
		model.FieldQtyOutstanding,
		model.FieldOrigDueDate,
		model.FieldCurrentDueDate,
		model.FieldDifference,
		model.FieldActiveWorksOrders,
		model.FieldCustomer,
		model.FieldWODueDate,
	})

	return model.PurchaseOrderResult{
		Summary:        service.SummarizePurchaseOrders(service.ApplyFilter(records, model.Filter{Suppress: suppress}), now),
		Columns:        columns,
		Rows:           service.ViewRows(filtered, columns),
		DueDateChanges: service.ViewRows(changes, columns),
		Warnings:       warnings,
	}, http.StatusOK, nil
}

// LeadTimes serves the board-grade lead-time view: placeholder rows dropped,
// dates parsed day-first, optional grade filter.
func LeadTimes(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := d.reqLogger(r)
		if err := parseAnyForm(r, d.Cfg.MaxUploadMB); err != nil {
			writeError(w, http.StatusBadRequest, "bad form: "+err.Error())
			return
		}
		file, fh, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file: "+err.Error())
			return
		}
		defer file.Close()
		rows, headers, err := fileio.ReadAnyMaps(file, fh.Filename, formInt(r, "header_row", 1))
		if err != nil {
			writeError(w, http.StatusBadRequest, "read "+fh.Filename+": "+err.Error())
			return
		}

		schema := service.LeadTimeSchema()
		records := service.BuildRecords(rows, headers, schema, service.BuildOptions{DayFirst: true})

		var warnings []string
		renamed := service.Reconcile(headers, schema)
		if _, ok := renamed[model.FieldLeadTime]; !ok {
			warnings = append(warnings, "no lead time column found")
		}
		if _, ok := renamed[model.FieldBoardGrade]; !ok {
			warnings = append(warnings, "no board grade column found")
		}

		records = service.FilterKnownDates(records, model.FieldLeadTime)
		grades := service.Distinct(records, model.FieldBoardGrade)
		records = service.ApplyFilter(records, model.Filter{
			Equals: map[string]string{model.FieldBoardGrade: strings.TrimSpace(r.FormValue("grade"))},
		})
		records = service.SortByDate(records, model.FieldLeadTime, true)

		columns := []string{model.FieldBoardGrade, model.FieldLeadTime}
		writeJSON(w, http.StatusOK, model.LeadTimeResult{
			Columns:  columns,
			Rows:     service.ViewRows(records, columns),
			Grades:   grades,
			Warnings: warnings,
		})
		log.Info().Int("rows", len(records)).Dur("elapsed", time.Since(start)).Msg("lead times done")
	}
}

// presentColumns keeps the candidate columns that at least one record can
// actually show, so views never render columns the source sheet lacked.
func presentColumns(records []model.Record, candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		switch c {
		case model.ColRisk, model.ColRiskFlag, model.ColNextShortageDate:
			for _, rec := range records {
				if rec.Risk != nil {
					out = append(out, c)
					break
				}
			}
		default:
			for _, rec := range records {
				if rec.Has(c) {
					out = append(out, c)
					break
				}
			}
		}
	}
	return out
}

func streamView(w http.ResponseWriter, r *http.Request, log zerolog.Logger, name string, columns []string, rows []map[string]string) {
	switch r.FormValue("format") {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.xlsx"`)
		if err := export.WriteXLSX(w, name, columns, rows); err != nil {
			log.Error().Err(err).Msg("write xlsx")
		}
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
		if err := export.WriteCSV(w, columns, rows); err != nil {
			log.Error().Err(err).Msg("write csv")
		}
	}
}
