package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quoteline/premium-cli/internal/model"
)

// batchColumns is the required CSV header for batch input, in any
// order. Header names are matched case-insensitively.
var batchColumns = []string{
	"age",
	"gender",
	"region",
	"marital_status",
	"bmi_category",
	"smoking_status",
	"employment_status",
	"income_lakhs",
	"number_of_dependants",
	"genetical_risk",
	"insurance_plan",
	"medical_history",
}

// BatchRow is one parsed input row. A row-level parse failure is
// carried in Err rather than aborting the whole file, so the output
// report can show exactly which rows were rejected.
type BatchRow struct {
	Line      int
	Applicant model.Applicant
	Err       error
}

// BatchResult is the outcome of predicting one batch row.
type BatchResult struct {
	Line       int
	Applicant  model.Applicant
	Prediction *model.Prediction
	Err        error
}

// ParseApplicantsCSV reads a headered batch CSV. It returns an error
// only for a malformed file or header; field-level failures are
// recorded per row.
func ParseApplicantsCSV(r io.Reader) ([]BatchRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: read csv header")
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range batchColumns {
		if _, ok := idx[col]; !ok {
			return nil, eris.Errorf("pipeline: csv missing required column %q", col)
		}
	}

	var rows []BatchRow
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, eris.Wrapf(err, "pipeline: read csv line %d", line)
		}

		a, err := parseRecord(record, idx)
		rows = append(rows, BatchRow{Line: line, Applicant: a, Err: err})
	}

	return rows, nil
}

func parseRecord(record []string, idx map[string]int) (model.Applicant, error) {
	get := func(col string) string { return strings.TrimSpace(record[idx[col]]) }

	var a model.Applicant
	var err error

	a.Age, err = parseInt(get("age"), "age")
	if err != nil {
		return a, err
	}
	a.Dependants, err = parseInt(get("number_of_dependants"), "number_of_dependants")
	if err != nil {
		return a, err
	}
	a.GeneticalRisk, err = parseInt(get("genetical_risk"), "genetical_risk")
	if err != nil {
		return a, err
	}
	a.IncomeLakhs, err = strconv.ParseFloat(get("income_lakhs"), 64)
	if err != nil {
		return a, eris.Wrapf(model.ErrInvalidInput, "pipeline: income_lakhs %q is not numeric", get("income_lakhs"))
	}

	if a.Gender, err = model.ParseGender(get("gender")); err != nil {
		return a, err
	}
	if a.Region, err = model.ParseRegion(get("region")); err != nil {
		return a, err
	}
	if a.MaritalStatus, err = model.ParseMaritalStatus(get("marital_status")); err != nil {
		return a, err
	}
	if a.BMICategory, err = model.ParseBMICategory(get("bmi_category")); err != nil {
		return a, err
	}
	if a.SmokingStatus, err = model.ParseSmokingStatus(get("smoking_status")); err != nil {
		return a, err
	}
	if a.EmploymentStatus, err = model.ParseEmploymentStatus(get("employment_status")); err != nil {
		return a, err
	}
	if a.InsurancePlan, err = model.ParseInsurancePlan(get("insurance_plan")); err != nil {
		return a, err
	}
	if a.Conditions, err = model.ParseConditions(get("medical_history")); err != nil {
		return a, err
	}

	return a, nil
}

func parseInt(s, col string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, eris.Wrapf(model.ErrInvalidInput, "pipeline: %s %q is not an integer", col, s)
	}
	return n, nil
}

// PredictAll runs the pipeline over parsed rows with bounded
// concurrency. The artifact registry is read-only, so rows proceed in
// parallel without coordination; results come back in input order.
func (p *Pipeline) PredictAll(ctx context.Context, rows []BatchRow, concurrency int) []BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]BatchResult, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, row := range rows {
		i, row := i, row
		results[i] = BatchResult{Line: row.Line, Applicant: row.Applicant, Err: row.Err}
		if row.Err != nil {
			continue
		}
		g.Go(func() error {
			pred, err := p.Predict(ctx, row.Applicant)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Prediction = pred
			return nil
		})
	}
	// Workers never return errors; per-row failures live in results.
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	zap.L().Info("pipeline: batch complete",
		zap.Int("rows", len(results)),
		zap.Int("failed", failed),
	)

	return results
}

// WriteResultsCSV writes a batch report with one row per input row.
func WriteResultsCSV(w io.Writer, results []BatchResult) error {
	cw := csv.NewWriter(w)

	header := []string{"line", "age", "cohort", "risk_score", "premium", "error"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "pipeline: write csv header")
	}

	for _, r := range results {
		rec := []string{
			strconv.Itoa(r.Line),
			strconv.Itoa(r.Applicant.Age),
			"", "", "", "",
		}
		if r.Prediction != nil {
			rec[2] = r.Prediction.Cohort
			rec[3] = fmt.Sprintf("%.4f", r.Prediction.RiskScore)
			rec[4] = strconv.FormatInt(r.Prediction.Premium, 10)
		}
		if r.Err != nil {
			rec[5] = r.Err.Error()
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrapf(err, "pipeline: write csv line %d", r.Line)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "pipeline: flush csv")
}
