package dataset

import (
	"sort"

	"github.com/pivolan/claims_analyzer/domain/models"
)

// Well-known claims columns.
const (
	FieldClaimNo     = "CL_NO"
	FieldStatus      = "CLAIM_STATUS"
	FieldProvider    = "PROVIDER"
	FieldBU          = "BU"
	FieldGender      = "Gender"
	FieldBenefitType = "BEN_TYPE_DESC"
	FieldChannel     = "DISTRIBUTION"
	FieldProduct     = "PRODUCT"
	FieldIncurred    = "INCURRED"
	FieldApproved    = "APPROVED"
	FieldClaimed     = "CLAIMED"
	FieldOutstanding = "OUTSTANDING"
	FieldAge         = "AGE"
	FieldYear        = "YEAR"
	FieldYearMonth   = "YEAR_MONTH"
)

// StatusAccepted is the claim status counted toward approval rates.
const StatusAccepted = "Accept"

// ClaimsTableColumns is the display allow-list for the paginated table
// view, intersected with the columns a dataset actually has.
var ClaimsTableColumns = []string{
	FieldClaimNo, FieldStatus, FieldProvider, PrimaryDateColumn,
	FieldIncurred, FieldApproved, FieldClaimed, FieldBenefitType,
	"DIAGNOSIS_DETAILS", "POLICYHOLDER", "Member Name",
}

// filterAliases maps the dashboard's plural filter keys onto column names.
var filterAliases = map[string]string{
	"years":                 FieldYear,
	"statuses":              FieldStatus,
	"business_units":        FieldBU,
	"products":              FieldProduct,
	"distribution_channels": FieldChannel,
}

// NormalizeFilters rewrites alias keys to column names; unknown keys pass
// through untouched (the filter engine ignores absent columns anyway).
func NormalizeFilters(filters FilterSet) FilterSet {
	if filters == nil {
		return nil
	}
	out := make(FilterSet, len(filters))
	for key, values := range filters {
		if col, ok := filterAliases[key]; ok {
			key = col
		}
		out[key] = values
	}
	return out
}

func (v *View) columnSum(field string) float64 {
	col, ok := v.table.Column(field)
	if !ok {
		return 0
	}
	var sum float64
	for _, row := range v.idx {
		if value, ok := col.Float(row); ok {
			sum += value
		}
	}
	return sum
}

func (v *View) columnMean(field string) float64 {
	col, ok := v.table.Column(field)
	if !ok {
		return 0
	}
	var (
		sum   float64
		count int
	)
	for _, row := range v.idx {
		if value, ok := col.Float(row); ok {
			sum += value
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// statusRate is the share of rows with the accepted status, in percent.
// An empty row set yields exactly 0.
func statusRate(col *Column, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	var accepted int
	for _, row := range rows {
		if !col.IsNull(row) && col.Strs[row] == StatusAccepted {
			accepted++
		}
	}
	return roundToTwo(float64(accepted) / float64(len(rows)) * 100)
}

func countNonNull(col *Column, rows []int) int64 {
	var n int64
	for _, row := range rows {
		if !col.IsNull(row) {
			n++
		}
	}
	return n
}

// claimCount counts claims in a row set: non-null claim numbers when the
// column exists, plain row count otherwise.
func (v *View) claimCount(rows []int) int64 {
	if col, ok := v.table.Column(FieldClaimNo); ok {
		return countNonNull(col, rows)
	}
	return int64(len(rows))
}

// KPISummary computes the headline metrics over a filtered view.
func KPISummary(v *View) models.KPISummary {
	kpi := models.KPISummary{
		TotalClaims:      int64(v.Len()),
		TotalIncurred:    roundToTwo(v.columnSum(FieldIncurred)),
		TotalApproved:    roundToTwo(v.columnSum(FieldApproved)),
		TotalClaimed:     roundToTwo(v.columnSum(FieldClaimed)),
		TotalOutstanding: roundToTwo(v.columnSum(FieldOutstanding)),
		AvgClaimAmount:   roundToTwo(v.columnMean(FieldApproved)),
	}
	if col, ok := v.table.Column(FieldStatus); ok && kpi.TotalClaims > 0 {
		kpi.ApprovalRate = statusRate(col, v.idx)
	}
	return kpi
}

// ClaimsTrend aggregates claim counts and amounts per year-month. The
// derived column being absent (no usable pay dates) yields empty arrays.
func ClaimsTrend(v *View) models.TrendResult {
	result := models.TrendResult{
		Labels:          []string{},
		ClaimCounts:     []int64{},
		ApprovedAmounts: []float64{},
		IncurredAmounts: []float64{},
	}
	buckets, numericKey, ok := v.groupBy(FieldYearMonth)
	if !ok {
		return result
	}
	sort.SliceStable(buckets, func(a, b int) bool {
		return labelLess(buckets[a], buckets[b], numericKey)
	})
	approvedCol, _ := v.table.Column(FieldApproved)
	incurredCol, _ := v.table.Column(FieldIncurred)
	for _, b := range buckets {
		result.Labels = append(result.Labels, b.label)
		result.ClaimCounts = append(result.ClaimCounts, v.claimCount(b.rows))
		result.ApprovedAmounts = append(result.ApprovedAmounts, roundToTwo(sumRows(approvedCol, b.rows)))
		result.IncurredAmounts = append(result.IncurredAmounts, roundToTwo(sumRows(incurredCol, b.rows)))
	}
	return result
}

func sumRows(col *Column, rows []int) float64 {
	if col == nil {
		return 0
	}
	var sum float64
	for _, row := range rows {
		if value, ok := col.Float(row); ok {
			sum += value
		}
	}
	return sum
}

// groupReport builds the count+approved-sum breakdown per group key,
// labels ascending, optionally with per-group approval rates.
func (v *View) groupReport(groupField string, withRates bool) models.GroupReport {
	result := models.GroupReport{
		Labels:          []string{},
		ClaimCounts:     []int64{},
		ApprovedAmounts: []float64{},
	}
	if withRates {
		result.ApprovalRates = []float64{}
	}
	buckets, numericKey, ok := v.groupBy(groupField)
	if !ok {
		return result
	}
	sort.SliceStable(buckets, func(a, b int) bool {
		return labelLess(buckets[a], buckets[b], numericKey)
	})
	approvedCol, _ := v.table.Column(FieldApproved)
	statusCol, hasStatus := v.table.Column(FieldStatus)
	for _, b := range buckets {
		result.Labels = append(result.Labels, b.label)
		result.ClaimCounts = append(result.ClaimCounts, v.claimCount(b.rows))
		result.ApprovedAmounts = append(result.ApprovedAmounts, roundToTwo(sumRows(approvedCol, b.rows)))
		if withRates {
			rate := 0.0
			if hasStatus {
				rate = statusRate(statusCol, b.rows)
			}
			result.ApprovalRates = append(result.ApprovalRates, rate)
		}
	}
	return result
}

// BUAnalysis breaks claims down per business unit.
func BUAnalysis(v *View) models.GroupReport {
	return v.groupReport(FieldBU, false)
}

// ChannelAnalysis breaks claims down per distribution channel, including
// per-channel approval rates.
func ChannelAnalysis(v *View) models.GroupReport {
	return v.groupReport(FieldChannel, true)
}

// YearlyComparison breaks claims down per payment year.
func YearlyComparison(v *View) models.GroupReport {
	return v.groupReport(FieldYear, false)
}

// ProductAnalysis keeps the limit products with the largest approved
// sums, descending.
func ProductAnalysis(v *View, limit int) models.GroupReport {
	result := models.GroupReport{
		Labels:          []string{},
		ClaimCounts:     []int64{},
		ApprovedAmounts: []float64{},
	}
	buckets, _, ok := v.groupBy(FieldProduct)
	if !ok {
		return result
	}
	approvedCol, _ := v.table.Column(FieldApproved)
	sums := make([]float64, len(buckets))
	for i, b := range buckets {
		sums[i] = sumRows(approvedCol, b.rows)
	}
	order := make([]int, len(buckets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sums[order[a]] > sums[order[b]]
	})
	if limit <= 0 {
		limit = 10
	}
	if len(order) > limit {
		order = order[:limit]
	}
	for _, idx := range order {
		result.Labels = append(result.Labels, buckets[idx].label)
		result.ClaimCounts = append(result.ClaimCounts, v.claimCount(buckets[idx].rows))
		result.ApprovedAmounts = append(result.ApprovedAmounts, roundToTwo(sums[idx]))
	}
	return result
}

// TopProviders ranks providers by approved amount.
func TopProviders(v *View, limit int) models.SeriesResult {
	if !v.table.Has(FieldProvider) || !v.table.Has(FieldApproved) {
		return emptySeries()
	}
	return v.TopN(FieldProvider, FieldApproved, limit)
}

func StatusDistribution(v *View) models.SeriesResult {
	return v.ValueCounts(FieldStatus)
}

func GenderDistribution(v *View) models.SeriesResult {
	return v.ValueCounts(FieldGender)
}

// BenefitTypeAnalysis ranks benefit types twice: by claim count and by
// approved amount.
func BenefitTypeAnalysis(v *View, limit int) models.BenefitTypeResult {
	if limit <= 0 {
		limit = 10
	}
	return models.BenefitTypeResult{
		ByCount:  headSeries(v.ValueCounts(FieldBenefitType), limit),
		ByAmount: v.TopN(FieldBenefitType, FieldApproved, limit),
	}
}

func headSeries(s models.SeriesResult, limit int) models.SeriesResult {
	if len(s.Labels) > limit {
		s.Labels = s.Labels[:limit]
		s.Values = s.Values[:limit]
	}
	return s
}

// AgeDistribution bins claimant ages into the fixed age groups.
func AgeDistribution(v *View) models.SeriesResult {
	return v.Histogram(FieldAge, AgeBins)
}

// BuildDashboard assembles the full report suite for one filtered view.
func BuildDashboard(v *View) models.DashboardReport {
	return models.DashboardReport{
		KPI:          KPISummary(v),
		Trend:        ClaimsTrend(v),
		Statuses:     StatusDistribution(v),
		TopProviders: TopProviders(v, 10),
		BusinessUnit: BUAnalysis(v),
		Gender:       GenderDistribution(v),
		BenefitTypes: BenefitTypeAnalysis(v, 10),
		Channels:     ChannelAnalysis(v),
		Products:     ProductAnalysis(v, 10),
		Yearly:       YearlyComparison(v),
		Ages:         AgeDistribution(v),
	}
}

const maxProductOptions = 20

// FilterOptions lists the selectable filter values of a dataset, keyed by
// the dashboard's filter names.
func FilterOptions(t *Table) map[string][]string {
	options := map[string][]string{}
	v := NewView(t)

	distinctSorted := func(field string) ([]string, bool) {
		buckets, numericKey, ok := v.groupBy(field)
		if !ok {
			return nil, false
		}
		sort.SliceStable(buckets, func(a, b int) bool {
			return labelLess(buckets[a], buckets[b], numericKey)
		})
		values := make([]string, len(buckets))
		for i, b := range buckets {
			values[i] = b.label
		}
		return values, true
	}

	if values, ok := distinctSorted(FieldYear); ok {
		options["years"] = values
	}
	if buckets, _, ok := v.groupBy(FieldStatus); ok {
		// statuses keep first-seen order, as the dashboard always did
		values := make([]string, len(buckets))
		for i, b := range buckets {
			values[i] = b.label
		}
		options["statuses"] = values
	}
	if values, ok := distinctSorted(FieldBU); ok {
		options["business_units"] = values
	}
	if values, ok := distinctSorted(FieldProduct); ok {
		if len(values) > maxProductOptions {
			values = values[:maxProductOptions]
		}
		options["products"] = values
	}
	if values, ok := distinctSorted(FieldChannel); ok {
		options["distribution_channels"] = values
	}
	return options
}
