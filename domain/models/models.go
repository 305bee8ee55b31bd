package models

import "time"

// NumericStats are min/max/mean over the non-null values of a numeric
// column. Pointers stay nil when the column has no non-null values, so
// "no data" is never reported as zero.
type NumericStats struct {
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
	Mean *float64 `json:"mean"`
}

type ValueCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// CategoricalStats hold the distinct-value count and, while the column
// stays below 1000 distinct values, its 10 most frequent values.
type CategoricalStats struct {
	UniqueCount int64        `json:"unique_count"`
	TopValues   []ValueCount `json:"top_values"`
}

type ColumnInfo struct {
	Name        string            `json:"name"`
	Kind        string            `json:"type"`
	DType       string            `json:"dtype"`
	NullCount   int64             `json:"null_count"`
	Numeric     *NumericStats     `json:"numeric_stats,omitempty"`
	Categorical *CategoricalStats `json:"categorical_stats,omitempty"`
}

// DatasetMeta is the persisted per-dataset profile, computed once at
// ingestion time.
type DatasetMeta struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Filename    string       `json:"filename"`
	Filepath    string       `json:"filepath"`
	Rows        int          `json:"rows"`
	Columns     int          `json:"columns"`
	ColumnsInfo []ColumnInfo `json:"columns_info"`
	CreatedAt   time.Time    `json:"created_at"`
	SizeMB      float64      `json:"size_mb"`
}

type DatasetSummary struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	CreatedAt time.Time `json:"created_at"`
	SizeMB    float64   `json:"size_mb"`
}

// SeriesResult is the single-metric chart envelope. Labels and Values
// are positionally aligned.
type SeriesResult struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// TrendResult is the monthly claims trend envelope.
type TrendResult struct {
	Labels          []string  `json:"labels"`
	ClaimCounts     []int64   `json:"claim_counts"`
	ApprovedAmounts []float64 `json:"approved_amounts"`
	IncurredAmounts []float64 `json:"incurred_amounts"`
}

// GroupReport is the multi-metric grouped envelope used by the business
// unit, channel, product and yearly breakdowns. ApprovalRates is only
// present for the channel report.
type GroupReport struct {
	Labels          []string  `json:"labels"`
	ClaimCounts     []int64   `json:"claim_counts"`
	ApprovedAmounts []float64 `json:"approved_amounts"`
	ApprovalRates   []float64 `json:"approval_rates,omitempty"`
}

type KPISummary struct {
	TotalClaims      int64   `json:"total_claims"`
	TotalIncurred    float64 `json:"total_incurred"`
	TotalApproved    float64 `json:"total_approved"`
	TotalClaimed     float64 `json:"total_claimed"`
	TotalOutstanding float64 `json:"total_outstanding"`
	ApprovalRate     float64 `json:"approval_rate"`
	AvgClaimAmount   float64 `json:"avg_claim_amount"`
}

type BenefitTypeResult struct {
	ByCount  SeriesResult `json:"by_count"`
	ByAmount SeriesResult `json:"by_amount"`
}

// DashboardReport bundles the full claims report suite for one filter set.
type DashboardReport struct {
	KPI          KPISummary        `json:"kpi"`
	Trend        TrendResult       `json:"trend"`
	Statuses     SeriesResult      `json:"status_distribution"`
	TopProviders SeriesResult      `json:"top_providers"`
	BusinessUnit GroupReport       `json:"bu_analysis"`
	Gender       SeriesResult      `json:"gender_distribution"`
	BenefitTypes BenefitTypeResult `json:"benefit_types"`
	Channels     GroupReport       `json:"channel_analysis"`
	Products     GroupReport       `json:"product_analysis"`
	Yearly       GroupReport       `json:"yearly_comparison"`
	Ages         SeriesResult      `json:"age_distribution"`
}

// TableResult is the paginated table envelope. Missing cells are empty
// strings, never nulls.
type TableResult struct {
	Columns      []string   `json:"columns"`
	Data         [][]string `json:"data"`
	TotalRecords int        `json:"total_records"`
	Page         int        `json:"page"`
	PageSize     int        `json:"page_size"`
	TotalPages   int        `json:"total_pages"`
}

type PreviewResult struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	TotalRows int        `json:"total_rows"`
}

type ScatterPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ScatterResult struct {
	Data   []ScatterPoint `json:"data"`
	XLabel string         `json:"x_label"`
	YLabel string         `json:"y_label"`
}

type CategoricalChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
}

// ChartResult is the facade envelope: the chart kind plus its
// kind-specific data payload.
type ChartResult struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NumberStats is the deep numeric column summary. Quantiles are keyed by
// percentile name ("p25", "p97.5") so the struct stays JSON-encodable.
type NumberStats struct {
	Average   float64            `json:"average"`
	Median    float64            `json:"median"`
	Min       float64            `json:"min"`
	Max       float64            `json:"max"`
	Count     int                `json:"count"`
	Quantiles map[string]float64 `json:"quantiles"`
	IQR       float64            `json:"iqr"`
	Outliers  []float64          `json:"outliers"`
}
