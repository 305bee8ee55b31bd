package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsView(t *testing.T) *View {
	return NewView(loadClaimsTable(t))
}

func TestKPISummary(t *testing.T) {
	kpi := KPISummary(claimsView(t))

	assert.EqualValues(t, 4, kpi.TotalClaims)
	assert.Equal(t, 1000.5, kpi.TotalIncurred)
	assert.Equal(t, 720.0, kpi.TotalApproved)
	assert.Equal(t, 1050.0, kpi.TotalClaimed)
	assert.Equal(t, 50.0, kpi.TotalOutstanding)
	assert.Equal(t, 180.0, kpi.AvgClaimAmount)
	assert.Equal(t, 75.0, kpi.ApprovalRate)
}

func TestKPISummaryEmptyView(t *testing.T) {
	v := claimsView(t).Filter(FilterSet{"CLAIM_STATUS": {"Void"}})
	kpi := KPISummary(v)

	assert.EqualValues(t, 0, kpi.TotalClaims)
	assert.Equal(t, 0.0, kpi.TotalApproved)
	assert.Equal(t, 0.0, kpi.ApprovalRate)
}

func TestClaimsTrend(t *testing.T) {
	trend := ClaimsTrend(claimsView(t))

	assert.Equal(t, []string{"2023-01", "2023-02", "2023-03"}, trend.Labels)
	assert.Equal(t, []int64{2, 1, 1}, trend.ClaimCounts)
	assert.Equal(t, []float64{90, 250, 380}, trend.ApprovedAmounts)
	assert.Equal(t, []float64{300.5, 300, 400}, trend.IncurredAmounts)
}

func TestClaimsTrendWithoutPayDates(t *testing.T) {
	v := NewView(makeTable(t,
		newCategoricalColumn("CL_NO", []string{"C1", "C2"}),
	))
	trend := ClaimsTrend(v)

	assert.Empty(t, trend.Labels)
	assert.Empty(t, trend.ClaimCounts)
}

func TestBUAnalysis(t *testing.T) {
	report := BUAnalysis(claimsView(t))

	// group labels ascending
	assert.Equal(t, []string{"Corporate", "Retail"}, report.Labels)
	assert.Equal(t, []int64{2, 2}, report.ClaimCounts)
	assert.Equal(t, []float64{630, 90}, report.ApprovedAmounts)
	assert.Nil(t, report.ApprovalRates)
}

func TestChannelAnalysisRates(t *testing.T) {
	report := ChannelAnalysis(claimsView(t))

	assert.Equal(t, []string{"Agency", "Broker"}, report.Labels)
	require.Len(t, report.ApprovalRates, 2)
	assert.Equal(t, 50.0, report.ApprovalRates[0])
	assert.Equal(t, 100.0, report.ApprovalRates[1])
}

func TestYearlyComparison(t *testing.T) {
	report := YearlyComparison(claimsView(t))

	assert.Equal(t, []string{"2023"}, report.Labels)
	assert.Equal(t, []int64{4}, report.ClaimCounts)
	assert.Equal(t, []float64{720}, report.ApprovedAmounts)
}

func TestProductAnalysis(t *testing.T) {
	report := ProductAnalysis(claimsView(t), 10)

	// descending by approved sum
	assert.Equal(t, []string{"MediPlus", "MediCare"}, report.Labels)
	assert.Equal(t, []float64{630, 90}, report.ApprovedAmounts)

	top1 := ProductAnalysis(claimsView(t), 1)
	assert.Equal(t, []string{"MediPlus"}, top1.Labels)
}

func TestTopProviders(t *testing.T) {
	got := TopProviders(claimsView(t), 10)

	assert.Equal(t, []string{"Beta Hospital", "Alpha Clinic"}, got.Labels)
	assert.Equal(t, []float64{630, 90}, got.Values)
}

func TestTopProvidersMissingColumns(t *testing.T) {
	v := NewView(makeTable(t,
		newCategoricalColumn("CL_NO", []string{"C1"}),
	))
	got := TopProviders(v, 10)
	assert.Empty(t, got.Labels)
}

func TestStatusAndGenderDistributions(t *testing.T) {
	v := claimsView(t)

	statuses := StatusDistribution(v)
	assert.Equal(t, []string{"Accept", "Reject"}, statuses.Labels)
	assert.Equal(t, []float64{3, 1}, statuses.Values)

	genders := GenderDistribution(v)
	assert.ElementsMatch(t, []string{"M", "F"}, genders.Labels)
	assert.Equal(t, []float64{2, 2}, genders.Values)
}

func TestBenefitTypeAnalysis(t *testing.T) {
	got := BenefitTypeAnalysis(claimsView(t), 10)

	assert.Equal(t, []string{"Outpatient", "Inpatient"}, got.ByCount.Labels)
	assert.Equal(t, []float64{2, 2}, got.ByCount.Values)
	assert.Equal(t, []string{"Inpatient", "Outpatient"}, got.ByAmount.Labels)
	assert.Equal(t, []float64{630, 90}, got.ByAmount.Values)
}

func TestAgeDistribution(t *testing.T) {
	got := AgeDistribution(claimsView(t))

	assert.Equal(t, AgeBins.Labels, got.Labels)
	// ages 25, 35, 45, 70
	assert.Equal(t, []float64{0, 1, 1, 1, 0, 1}, got.Values)
}

func TestBuildDashboard(t *testing.T) {
	report := BuildDashboard(claimsView(t))

	assert.EqualValues(t, 4, report.KPI.TotalClaims)
	assert.Len(t, report.Trend.Labels, 3)
	assert.Len(t, report.Ages.Values, len(AgeBins.Labels))
	assert.NotEmpty(t, report.TopProviders.Labels)
}

func TestBuildDashboardFiltered(t *testing.T) {
	v := claimsView(t).Filter(NormalizeFilters(FilterSet{"business_units": {"Retail"}}))
	report := BuildDashboard(v)

	assert.EqualValues(t, 2, report.KPI.TotalClaims)
	assert.Equal(t, []string{"Retail"}, report.BusinessUnit.Labels)
	assert.Equal(t, 50.0, report.KPI.ApprovalRate)
}

func TestFilterOptions(t *testing.T) {
	options := FilterOptions(loadClaimsTable(t))

	assert.Equal(t, []string{"2023"}, options["years"])
	// statuses keep first-seen order
	assert.Equal(t, []string{"Accept", "Reject"}, options["statuses"])
	assert.Equal(t, []string{"Corporate", "Retail"}, options["business_units"])
	assert.Equal(t, []string{"MediCare", "MediPlus"}, options["products"])
	assert.Equal(t, []string{"Agency", "Broker"}, options["distribution_channels"])
}

func TestFilterOptionsProductCap(t *testing.T) {
	values := make([]string, maxProductOptions+5)
	for i := range values {
		values[i] = string(rune('a'+i%26)) + string(rune('0'+i/26))
	}
	table := makeTable(t, newCategoricalColumn("PRODUCT", values))

	options := FilterOptions(table)
	assert.Len(t, options["products"], maxProductOptions)
}
