package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightRules_Individually(t *testing.T) {
	tests := []struct {
		answers  AnswerMap
		title    string
		severity Severity
	}{
		{AnswerMap{AnswerSystemAge: "16+"}, "Your system is past its expected lifespan", SeverityHigh},
		{AnswerMap{AnswerSystemAge: "11-15"}, "Your system is nearing the end of its life", SeverityMedium},
		{AnswerMap{AnswerLastMaintenance: "never"}, "Lack of maintenance reduces system life", SeverityMedium},
		{AnswerMap{AnswerLastMaintenance: "2+yr"}, "Lack of maintenance reduces system life", SeverityMedium},
		{AnswerMap{AnswerComfort: "both"}, "Comfort problems indicate system issues", SeverityHigh},
		{AnswerMap{AnswerComfort: "hot_summer"}, "Comfort problems indicate system issues", SeverityMedium},
		{AnswerMap{AnswerComfort: "inconsistent"}, "Comfort problems indicate system issues", SeverityMedium},
		{AnswerMap{AnswerEnergyBills: "significant"}, "High energy bills mean lost money", SeverityMedium},
		{AnswerMap{AnswerIssues: "not_working"}, "System failure requires immediate attention", SeverityHigh},
		{AnswerMap{AnswerIssues: "leaks"}, "Leaks can cause serious damage", SeverityHigh},
		{AnswerMap{AnswerIssues: "smells"}, "Strange smells can indicate safety issues", SeverityHigh},
		{AnswerMap{AnswerIssues: "noises"}, "Unusual behavior means something is wrong", SeverityMedium},
		{AnswerMap{AnswerIssues: "cycling"}, "Unusual behavior means something is wrong", SeverityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.title+"/"+string(tt.severity), func(t *testing.T) {
			insights := GenerateInsights(comfortable(tt.answers))
			require.Len(t, insights, 1)
			assert.Equal(t, tt.title, insights[0].Title)
			assert.Equal(t, tt.severity, insights[0].Severity)
			assert.NotEmpty(t, insights[0].Description)
		})
	}
}

func TestInsightRules_NoFire(t *testing.T) {
	for _, answers := range []AnswerMap{
		{AnswerSystemAge: "6-10"},
		{AnswerLastMaintenance: "1-2yr"},
		{AnswerComfort: "yes"},
		{AnswerEnergyBills: "slight"},
		{AnswerIssues: "no"},
	} {
		assert.Empty(t, GenerateInsights(comfortable(answers)))
	}
}

func TestInsightRules_UnansweredComfort(t *testing.T) {
	for _, answers := range []AnswerMap{nil, {}, {AnswerSystemAge: "0-5"}} {
		insights := GenerateInsights(answers)
		require.Len(t, insights, 1)
		assert.Equal(t, "Comfort problems indicate system issues", insights[0].Title)
		assert.Equal(t, SeverityMedium, insights[0].Severity)
	}
}

// comfortable fills in a "yes" comfort answer so other rules can be checked alone
func comfortable(answers AnswerMap) AnswerMap {
	out := AnswerMap{AnswerComfort: "yes"}
	for k, v := range answers {
		out[k] = v
	}
	return out
}

func TestGenerateInsights_SortedAndCapped(t *testing.T) {
	insights := GenerateInsights(AnswerMap{
		AnswerSystemAge:       "11-15",
		AnswerLastMaintenance: "never",
		AnswerComfort:         "cold_winter",
		AnswerEnergyBills:     "significant",
		AnswerIssues:          "smells",
	})

	require.Len(t, insights, MaxInsights)
	assert.Equal(t, SeverityHigh, insights[0].Severity)
	assert.Equal(t, "Strange smells can indicate safety issues", insights[0].Title)
	// mediums keep rule order after the high
	assert.Equal(t, "Your system is nearing the end of its life", insights[1].Title)
	assert.Equal(t, "Lack of maintenance reduces system life", insights[2].Title)

	for i := 1; i < len(insights); i++ {
		assert.GreaterOrEqual(t, insights[i-1].Severity.Rank(), insights[i].Severity.Rank())
	}
}

func TestApplyRules_CustomRules(t *testing.T) {
	rules := []InsightRule{
		{Name: "low", Title: "L", Match: when(SeverityLow, func(AnswerMap) bool { return true })},
		{Name: "never", Title: "N", Match: when(SeverityHigh, func(AnswerMap) bool { return false })},
		{Name: "med", Title: "M", Match: when(SeverityMedium, func(AnswerMap) bool { return true })},
	}

	insights := ApplyRules(rules, AnswerMap{}, 5)
	require.Len(t, insights, 2)
	assert.Equal(t, "M", insights[0].Title)
	assert.Equal(t, "L", insights[1].Title)

	assert.Len(t, ApplyRules(rules, AnswerMap{}, 1), 1)
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 3, SeverityHigh.Rank())
	assert.Equal(t, 2, SeverityMedium.Rank())
	assert.Equal(t, 1, SeverityLow.Rank())
	assert.Equal(t, 0, Severity("unknown").Rank())
}
