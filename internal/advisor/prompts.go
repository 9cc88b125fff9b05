package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/j-veylop/gig-worker-hub/internal/analytics"
	"github.com/j-veylop/gig-worker-hub/internal/ingest"
	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// sampleRows is how many leading records are quoted in the report prompt.
const sampleRows = 5

// RecommendationsPrompt builds the performance report prompt for rs.
func RecommendationsPrompt(now time.Time, rs *models.RecordSet) string {
	summary := analytics.Summarize(rs)

	var b strings.Builder
	b.WriteString("As a gig economy expert, create a comprehensive performance report for a gig worker.\n\n")
	fmt.Fprintf(&b, "Current Date: %s\n", now.Format("January 02, 2006"))
	b.WriteString("Data Sample:\n")
	b.WriteString(dataSample(rs))
	b.WriteString("\n\n")
	b.WriteString(`Format your response as a formal business report with these sections:

# Gig Work Performance Analysis Report

## Executive Summary
- Overall performance rating (1-5 stars)
- Key achievements
- Growth potential

## Performance Metrics
`)
	fmt.Fprintf(&b, "- Hourly earnings: $%s\n", summary.HourlyRate.StringFixed(2))
	b.WriteString(`- Efficiency metrics
- Platform comparisons

## Optimal Strategy Analysis
### Best Performing Days
- Detailed day-by-day analysis
- Expected earnings potential

### Peak Time Windows
- Hourly breakdown of profitability
- Platform-specific recommendations

## Action Plan
1. Primary recommendation with ROI estimate
2. Secondary recommendation
3. Risk mitigation strategies

## Future Projections
- 30-day earnings forecast
- Growth opportunities
- Sustainability considerations

Use professional business language with data-driven insights. Include specific numbers and percentages where possible.`)

	return b.String()
}

// QuestionPrompt wraps a free-form question.
func QuestionPrompt(question string) string {
	return fmt.Sprintf(`As a gig economy professor, answer with academic rigor:

Question: %s

Structure your response with:

### Thesis Statement
[Core argument]

### Supporting Data
- Statistic 1 with source
- Statistic 2 with source

### Case Studies
1. Relevant example 1
2. Relevant example 2

### Implementation Strategy
- Step-by-step action plan
- Expected outcomes

### References
- Academic sources
- Industry reports`, strings.TrimSpace(question))
}

// dataSample renders the first rows of rs as a plain text table.
func dataSample(rs *models.RecordSet) string {
	head := rs.Head(sampleRows)
	if len(head) == 0 {
		return "(no rows)"
	}
	return ingest.Frame(head).String()
}
