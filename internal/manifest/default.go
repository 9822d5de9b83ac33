package manifest

import (
	"fmt"

	"github.com/ceexam/qconv/internal/question"
)

// DefaultYears are the exam sittings covered by the built-in job list.
var DefaultYears = []int{34, 35}

// FileName returns the conventional source file name for a sitting, tier
// and session, e.g. 第34回_類似問題_初級_午前30問.md.
func FileName(year int, tier string, morning bool) string {
	return fmt.Sprintf("第%d回_類似問題_%s_%s30問.md", year, tier, Job{Morning: morning}.Session())
}

// Default returns the built-in job list, grouped by year, then tier from
// easiest to hardest, then morning before afternoon.
func Default() []Job {
	var jobs []Job
	for _, year := range DefaultYears {
		for _, tier := range question.Tiers() {
			for _, morning := range []bool{true, false} {
				jobs = append(jobs, Job{
					File:       FileName(year, tier, morning),
					Year:       year,
					Difficulty: tier,
					Morning:    morning,
				})
			}
		}
	}
	return jobs
}
