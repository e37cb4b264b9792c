package adapter

import (
	"regexp"

	"github.com/amishk599/jobscout/internal/model"
)

// jobTypeRules are checked in order; the first match wins.
var jobTypeRules = []struct {
	re      *regexp.Regexp
	jobType model.JobType
}{
	{regexp.MustCompile(`(?i)\bremote\b`), model.JobTypeRemote},
	{regexp.MustCompile(`(?i)\bhybrid\b`), model.JobTypeHybrid},
	{regexp.MustCompile(`(?i)\bpart[- ]time\b`), model.JobTypePartTime},
	{regexp.MustCompile(`(?i)\bon-?site\b`), model.JobTypeOnSite},
}

// ClassifyJobType derives a job type from free text such as a location or tag list.
func ClassifyJobType(text string) model.JobType {
	for _, r := range jobTypeRules {
		if r.re.MatchString(text) {
			return r.jobType
		}
	}
	return model.JobTypeNotSpecified
}
