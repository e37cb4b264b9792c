package adapter

import (
	"testing"

	"github.com/amishk599/jobscout/internal/model"
)

func TestClassifyJobType(t *testing.T) {
	tests := []struct {
		text string
		want model.JobType
	}{
		{"Remote, Part-time", model.JobTypeRemote},
		{"Bengaluru (Hybrid)", model.JobTypeHybrid},
		{"Part time, Delhi", model.JobTypePartTime},
		{"part-time", model.JobTypePartTime},
		{"On-site in Berlin", model.JobTypeOnSite},
		{"ONSITE", model.JobTypeOnSite},
		{"Hybrid / Remote", model.JobTypeRemote},
		{"Remotely located team", model.JobTypeNotSpecified},
		{"Thiruvananthapuram, Kerala", model.JobTypeNotSpecified},
		{"", model.JobTypeNotSpecified},
	}

	for _, tc := range tests {
		if got := ClassifyJobType(tc.text); got != tc.want {
			t.Errorf("ClassifyJobType(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
