package adapter

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/amishk599/jobscout/internal/model"
)

// Board names as used in the sites list of the config file.
const (
	BoardLinkedIn      = "linkedin"
	BoardIndeed        = "indeed"
	BoardInternshala   = "internshala"
	BoardNaukri        = "naukri"
	BoardAIJobs        = "ai-jobs.net"
	BoardHuggingFace   = "huggingface"
	BoardAcademicKeys  = "academickeys"
	BoardGitHub        = "github"
	BoardYCombinator   = "ycombinator"
	BoardGoogleCareers = "google_careers"
	BoardResearchGate  = "research_gate"
)

// KnownBoards lists every supported board in a stable order.
var KnownBoards = []string{
	BoardLinkedIn,
	BoardIndeed,
	BoardInternshala,
	BoardNaukri,
	BoardAIJobs,
	BoardHuggingFace,
	BoardAcademicKeys,
	BoardGitHub,
	BoardYCombinator,
	BoardGoogleCareers,
	BoardResearchGate,
}

// DefaultBoards are enabled when the config does not list any sites.
var DefaultBoards = []string{
	BoardLinkedIn,
	BoardIndeed,
	BoardInternshala,
	BoardNaukri,
	BoardAIJobs,
	BoardHuggingFace,
	BoardAcademicKeys,
}

// Options carries the per-candidate settings some boards need.
type Options struct {
	Location string // Naukri search location; DefaultNaukriLocation when empty
}

// New creates the board registered under name. ok is false for unknown names.
func New(name string, client *http.Client, opts Options, logger *slog.Logger) (model.Board, bool) {
	logger = logger.With("board", name)
	switch name {
	case BoardLinkedIn:
		return NewLinkedInAdapter(client, logger), true
	case BoardIndeed:
		return NewIndeedAdapter(client, logger), true
	case BoardInternshala:
		return NewInternshalaAdapter(client, logger), true
	case BoardNaukri:
		loc := opts.Location
		if loc == "" {
			loc = DefaultNaukriLocation
		}
		return NewNaukriAdapter(loc, client, logger), true
	case BoardAIJobs:
		return NewAIJobsAdapter(client, logger), true
	case BoardHuggingFace:
		return NewHuggingFaceAdapter(client, logger), true
	case BoardAcademicKeys:
		return NewAcademicKeysAdapter(client, logger), true
	case BoardGitHub:
		return NewGitHubJobsAdapter(client, logger), true
	case BoardYCombinator:
		return NewYCombinatorAdapter(client, logger), true
	case BoardGoogleCareers:
		return NewGoogleCareersAdapter(client, logger), true
	case BoardResearchGate:
		return NewResearchGateAdapter(client, logger), true
	default:
		return nil, false
	}
}

// IsKnown reports whether name is a supported board.
func IsKnown(name string) bool {
	return slices.Contains(KnownBoards, name)
}
