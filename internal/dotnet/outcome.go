package dotnet

import (
	"strconv"
	"strings"
)

// Outcome is the classification of a push attempt.
type Outcome int

const (
	// OutcomeUnknownFailure means neither a conflict nor a success was recognized.
	OutcomeUnknownFailure Outcome = iota
	// OutcomeSuccess means the registry accepted the package.
	OutcomeSuccess
	// OutcomeAlreadyPublished means the registry already holds this version.
	OutcomeAlreadyPublished
)

const (
	// conflictIndicator is the HTTP status nuget.org answers for a duplicate version.
	conflictIndicator = "409"
	// successIndicator is printed by dotnet nuget push after a 201 response.
	successIndicator = "Created"
)

// Classify inspects push output. A conflict wins over a success marker.
func Classify(output string) Outcome {
	switch {
	case strings.Contains(output, conflictIndicator):
		return OutcomeAlreadyPublished
	case strings.Contains(output, successIndicator):
		return OutcomeSuccess
	default:
		return OutcomeUnknownFailure
	}
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeAlreadyPublished:
		return "already published"
	case OutcomeUnknownFailure:
		return "unknown failure"
	default:
		return "outcome(" + strconv.Itoa(int(o)) + ")"
	}
}
