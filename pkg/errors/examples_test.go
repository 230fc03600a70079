package errors_test

import (
	"fmt"

	"github.com/agentstation/langgarden/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := errors.NewNotFoundError("page", "Klingon_language")

	if errors.IsNoContent(err) {
		fmt.Println("No page, skipping entry")
	}

	// Output: No page, skipping entry
}

// Example_aPIError demonstrates classifying an external API failure.
func Example_aPIError() {
	err := &errors.APIError{
		Source:     "elevenlabs",
		Endpoint:   "https://api.elevenlabs.io/v1/shared-voices",
		StatusCode: 429,
		Message:    "too many requests",
	}

	switch {
	case errors.IsRateLimited(err):
		fmt.Println("Rate limited - stop paging")
	case errors.IsSourceUnavailable(err):
		fmt.Println("Source down")
	}

	// Output: Rate limited - stop paging
}

// Example_fatal shows which errors abort a run.
func Example_fatal() {
	perEntry := errors.NewTimeoutError("resolve", "10s", "Basque")
	startup := errors.NewConfigError("images", "GOOGLE_CSE_ID is not set", errors.ErrAPIKeyRequired)

	fmt.Println(errors.IsFatal(perEntry))
	fmt.Println(errors.IsFatal(startup))

	// Output:
	// false
	// true
}
