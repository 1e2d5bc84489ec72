package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/dayplan/internal/app"
	"github.com/josephgoksu/dayplan/internal/calendar"
	"github.com/josephgoksu/dayplan/internal/planner"
	"github.com/spf13/viper"
)

// errReported marks an error whose message was already shown to the user.
var errReported = errors.New("reported")

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// userMessage maps known errors to a short sentence.
func userMessage(err error) string {
	switch {
	case errors.Is(err, planner.ErrValidation):
		return fmt.Sprintf("Invalid input: %v", err)
	case errors.Is(err, planner.ErrTaskNotFound):
		return "Error: No task matches that id."
	case errors.Is(err, app.ErrAmbiguousID):
		return "Error: That id prefix matches more than one task. Use more characters."
	case errors.Is(err, calendar.ErrPlanNotLocked):
		return "Error: Lock the plan before publishing it (dayplan plan lock)."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
