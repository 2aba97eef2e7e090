// Command dpcalc runs the payroll, tax and termination calculators from the
// command line and prints the results as JSON.
package main

import (
	"errors"
	"fmt"
	"os"

	"brecho/internal/domain/tax"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var verr *tax.ValidationError
		if errors.As(err, &verr) {
			for _, issue := range verr.Issues {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", issue.Field, issue.Reason)
			}
		}
		os.Exit(1)
	}
}
