package urgency

import (
	"strings"

	"golang.org/x/text/cases"
)

var fold = cases.Fold()

func normalize(s string) string {
	return fold.String(strings.TrimSpace(s))
}
