// Command timefmt renders epoch instants and durations from the command
// line with the same formatter the timefmtd service uses.
//
//	timefmt format 1704469500000
//	timefmt --locale fr-FR calendar 1704383100000
//	timefmt duration human 3661000
package main

import (
	"os"

	"github.com/metacatalog/timefmt/internal/domain"
)

func main() {
	if err := newRootCmd(domain.RealClock{}).Execute(); err != nil {
		os.Exit(1)
	}
}
