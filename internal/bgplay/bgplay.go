// Package bgplay builds links to the RIPEstat BGPlay widget, the
// interactive routing-history view referenced from alert emails.
package bgplay

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	baseURL = "https://stat.ripe.net/widget/bgplay"

	// lookback widens the window so the routing state preceding the
	// event is visible in the player.
	lookback = 5 * time.Minute
)

// DefaultRRCs is the default set of RIS route collectors queried.
var DefaultRRCs = []int{0, 1, 2, 5, 6, 7, 10, 11, 13, 14, 15, 16, 18, 20}

// Link builds the BGPlay URL for a prefix and time window. All times
// are converted to UTC Unix seconds, so the result does not depend on
// the local time zone. The widget expects its parameters after a
// fragment separator rather than a query one.
func Link(prefix string, start, end time.Time, rrcs []int) string {
	if len(rrcs) == 0 {
		rrcs = DefaultRRCs
	}
	joined := make([]string, len(rrcs))
	for i, rrc := range rrcs {
		joined[i] = strconv.Itoa(rrc)
	}

	params := []string{
		"w.resource=" + url.QueryEscape(prefix),
		"w.ignoreReannouncements=true",
		fmt.Sprintf("w.starttime=%d", start.UTC().Unix()-int64(lookback.Seconds())),
		fmt.Sprintf("w.endtime=%d", end.UTC().Unix()),
		"w.rrcs=" + url.QueryEscape(strings.Join(joined, ",")),
		"w.type=bgp",
	}
	return baseURL + "#" + strings.Join(params, "&")
}
