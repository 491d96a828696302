package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"medfollow-client/pkg/events"

	"github.com/fatih/color"
)

var (
	urgentColor = color.New(color.FgRed, color.Bold)
	careColor   = color.New(color.FgYellow, color.Bold)
)

// PrintEvent writes one journal event as a single line. Escalations and care
// calls are highlighted.
func PrintEvent(w io.Writer, e events.Event) {
	c := dimColor
	switch e.EventType() {
	case events.TypeEmergencyEscalated:
		c = urgentColor
	case events.TypeCareCallRequested:
		c = careColor
	}

	payload := e.Payload()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, payload[k])
	}

	c.Fprintf(w, "%s %-20s", e.Timestamp().Format("15:04:05"), e.EventType())
	fmt.Fprintf(w, " %s\n", strings.Join(parts, " "))
}
