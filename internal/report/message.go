package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/hamed0406/statuswatch/internal/domain"
)

// BuildChanges renders the change-only notification: recovered targets first,
// then downed ones. Returns "" when there is nothing to say.
func BuildChanges(transitions []domain.Transition) string {
	if len(transitions) == 0 {
		return ""
	}

	var recovered, down []string
	for _, tr := range transitions {
		switch tr.Kind {
		case domain.Recovered:
			recovered = append(recovered, "• "+recoveredLine(tr.Outcome))
		case domain.WentDown:
			down = append(down, "• "+downLine(tr.Outcome)+" (was up)")
		case domain.InitialDown:
			down = append(down, "• "+downLine(tr.Outcome)+" (no prior state)")
		}
	}

	var b strings.Builder
	if len(recovered) > 0 {
		b.WriteString("🟢 Recovered\n")
		b.WriteString(strings.Join(recovered, "\n"))
		b.WriteString("\n")
	}
	if len(down) > 0 {
		b.WriteString("🔴 Went down\n")
		b.WriteString(strings.Join(down, "\n"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildFull renders the full status report: every target, up group first,
// with the run timestamp and total duration.
func BuildFull(outcomes []domain.Outcome, startedAt time.Time, elapsed time.Duration) string {
	var up, down []string
	for _, o := range outcomes {
		if o.Up {
			up = append(up, "• "+recoveredLine(o))
		} else {
			down = append(down, "• "+downLine(o))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Status report %s (run took %s)\n",
		startedAt.UTC().Format(time.RFC3339), elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "🟢 Up (%d)\n", len(up))
	if len(up) > 0 {
		b.WriteString(strings.Join(up, "\n"))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "🔴 Down (%d)\n", len(down))
	if len(down) > 0 {
		b.WriteString(strings.Join(down, "\n"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func recoveredLine(o domain.Outcome) string {
	lat := "n/a"
	if o.LatencyMS != nil {
		lat = fmt.Sprintf("%.0f ms", *o.LatencyMS)
	}
	line := fmt.Sprintf("%s (%s): HTTP %d, %s", o.Target.Name, o.Target.URL, o.HTTPStatus, lat)
	if o.Slow {
		line += " ⚠ slow"
	}
	return line
}

func downLine(o domain.Outcome) string {
	status := "n/a"
	if o.HTTPStatus != 0 {
		status = fmt.Sprintf("%d", o.HTTPStatus)
	}
	line := fmt.Sprintf("%s (%s): HTTP %s", o.Target.Name, o.Target.URL, status)
	if o.Reason != "" {
		line += ", " + o.Reason
	}
	if o.DNSClass != "" {
		line += " [DNS: " + o.DNSClass + "]"
	}
	return line
}
