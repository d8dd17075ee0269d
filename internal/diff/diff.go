// Package diff decides which probe outcomes warrant a notification by
// comparing them against the previous run's snapshot.
package diff

import "github.com/hamed0406/statuswatch/internal/domain"

// Detect compares outcomes against the prior snapshot and returns the
// transitions, in input order. Per outcome the logic is tri-state:
//
//   - no prior entry: silent if up, InitialDown if down. The asymmetry is
//     deliberate — an outage that predates any recorded state must not be
//     missed, while a healthy first run should not alert.
//   - prior entry equal to the current state: nothing.
//   - prior entry different: WentDown or Recovered.
func Detect(outcomes []domain.Outcome, prior domain.Snapshot) []domain.Transition {
	var ts []domain.Transition
	for _, o := range outcomes {
		prev, known := prior[o.Target.URL]
		switch {
		case !known:
			if !o.Up {
				ts = append(ts, domain.Transition{Outcome: o, PreviousUp: false, Kind: domain.InitialDown})
			}
		case prev == o.Up:
			// steady state
		case o.Up:
			ts = append(ts, domain.Transition{Outcome: o, PreviousUp: prev, Kind: domain.Recovered})
		default:
			ts = append(ts, domain.Transition{Outcome: o, PreviousUp: prev, Kind: domain.WentDown})
		}
	}
	return ts
}

// NextSnapshot builds the snapshot to persist after a run. It contains
// exactly the current outcomes; entries for removed or renamed targets are
// dropped.
func NextSnapshot(outcomes []domain.Outcome) domain.Snapshot {
	snap := make(domain.Snapshot, len(outcomes))
	for _, o := range outcomes {
		snap[o.Target.URL] = o.Up
	}
	return snap
}
