// Package merge reconciles an incoming credential set with the resident one.
//
// Collisions are computed before anything is written, so the operator can
// abort without touching the resident store. Resolve consumes the incoming
// store: it is always empty when Resolve returns.
package merge

import (
	"fmt"

	"github.com/illarion/passkeep/internal/vault"
)

// Way is the top-level answer to a set of collisions
type Way int

const (
	WayOld   Way = iota // Keep every resident value, add only new keys
	WayNew              // Incoming values win for every collision
	WayMerge            // Ask for each colliding key
	WayAbort            // Reject the whole import
)

func (w Way) String() string {
	switch w {
	case WayOld:
		return "old"
	case WayNew:
		return "new"
	case WayMerge:
		return "merge"
	case WayAbort:
		return "abort"
	default:
		return fmt.Sprintf("Way(%d)", int(w))
	}
}

// Pick is the per-key answer on the merge path
type Pick int

const (
	PickOld Pick = iota
	PickNew
)

// Outcome is the terminal state of a resolution
type Outcome int

const (
	OutcomeNoCollision Outcome = iota
	OutcomeAborted
	OutcomeResidentWins
	OutcomeIncomingWins
	OutcomePerKeyResolved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoCollision:
		return "no collision"
	case OutcomeAborted:
		return "aborted"
	case OutcomeResidentWins:
		return "resident values kept"
	case OutcomeIncomingWins:
		return "incoming values applied"
	case OutcomePerKeyResolved:
		return "resolved per key"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Operator answers collision questions. Implementations validate the
// operator's input themselves and only return well-formed answers.
type Operator interface {
	ChooseWay(collisions []string) (Way, error)
	ChooseValue(key, resident, incoming string) (Pick, error)
}

// Result describes what a resolution did to the resident store
type Result struct {
	Outcome    Outcome
	Collisions []string // Keys present in both stores, sorted
	Added      []string // Keys that did not exist before
	Replaced   []string // Keys whose resident value changed
}

// Collisions returns the sorted keys present in both stores
func Collisions(resident, incoming vault.Store) []string {
	var keys []string
	for _, key := range incoming.Keys() {
		if _, ok := resident[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// Resolve merges incoming into resident, asking op only when keys collide.
// On error or abort the resident store is left exactly as it was.
func Resolve(resident, incoming vault.Store, op Operator) (*Result, error) {
	defer incoming.Reset()

	result := &Result{Collisions: Collisions(resident, incoming)}

	if len(result.Collisions) == 0 {
		result.Outcome = OutcomeNoCollision
		apply(resident, incoming, result)
		return result, nil
	}

	way, err := op.ChooseWay(result.Collisions)
	if err != nil {
		return nil, err
	}

	staged := vault.New()
	switch way {
	case WayAbort:
		result.Outcome = OutcomeAborted
		return result, nil

	case WayOld:
		result.Outcome = OutcomeResidentWins
		for key, value := range incoming {
			if _, ok := resident[key]; !ok {
				staged[key] = value
			}
		}

	case WayNew:
		result.Outcome = OutcomeIncomingWins
		for key, value := range incoming {
			staged[key] = value
		}

	case WayMerge:
		result.Outcome = OutcomePerKeyResolved
		// Ask about every existing key in order, even when both values
		// agree. Commit only after every answer is in.
		for _, key := range incoming.Keys() {
			value := incoming[key]
			old, ok := resident[key]
			if !ok {
				staged[key] = value
				continue
			}
			pick, err := op.ChooseValue(key, old, value)
			if err != nil {
				return nil, err
			}
			if pick == PickNew {
				staged[key] = value
			}
		}

	default:
		return nil, fmt.Errorf("unknown resolution %v", way)
	}

	apply(resident, staged, result)
	return result, nil
}

// apply copies staged entries into resident and records the effect
func apply(resident, staged vault.Store, result *Result) {
	for _, key := range staged.Keys() {
		value := staged[key]
		old, ok := resident[key]
		switch {
		case !ok:
			result.Added = append(result.Added, key)
		case old != value:
			result.Replaced = append(result.Replaced, key)
		default:
			continue
		}
		resident[key] = value
	}
}

// FixedOperator answers every question the same way without interaction
type FixedOperator struct {
	Way  Way
	Pick Pick
}

func (f FixedOperator) ChooseWay([]string) (Way, error) {
	return f.Way, nil
}

func (f FixedOperator) ChooseValue(string, string, string) (Pick, error) {
	return f.Pick, nil
}
