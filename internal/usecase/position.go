package usecase

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Pushkar3232/SitePilot-sub001/internal/domain"
	"github.com/Pushkar3232/SitePilot-sub001/internal/pkg/orderkey"
)

// PositionKind enumerates where in a sibling set an entity should land.
type PositionKind int

const (
	PositionStart PositionKind = iota
	PositionEnd
	PositionBefore
	PositionAfter
)

// Position describes a caller-requested placement within a sibling set.
type Position struct {
	Kind    PositionKind
	Sibling uuid.UUID
}

// AtStart positions the entity before every current sibling.
func AtStart() Position { return Position{Kind: PositionStart} }

// AtEnd positions the entity after every current sibling.
func AtEnd() Position { return Position{Kind: PositionEnd} }

// Before positions the entity immediately before the named sibling.
func Before(sibling uuid.UUID) Position {
	return Position{Kind: PositionBefore, Sibling: sibling}
}

// After positions the entity immediately after the named sibling.
func After(sibling uuid.UUID) Position {
	return Position{Kind: PositionAfter, Sibling: sibling}
}

// sibling is the (id, order key) projection of one member of a sibling set,
// shared by the page and component services.
type sibling struct {
	ID  uuid.UUID
	Key string
}

// resolveGap turns a Position into the (lo, hi) neighbor-key pair a new key
// must fall between. ordered must be sorted ascending by key. moving, when
// not uuid.Nil, is the entity being repositioned: it is excluded from the
// neighbor scan so an entity can be moved next to its current position.
func resolveGap(ordered []sibling, pos Position, moving uuid.UUID) (lo, hi string, err error) {
	rest := ordered
	if moving != uuid.Nil {
		rest = make([]sibling, 0, len(ordered))
		for _, s := range ordered {
			if s.ID != moving {
				rest = append(rest, s)
			}
		}
	}

	switch pos.Kind {
	case PositionStart:
		if len(rest) > 0 {
			hi = rest[0].Key
		}
		return "", hi, nil
	case PositionEnd:
		if len(rest) > 0 {
			lo = rest[len(rest)-1].Key
		}
		return lo, "", nil
	case PositionBefore, PositionAfter:
		if moving != uuid.Nil && pos.Sibling == moving {
			return "", "", domain.ErrSelfReferential
		}
		at := -1
		for i, s := range rest {
			if s.ID == pos.Sibling {
				at = i
				break
			}
		}
		if at < 0 {
			return "", "", domain.ErrSiblingNotFound
		}
		if pos.Kind == PositionBefore {
			if at > 0 {
				lo = rest[at-1].Key
			}
			return lo, rest[at].Key, nil
		}
		if at < len(rest)-1 {
			hi = rest[at+1].Key
		}
		return rest[at].Key, hi, nil
	default:
		return "", "", fmt.Errorf("unknown position kind %d", pos.Kind)
	}
}

// keyAssign is one planned key rewrite produced by planReorder.
type keyAssign struct {
	ID  uuid.UUID
	Key string
}

// planReorder computes the key rewrites needed to realize the desired sibling
// order. desired must be a permutation of the current sibling set. Entities
// forming the longest run already in relative order keep their keys, so a
// drag-and-drop drop touches only rows whose relative position actually
// changed.
func planReorder(current []sibling, desired []uuid.UUID) ([]keyAssign, error) {
	if len(desired) != len(current) {
		return nil, domain.ErrSiblingNotFound
	}

	byID := make(map[uuid.UUID]sibling, len(current))
	for _, s := range current {
		byID[s.ID] = s
	}

	seq := make([]sibling, len(desired))
	seen := make(map[uuid.UUID]bool, len(desired))
	for i, id := range desired {
		s, ok := byID[id]
		if !ok || seen[id] {
			return nil, domain.ErrSiblingNotFound
		}
		seen[id] = true
		seq[i] = s
	}

	keep := longestOrderedRun(seq)

	var plan []keyAssign
	lo := ""
	for i := 0; i < len(seq); {
		if keep[i] {
			lo = seq[i].Key
			i++
			continue
		}
		// Find the next kept entity; its key bounds this run from above.
		j := i
		for j < len(seq) && !keep[j] {
			j++
		}
		hi := ""
		if j < len(seq) {
			hi = seq[j].Key
		}
		for ; i < j; i++ {
			key, err := orderkey.Between(lo, hi)
			if err != nil {
				return nil, fmt.Errorf("compute key for reorder: %w", err)
			}
			plan = append(plan, keyAssign{ID: seq[i].ID, Key: key})
			lo = key
		}
	}
	return plan, nil
}

// longestOrderedRun marks the entities of a longest strictly increasing
// subsequence of seq's keys. Everything marked keeps its key; everything else
// is rewritten between the marked anchors.
func longestOrderedRun(seq []sibling) []bool {
	n := len(seq)
	keep := make([]bool, n)
	if n == 0 {
		return keep
	}

	length := make([]int, n)
	prev := make([]int, n)
	best := 0
	for i := 0; i < n; i++ {
		length[i] = 1
		prev[i] = -1
		for j := 0; j < i; j++ {
			if orderkey.Compare(seq[j].Key, seq[i].Key) < 0 && length[j]+1 > length[i] {
				length[i] = length[j] + 1
				prev[i] = j
			}
		}
		if length[i] > length[best] {
			best = i
		}
	}
	for i := best; i >= 0; i = prev[i] {
		keep[i] = true
	}
	return keep
}
