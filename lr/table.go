package lr

import (
	"sort"
	"strconv"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/vnlex/lex"
)

// NodeJump is an entry in a State's sorted node-jump array: after reducing
// to non-terminal NonTerminalID, the state on top of the stack transitions
// to Target.
type NodeJump struct {
	NonTerminalID uint32
	Target        int
}

// TokenJump is an entry in a State's sorted token-jump array, keyed by
// (Kind, optional ID). Either target may be absent; FollowedTarget applies
// only when the shifted token's Followed flag is true.
type TokenJump struct {
	Kind  lex.Kind
	HasID bool
	ID    uint32

	HasFollowedTarget    bool
	FollowedTarget       int
	HasNotFollowedTarget bool
	NotFollowedTarget    int
}

func (tj TokenJump) less(other TokenJump) bool {
	if tj.Kind != other.Kind {
		return tj.Kind < other.Kind
	}
	if tj.HasID != other.HasID {
		return !tj.HasID
	}
	return tj.ID < other.ID
}

func (tj TokenJump) matches(kind lex.Kind, id uint32, hasID bool) bool {
	if tj.Kind != kind || tj.HasID != hasID {
		return false
	}
	return !hasID || tj.ID == id
}

// Reduction names the action taken when a state's input is exhausted of
// shifts: pop PopCount frames, build a Node via Build, and push it looked up
// through the new top state's node-jump table on NonTerminalID. NonTerminalID
// 0 denotes the synthetic accept production.
type Reduction[T any] struct {
	NonTerminalID   uint32
	NonTerminalName string
	ProductionIndex int
	PopCount        int
	Build           func(popped []*Node[T]) *Node[T]
}

// State is one row of the generated table: its outgoing jumps plus at most
// one reduction.
type State[T any] struct {
	NodeJumps  []NodeJump
	TokenJumps []TokenJump
	Reduction  *Reduction[T]
}

// shift returns the target state for tok, or (0, false) if no TokenJump
// matches.
func (s *State[T]) shift(tok lex.Token[T]) (int, bool) {
	hasID := tok.Kind == lex.KindKeyword || tok.Kind == lex.KindSymbol
	idx := sort.Search(len(s.TokenJumps), func(i int) bool {
		return !s.TokenJumps[i].less(TokenJump{Kind: tok.Kind, HasID: hasID, ID: tok.Data.ID})
	})
	if idx >= len(s.TokenJumps) || !s.TokenJumps[idx].matches(tok.Kind, tok.Data.ID, hasID) {
		return 0, false
	}
	tj := s.TokenJumps[idx]
	if tok.Followed && tj.HasFollowedTarget {
		return tj.FollowedTarget, true
	}
	if tj.HasNotFollowedTarget {
		return tj.NotFollowedTarget, true
	}
	return 0, false
}

// gotoNode returns the target state after reducing to non-terminal id.
func (s *State[T]) gotoNode(id uint32) (int, bool) {
	idx := sort.Search(len(s.NodeJumps), func(i int) bool { return s.NodeJumps[i].NonTerminalID >= id })
	if idx >= len(s.NodeJumps) || s.NodeJumps[idx].NonTerminalID != id {
		return 0, false
	}
	return s.NodeJumps[idx].Target, true
}

// Table is the complete generated state table for a grammar,
// plus the entry state index assigned to each declared root.
type Table[T any] struct {
	States      []State[T]
	EntryStates map[string]int
}

// DebugString renders the table as a sequence of per-state jump/reduction
// listings, using rosed's table layout for debug output.
func (t *Table[T]) DebugString() string {
	var sb []byte
	for i, st := range t.States {
		data := [][]string{{"KIND", "ID", "FOLLOWED->", "NOT-FOLLOWED->"}}
		for _, tj := range st.TokenJumps {
			id := "-"
			if tj.HasID {
				id = sprintUint(tj.ID)
			}
			ft, nft := "-", "-"
			if tj.HasFollowedTarget {
				ft = sprintInt(tj.FollowedTarget)
			}
			if tj.HasNotFollowedTarget {
				nft = sprintInt(tj.NotFollowedTarget)
			}
			data = append(data, []string{tj.Kind.String(), id, ft, nft})
		}
		for _, nj := range st.NodeJumps {
			data = append(data, []string{"goto(" + sprintUint(nj.NonTerminalID) + ")", "-", sprintInt(nj.Target), "-"})
		}
		header := "STATE " + sprintInt(i)
		if st.Reduction != nil {
			header += " reduce " + st.Reduction.NonTerminalName
		}
		rendered := rosed.Edit(header + "\n").
			InsertTableOpts(0, data, 20, rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}).
			String()
		sb = append(sb, []byte(rendered+"\n")...)
	}
	return string(sb)
}

func sprintInt(v int) string     { return strconv.Itoa(v) }
func sprintUint(v uint32) string { return strconv.FormatUint(uint64(v), 10) }
