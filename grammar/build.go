package grammar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/vnlex/lex"
	"github.com/dekarrin/vnlex/lr"
)

// lrItem is a (production, dotted position, inherited instance set) triple.
type lrItem struct {
	prod      *Production
	dot       int
	inherited *InstanceSet
}

func (it lrItem) key() string {
	return fmt.Sprintf("%p|%d|%s", it.prod, it.dot, it.inherited.Key())
}

func (it lrItem) atEnd() bool { return it.dot >= len(it.prod.Items) }

func (it lrItem) symbol() Item { return it.prod.Items[it.dot] }

type symKind int

const (
	symTerminal symKind = iota
	symNonTerminal
)

type symKey struct {
	kind           symKind
	ref            string // TerminalRef.key() or non-terminal name
	requireFollows bool   // meaningful only for symTerminal
}

func itemSymKey(it Item) symKey {
	if it.Kind == ItemTerminal {
		return symKey{kind: symTerminal, ref: it.Terminal.key(), requireFollows: it.RequireFollows}
	}
	return symKey{kind: symNonTerminal, ref: it.NonTerminal}
}

type buildState struct {
	kernel  []lrItem
	closure []lrItem
}

func kernelKey(items []lrItem) string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.key()
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x1e")
}

// Build performs canonical-LR(1)-less (effectively LALR-style) closure/goto
// construction over a finalized Description, producing the generated state
// table. T is the custom tokenizer payload type carried through the parse.
func Build[T any](desc *Description) (*lr.Table[T], error) {
	b := &tableBuilder[T]{desc: desc, stateIndex: make(map[string]int)}
	return b.run()
}

type tableBuilder[T any] struct {
	desc       *Description
	states     []buildState
	stateIndex map[string]int
}

func (b *tableBuilder[T]) stateFor(kernel []lrItem) int {
	key := kernelKey(kernel)
	if idx, ok := b.stateIndex[key]; ok {
		return idx
	}
	idx := len(b.states)
	b.states = append(b.states, buildState{kernel: kernel})
	b.stateIndex[key] = idx
	return idx
}

func (b *tableBuilder[T]) run() (*lr.Table[T], error) {
	table := &lr.Table[T]{EntryStates: make(map[string]int)}

	for _, name := range b.desc.EntryNames {
		root := &NonTerminal{Name: "#accept:" + name, ID: 0}
		synth := &Production{Owner: root, Items: []Item{{Kind: ItemNonTerminal, NonTerminal: name}}, RealCount: 1}
		kernel := []lrItem{{prod: synth, dot: 0}}
		idx := b.stateFor(kernel)
		table.EntryStates[name] = idx
	}

	// BFS over states; b.states grows as new targets are discovered.
	for i := 0; i < len(b.states); i++ {
		if err := b.processState(i); err != nil {
			return nil, err
		}
	}

	table.States = make([]lr.State[T], len(b.states))
	for i, st := range b.states {
		lrState, err := b.emitState(i, st)
		if err != nil {
			return nil, err
		}
		table.States[i] = lrState
	}
	return table, nil
}

func (b *tableBuilder[T]) closureOf(kernel []lrItem) []lrItem {
	seen := make(map[string]bool)
	var out []lrItem
	var worklist []lrItem
	add := func(it lrItem) {
		k := it.key()
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, it)
		worklist = append(worklist, it)
	}
	for _, it := range kernel {
		add(it)
	}
	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]
		if it.atEnd() {
			continue
		}
		sym := it.symbol()
		if sym.Kind != ItemNonTerminal {
			continue
		}
		nt, ok := b.desc.NonTerminals[sym.NonTerminal]
		if !ok {
			continue // already reported as a missing symbol by Finalize
		}
		childSet := sym.SetBuilder.Build(b.desc.Interner, it.inherited)
		for _, p := range nt.Productions {
			if !p.Guard.Evaluate(childSet) {
				continue
			}
			add(lrItem{prod: p, dot: 0, inherited: childSet})
		}
	}
	return out
}

// processState computes and caches the closure for state i and discovers
// (and enqueues) its goto targets.
func (b *tableBuilder[T]) processState(i int) error {
	b.states[i].closure = b.closureOf(b.states[i].kernel)
	grouped := make(map[symKey][]lrItem)
	for _, it := range b.states[i].closure {
		if it.atEnd() {
			continue
		}
		key := itemSymKey(it.symbol())
		shifted := lrItem{prod: it.prod, dot: it.dot + 1, inherited: it.inherited}
		grouped[key] = append(grouped[key], shifted)
	}
	for _, kernel := range grouped {
		b.stateFor(kernel) // ensures the target state exists and is enqueued
	}
	return nil
}

func (b *tableBuilder[T]) emitState(i int, st buildState) (lr.State[T], error) {
	grouped := make(map[symKey][]lrItem)
	for _, it := range st.closure {
		if it.atEnd() {
			continue
		}
		key := itemSymKey(it.symbol())
		shifted := lrItem{prod: it.prod, dot: it.dot + 1, inherited: it.inherited}
		grouped[key] = append(grouped[key], shifted)
	}

	var nodeJumps []lr.NodeJump
	type termTarget struct {
		kind                              lex.Kind
		hasID                             bool
		id                                uint32
		hasFollowed, hasNotFollowed       bool
		followedTarget, notFollowedTarget int
	}
	termTargets := make(map[string]*termTarget)

	for key, kernel := range grouped {
		target := b.stateFor(kernel)
		if key.kind == symNonTerminal {
			nt := b.desc.NonTerminals[key.ref]
			nodeJumps = append(nodeJumps, lr.NodeJump{NonTerminalID: nt.ID, Target: target})
			continue
		}
		term, ok := b.desc.terminals[key.ref]
		if !ok {
			return lr.State[T]{}, fmt.Errorf("internal error: unresolved terminal %q", key.ref)
		}
		tt, ok := termTargets[key.ref]
		if !ok {
			kind := term.DataKind
			switch term.Ref.Kind {
			case RefKeyword:
				kind = lex.KindKeyword
			case RefSymbol:
				kind = lex.KindSymbol
			}
			tt = &termTarget{kind: kind, hasID: term.Ref.Kind != RefInput, id: term.ID}
			termTargets[key.ref] = tt
		}
		if key.requireFollows {
			tt.hasFollowed = true
			tt.followedTarget = target
		} else {
			tt.hasNotFollowed = true
			tt.notFollowedTarget = target
		}
	}

	sort.Slice(nodeJumps, func(i, j int) bool { return nodeJumps[i].NonTerminalID < nodeJumps[j].NonTerminalID })

	var tokenJumps []lr.TokenJump
	for _, tt := range termTargets {
		tokenJumps = append(tokenJumps, lr.TokenJump{
			Kind: tt.kind, HasID: tt.hasID, ID: tt.id,
			HasFollowedTarget: tt.hasFollowed, FollowedTarget: tt.followedTarget,
			HasNotFollowedTarget: tt.hasNotFollowed, NotFollowedTarget: tt.notFollowedTarget,
		})
	}
	sort.Slice(tokenJumps, func(i, j int) bool { return tokenJumps[i].less(tokenJumps[j]) })

	var completed []lrItem
	for _, it := range st.closure {
		if it.atEnd() {
			completed = append(completed, it)
		}
	}
	if len(completed) > 1 {
		var names []string
		for _, it := range completed {
			names = append(names, it.prod.String())
		}
		return lr.State[T]{}, fmt.Errorf("reduce-reduce conflict in state %d between productions: %s", i, strings.Join(names, " | "))
	}

	lrState := lr.State[T]{NodeJumps: nodeJumps, TokenJumps: tokenJumps}
	if len(completed) == 1 {
		prod := completed[0].prod
		red, err := b.makeReduction(prod)
		if err != nil {
			return lr.State[T]{}, err
		}
		lrState.Reduction = red
	}
	return lrState, nil
}

func (b *tableBuilder[T]) makeReduction(prod *Production) (*lr.Reduction[T], error) {
	owner := prod.Owner
	popCount := len(prod.Items)
	realCount := prod.RealCount
	if owner.ID == 0 {
		// synthetic accept production: unwrap straight to the real root node.
		return &lr.Reduction[T]{
			NonTerminalID: 0,
			PopCount:      popCount,
			Build: func(popped []*lr.Node[T]) *lr.Node[T] {
				return popped[0]
			},
		}, nil
	}
	reductionIndex := prod.ReductionIndex
	name := owner.Name
	id := owner.ID
	return &lr.Reduction[T]{
		NonTerminalID:   id,
		NonTerminalName: name,
		ProductionIndex: reductionIndex,
		PopCount:        popCount,
		Build: func(popped []*lr.Node[T]) *lr.Node[T] {
			children := make([]*lr.Node[T], realCount)
			copy(children, popped[:realCount])
			return &lr.Node[T]{NonTerminalID: id, NonTerminalName: name, ProductionIndex: reductionIndex, Children: children}
		},
	}, nil
}
