package grammar

// NonTerminal is a named left-hand side with one or more Productions
//.
type NonTerminal struct {
	Name        string
	ID          uint32
	Entry       bool
	Productions []*Production

	// Reductions is the de-duplicated list of distinct real-item tuples
	// contributed by this non-terminal's productions, one representative
	// production per distinct tuple, in first-seen order.
	Reductions []*Production
}

// AddProduction appends prod to nt's production list, assigning prod.Owner.
func (nt *NonTerminal) AddProduction(prod *Production) {
	prod.Owner = nt
	nt.Productions = append(nt.Productions, prod)
}

// assignReductions groups nt's productions by their shared real-item tuple
// and assigns each production's ReductionIndex.
func (nt *NonTerminal) assignReductions() {
	seen := make(map[string]int)
	nt.Reductions = nil
	for _, p := range nt.Productions {
		key := p.reductionKey()
		idx, ok := seen[key]
		if !ok {
			idx = len(nt.Reductions)
			seen[key] = idx
			nt.Reductions = append(nt.Reductions, p)
		}
		p.ReductionIndex = idx
	}
}
