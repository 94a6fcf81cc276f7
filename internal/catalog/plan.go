package catalog

// Plan is the final organization: named sessions plus records that had
// no temporal neighbors, rooted at Root. It is built once by the
// pipeline and consumed read-only by the executor.
type Plan struct {
	Root          string
	Sessions      []*Session
	Uncategorized []*Record
}

// TotalRecords counts every record covered by the plan.
func (p *Plan) TotalRecords() int {
	n := len(p.Uncategorized)
	for _, s := range p.Sessions {
		n += s.Count()
	}
	return n
}
