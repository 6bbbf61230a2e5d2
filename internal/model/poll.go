package model

// Poll is a named question with an ordered set of votable options.
// Option order is significant: votes address options by position.
type Poll struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// Option is one choice within a Poll with its running vote count.
type Option struct {
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// TotalVotes sums the votes over all options.
func (p Poll) TotalVotes() int {
	total := 0
	for _, o := range p.Options {
		total += o.Votes
	}
	return total
}

// Percent returns option i's share of the poll's votes as 0..100,
// rounded down. A poll without votes yields 0 for every option.
func (p Poll) Percent(i int) int {
	if i < 0 || i >= len(p.Options) {
		return 0
	}
	total := p.TotalVotes()
	if total == 0 {
		return 0
	}
	return p.Options[i].Votes * 100 / total
}

// Clone returns a deep copy so callers can't mutate store-owned options.
func (p Poll) Clone() Poll {
	c := p
	c.Options = append([]Option(nil), p.Options...)
	return c
}
