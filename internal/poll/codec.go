package poll

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/poll/internal/model"
)

// Stored records use pointers so a missing field is told apart from a
// zero value; the stored shape is checked, not trusted.
type pollRecord struct {
	ID      *int64         `json:"id"`
	Name    *string        `json:"name"`
	Options []optionRecord `json:"options"`
}

type optionRecord struct {
	Name  *string `json:"name"`
	Votes *int    `json:"votes"`
}

func encodeSnapshot(polls []model.Poll) (string, error) {
	if polls == nil {
		polls = []model.Poll{}
	}
	b, err := json.Marshal(polls)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// decodeSnapshot rejects the whole payload on the first bad record.
func decodeSnapshot(raw string) ([]model.Poll, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("empty payload")
	}
	var recs []pollRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	polls := make([]model.Poll, 0, len(recs))
	seen := make(map[int64]struct{}, len(recs))
	for i, r := range recs {
		p, err := r.toPoll()
		if err != nil {
			return nil, fmt.Errorf("poll #%d: %w", i, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("poll #%d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		polls = append(polls, p)
	}
	return polls, nil
}

func (r pollRecord) toPoll() (model.Poll, error) {
	switch {
	case r.ID == nil:
		return model.Poll{}, errors.New("missing id")
	case r.Name == nil || strings.TrimSpace(*r.Name) == "":
		return model.Poll{}, errors.New("missing name")
	case len(r.Options) == 0:
		return model.Poll{}, errors.New("no options")
	}
	p := model.Poll{ID: *r.ID, Name: *r.Name, Options: make([]model.Option, 0, len(r.Options))}
	for j, o := range r.Options {
		if o.Name == nil || strings.TrimSpace(*o.Name) == "" {
			return model.Poll{}, fmt.Errorf("option #%d: missing name", j)
		}
		if o.Votes == nil || *o.Votes < 0 {
			return model.Poll{}, fmt.Errorf("option #%d: bad vote count", j)
		}
		p.Options = append(p.Options, model.Option{Name: *o.Name, Votes: *o.Votes})
	}
	return p, nil
}
