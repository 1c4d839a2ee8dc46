package game

import (
	"errors"
	"math/rand"
)

var ErrNoFieldsRemaining = errors.New("no_fields_remaining")

// Draw picks one unchecked field uniformly at random and returns it together
// with the full field list containing that one change. The input slice is not
// modified. Returns ErrNoFieldsRemaining when every field is already checked.
func Draw(fields []Field) (Field, []Field, error) {
	unchecked := make([]int, 0, len(fields))
	for i, f := range fields {
		if !f.Checked {
			unchecked = append(unchecked, i)
		}
	}
	if len(unchecked) == 0 {
		return Field{}, nil, ErrNoFieldsRemaining
	}

	idx := unchecked[rand.Intn(len(unchecked))]
	updated := make([]Field, len(fields))
	copy(updated, fields)
	updated[idx].Checked = true
	return updated[idx], updated, nil
}
