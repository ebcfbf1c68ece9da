// Package names resolves ranked player identifiers to display strings.
package names

import (
	"fmt"

	"github.com/okian/batting/internal/domain/types"
)

// Identity holds the display name of one player.
type Identity struct {
	PlayerID  string
	FirstName string
	LastName  string
}

// Directory is an in-memory index of the identity table keyed by player id.
// It is built once per query and then serves O(1) lookups. Names are read
// only for the ids that are looked up.
type Directory struct {
	fields types.Fields
	byID   map[string][]types.Row
}

// NewDirectory indexes identity rows by player id. Every row must carry
// the id field.
func NewDirectory(fields types.Fields, rows []types.Row) (*Directory, error) {
	d := &Directory{fields: fields, byID: make(map[string][]types.Row, len(rows))}
	for _, row := range rows {
		id, err := row.Value(fields.PlayerID)
		if err != nil {
			return nil, err
		}
		d.byID[id] = append(d.byID[id], row)
	}
	return d, nil
}

// Len returns the number of distinct player ids in the directory.
func (d *Directory) Len() int { return len(d.byID) }

// Lookup returns the identity for id. It fails with ErrUnknownPlayer when
// no record matches and ErrAmbiguousPlayer when more than one does.
func (d *Directory) Lookup(id string) (Identity, error) {
	matches := d.byID[id]
	if len(matches) == 0 {
		return Identity{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	if len(matches) > 1 {
		return Identity{}, fmt.Errorf("%w: %q has %d records", ErrAmbiguousPlayer, id, len(matches))
	}

	row := matches[0]
	first, err := row.Value(d.fields.FirstName)
	if err != nil {
		return Identity{}, fmt.Errorf("player %q: %w", id, err)
	}
	last, err := row.Value(d.fields.LastName)
	if err != nil {
		return Identity{}, fmt.Errorf("player %q: %w", id, err)
	}
	return Identity{PlayerID: id, FirstName: first, LastName: last}, nil
}

// Resolve formats one line per entry as "0.333 --- First Last". The first
// failed lookup aborts the whole resolution.
func (d *Directory) Resolve(entries []types.Entry) ([]string, error) {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		who, err := d.Lookup(e.PlayerID)
		if err != nil {
			return nil, err
		}
		out = append(out, Format(e, who))
	}
	return out, nil
}

// Format renders an entry with three decimals and the player's full name.
func Format(e types.Entry, who Identity) string {
	return fmt.Sprintf("%.3f --- %s %s", e.Score, who.FirstName, who.LastName)
}
