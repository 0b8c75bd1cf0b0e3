// Package engine advances a rule table over a time-layered toroidal space.
//
// Generation t+1 is computed purely from generation t: every read targets
// plane t and every write targets plane t+1, so a step never observes its own
// output.
package engine

import (
	"errors"
	"fmt"

	"ca-survey/internal/core"
	"ca-survey/internal/rules"
)

var (
	// ErrNeighborhoodRange means an encoded neighborhood fell outside the table.
	// It indicates a bit-order or sizing bug and is never clamped.
	ErrNeighborhoodRange = errors.New("neighborhood encoding out of range")
	// ErrComplete is returned when stepping past the last generation.
	ErrComplete = errors.New("automaton already complete")
	// ErrShapeMismatch reports a table and space of different dimensions.
	ErrShapeMismatch = errors.New("table and space shapes differ")
)

// Automaton couples a rule table with the space it evolves.
type Automaton struct {
	table     *rules.Table
	space     *core.Space
	iteration int
}

// New validates that table and space agree before any work is done.
func New(table *rules.Table, space *core.Space) (*Automaton, error) {
	if table == nil || space == nil {
		return nil, fmt.Errorf("%w: nil table or space", ErrShapeMismatch)
	}
	if table.Dimension() != space.Dimension {
		return nil, fmt.Errorf("%w: table is %dD, space is %dD", ErrShapeMismatch, table.Dimension(), space.Dimension)
	}
	want, err := rules.Size(table.Dimension(), table.Radius())
	if err != nil {
		return nil, err
	}
	if table.Len() != want {
		return nil, fmt.Errorf("%w: table has %d entries, want %d", ErrShapeMismatch, table.Len(), want)
	}
	return &Automaton{table: table, space: space}, nil
}

// Table returns the rule table driving the automaton.
func (a *Automaton) Table() *rules.Table { return a.table }

// Space returns the space being filled.
func (a *Automaton) Space() *core.Space { return a.space }

// Iteration is the last completed generation.
func (a *Automaton) Iteration() int { return a.iteration }

// MaxIterations is the number of generations the space can hold.
func (a *Automaton) MaxIterations() int { return a.space.Steps }

// IsComplete reports whether the final generation has been written.
func (a *Automaton) IsComplete() bool { return a.iteration+1 == a.space.Steps }

// Step computes generation iteration+1 from generation iteration.
func (a *Automaton) Step() error {
	if a.IsComplete() {
		return ErrComplete
	}
	var err error
	if a.space.Dimension == 1 {
		err = a.step1D()
	} else {
		err = a.step2D()
	}
	if err != nil {
		return err
	}
	a.iteration++
	return nil
}

// RunToCompletion steps until the last generation is written. With skipBoring
// set, 1D automata whose tables are not interesting are left unsimulated and
// false is returned. 2D automata always run.
func (a *Automaton) RunToCompletion(skipBoring bool) (bool, error) {
	if skipBoring && a.space.Dimension == 1 && !a.table.Classify().Interesting {
		return false, nil
	}
	for !a.IsComplete() {
		if err := a.Step(); err != nil {
			return false, fmt.Errorf("step %d: %w", a.iteration, err)
		}
	}
	return true, nil
}

func (a *Automaton) step1D() error {
	cur := a.space.Plane(a.iteration)
	nxt := a.space.Plane(a.iteration + 1)
	w, r := a.space.W, a.table.Radius()
	for x := 0; x < w; x++ {
		idx := Encode1D(cur, w, r, x)
		if idx >= a.table.Len() {
			return fmt.Errorf("%w: x=%d encoding=%d size=%d", ErrNeighborhoodRange, x, idx, a.table.Len())
		}
		nxt[x] = a.table.Entry(idx)
	}
	return nil
}

func (a *Automaton) step2D() error {
	cur := a.space.Plane(a.iteration)
	nxt := a.space.Plane(a.iteration + 1)
	w, h := a.space.W, a.space.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := Encode2D(cur, w, h, x, y)
			if idx >= a.table.Len() {
				return fmt.Errorf("%w: (%d,%d) encoding=%d size=%d", ErrNeighborhoodRange, x, y, idx, a.table.Len())
			}
			nxt[y*w+x] = a.table.Entry(idx)
		}
	}
	return nil
}
