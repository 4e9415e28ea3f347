package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/oddcycle/core"
)

// ErrBadInstance is returned for malformed instance files.
var ErrBadInstance = errors.New("oddsep: bad instance file")

// instance is a parsed problem: the implication oracle plus the LP
// values of the binary variables.
type instance struct {
	store *core.Store
	vals  []float64
}

// loadInstance reads a textual instance. The format is line based,
// '#' starts a comment. Literals are integers in [0, 2n): l and l+n
// denote a variable and its negation.
//
//	vars <n>
//	vals <v0> <v1> ... <vn-1>
//	impl <lit> <lit>
//	clique <lit> <lit> [<lit> ...]
func loadInstance(path string) (*instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var inst *instance
	var nbin int

	sc := bufio.NewScanner(f)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] != "vars" && inst == nil {
			return nil, fmt.Errorf("%w: line %d: %q before vars", ErrBadInstance, lineno, fields[0])
		}

		switch fields[0] {
		case "vars":
			if inst != nil {
				return nil, fmt.Errorf("%w: line %d: duplicate vars", ErrBadInstance, lineno)
			}
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: line %d: vars needs one argument", ErrBadInstance, lineno)
			}
			nbin, err = strconv.Atoi(fields[1])
			if err != nil || nbin < 1 {
				return nil, fmt.Errorf("%w: line %d: invalid variable count %q", ErrBadInstance, lineno, fields[1])
			}
			inst = &instance{
				store: core.NewStore(nbin),
				vals:  make([]float64, nbin),
			}

		case "vals":
			if len(fields) != nbin+1 {
				return nil, fmt.Errorf("%w: line %d: expected %d values, got %d", ErrBadInstance, lineno, nbin, len(fields)-1)
			}
			for i, s := range fields[1:] {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil || v < 0 || v > 1 {
					return nil, fmt.Errorf("%w: line %d: invalid value %q", ErrBadInstance, lineno, s)
				}
				inst.vals[i] = v
			}

		case "impl":
			if len(fields) != 3 {
				return nil, fmt.Errorf("%w: line %d: impl needs two literals", ErrBadInstance, lineno)
			}
			a, err := parseLiteral(fields[1], nbin)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadInstance, lineno, err)
			}
			b, err := parseLiteral(fields[2], nbin)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadInstance, lineno, err)
			}
			if err := inst.store.AddImplication(a, b); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadInstance, lineno, err)
			}

		case "clique":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: clique needs at least two literals", ErrBadInstance, lineno)
			}
			members := make([]core.Literal, 0, len(fields)-1)
			for _, s := range fields[1:] {
				l, err := parseLiteral(s, nbin)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrBadInstance, lineno, err)
				}
				members = append(members, l)
			}
			if err := inst.store.AddClique(members...); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadInstance, lineno, err)
			}

		default:
			return nil, fmt.Errorf("%w: line %d: unknown directive %q", ErrBadInstance, lineno, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, fmt.Errorf("%w: missing vars directive", ErrBadInstance)
	}
	return inst, nil
}

func parseLiteral(s string, nbin int) (core.Literal, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid literal %q", s)
	}
	l := core.Literal(v)
	if !l.Valid(nbin) {
		return 0, fmt.Errorf("literal %d outside [0,%d)", v, 2*nbin)
	}
	return l, nil
}
