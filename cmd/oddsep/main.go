// Command oddsep runs odd-cycle separation on a textual instance and
// prints the violated inequalities it finds.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/oddcycle/core"
	"github.com/katalvlaran/oddcycle/cut"
	"github.com/katalvlaran/oddcycle/sepa"
)

var log = logrus.New()

func main() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		method    string
		sortMode  string
		lift      bool
		triangles bool
		selfArcs  bool
		scale     int64
		maxCuts   int
		memLimit  int64
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "oddsep <instance>",
		Short: "separate odd-cycle inequalities for a binary program",
		Long: `oddsep reads a binary program instance (variable LP values plus an
implication/clique oracle) and searches its fractional implication
graph for violated odd-cycle inequalities. Found cuts are printed to
stdout, one inequality per line.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			inst, err := loadInstance(args[0])
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"vars":         inst.store.NumBinVars(),
				"implications": inst.store.NumImplications(),
				"cliques":      inst.store.NumCliques(),
			}).Debug("instance loaded")

			m, err := parseMethod(method)
			if err != nil {
				return err
			}
			s, err := parseSortMode(sortMode)
			if err != nil {
				return err
			}

			sep, err := sepa.New(
				sepa.WithMethod(m),
				sepa.WithSortMode(s),
				sepa.WithLifting(lift),
				sepa.WithTriangles(triangles),
				sepa.WithSelfArcs(selfArcs),
				sepa.WithScale(scale),
				sepa.WithCutLimits(maxCuts, maxCuts),
			)
			if err != nil {
				return err
			}

			var budget core.Budget
			if memLimit > 0 {
				budget = core.NewMemoryBudget(memLimit)
			}

			sink := &printer{nbin: inst.store.NumBinVars(), out: cmd.OutOrStdout()}
			outcome, err := sep.Separate(context.Background(), sepa.Problem{
				Oracle:    inst.store,
				Solution:  inst.vals,
				RootNode:  true,
				Consumer:  sink,
				Tightener: sink,
				Budget:    budget,
			})
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"outcome": outcome.String(),
				"cuts":    sep.Cuts(),
				"lifted":  sep.LiftedCuts(),
				"fixes":   sink.nfixes,
			}).Info("separation finished")
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "gls", "search method: gls or levelgraph")
	cmd.Flags().StringVar(&sortMode, "sort", "maxfrac", "start order: none, maxlp, minlp, maxfrac or minfrac")
	cmd.Flags().BoolVar(&lift, "lift", false, "lift the inequalities")
	cmd.Flags().BoolVar(&triangles, "triangles", true, "admit cycles of length three")
	cmd.Flags().BoolVar(&selfArcs, "self-arcs", true, "add weight-zero arcs between a literal and its negation")
	cmd.Flags().Int64Var(&scale, "scale", 1000, "arc weight scaling factor")
	cmd.Flags().IntVar(&maxCuts, "max-cuts", 5000, "maximum number of cuts per round")
	cmd.Flags().Int64Var(&memLimit, "mem-limit", 0, "graph memory budget in bytes, 0 for unlimited")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func parseMethod(s string) (sepa.Method, error) {
	switch strings.ToLower(s) {
	case "gls", "bipartite":
		return sepa.MethodBipartite, nil
	case "levelgraph", "heur":
		return sepa.MethodLevelGraph, nil
	}
	return 0, fmt.Errorf("unknown method %q", s)
}

func parseSortMode(s string) (sepa.SortMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return sepa.SortNone, nil
	case "maxlp":
		return sepa.SortMaxLPValue, nil
	case "minlp":
		return sepa.SortMinLPValue, nil
	case "maxfrac":
		return sepa.SortMaxFractionality, nil
	case "minfrac":
		return sepa.SortMinFractionality, nil
	}
	return 0, fmt.Errorf("unknown sort mode %q", s)
}

// printer writes cuts and bound fixes to the command output.
type printer struct {
	nbin   int
	out    interface{ Write(p []byte) (int, error) }
	nfixes int
}

func (p *printer) AddCut(q *cut.Inequality) (bool, error) {
	var b strings.Builder
	for i, v := range q.Vars {
		c := q.Coefs[i]
		switch {
		case i == 0 && c == 1:
			fmt.Fprintf(&b, "x%d", v)
		case i == 0:
			fmt.Fprintf(&b, "%g x%d", c, v)
		case c == 1:
			fmt.Fprintf(&b, " + x%d", v)
		case c == -1:
			fmt.Fprintf(&b, " - x%d", v)
		case c < 0:
			fmt.Fprintf(&b, " - %g x%d", -c, v)
		default:
			fmt.Fprintf(&b, " + %g x%d", c, v)
		}
	}
	fmt.Fprintf(&b, " <= %g\n", q.RHS)
	if _, err := p.out.Write([]byte(b.String())); err != nil {
		return false, err
	}
	return true, nil
}

func (p *printer) TightenUpper(variable int, bound float64) error {
	p.nfixes++
	_, err := fmt.Fprintf(p.out, "x%d <= %g\n", variable, bound)
	return err
}

func (p *printer) TightenLower(variable int, bound float64) error {
	p.nfixes++
	_, err := fmt.Fprintf(p.out, "x%d >= %g\n", variable, bound)
	return err
}
