package solver

import (
	"fmt"
	"math/rand"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// This file turns the branch_strategy_setup config string (spec.md 6) --
// a "+"-separated sequence of strategy tokens, e.g. "vsids1+maple1+rand"
// -- into an ordered slice of Branchers. The teacher has no analogue;
// grounded on alecthomas/participle/v2, used the same way by
// maybetonyfu-goanna in the pack for a small string grammar.

type branchSetupAST struct {
	Stages []string `parser:"@Ident (\"+\" @Ident)*"`
}

var branchSetupLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var branchSetupParser = participle.MustBuild[branchSetupAST](
	participle.Lexer(branchSetupLexer),
	participle.Elide("Whitespace"),
)

// branchStageSpec is one parsed token: a BranchKind plus the decay preset
// that token names in the original solver's branch_type_total table.
type branchStageSpec struct {
	Kind       BranchKind
	DecayStart float64
	DecayMax   float64
}

var branchTokens = map[string]branchStageSpec{
	"vsidsx_once": {BranchVSIDS, 0.80, 0.95},
	"vsidsx":      {BranchVSIDS, 0.80, 0.95},
	"vsids1":      {BranchVSIDS, 0.92, 0.92},
	"vsids2":      {BranchVSIDS, 0.99, 0.99},
	"vmtf":        {BranchVMTF, 0, 0},
	"maple1":      {BranchMaple, 0, 0},
	"maple2":      {BranchMaple, 0, 0},
	"rand":        {BranchRandom, 0, 0},
}

// parseBranchStrategySetup parses s into an ordered stage sequence. An
// empty string means "plain VSIDS", matching the original solver's
// default.
func parseBranchStrategySetup(s string) ([]branchStageSpec, error) {
	if s == "" {
		return []branchStageSpec{{Kind: BranchVSIDS, DecayStart: 0.95, DecayMax: 0.95}}, nil
	}
	ast, err := branchSetupParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parsing branch_strategy_setup %q: %w", s, err)
	}
	out := make([]branchStageSpec, 0, len(ast.Stages))
	for _, tok := range ast.Stages {
		spec, ok := branchTokens[tok]
		if !ok {
			return nil, fmt.Errorf("branch_strategy_setup: unknown strategy %q", tok)
		}
		out = append(out, spec)
	}
	return out, nil
}

// newBranchersFromSetup instantiates one Brancher per parsed stage.
func newBranchersFromSetup(specs []branchStageSpec, nbVars int, cfg Config, conflictIdx *int32, rng *rand.Rand) []Brancher {
	out := make([]Brancher, 0, len(specs))
	for _, spec := range specs {
		switch spec.Kind {
		case BranchVSIDS:
			out = append(out, newVSIDSBrancher(nbVars, spec.DecayStart, cfg.RandomVarFreq, rng))
		case BranchMaple:
			out = append(out, newMapleBrancher(nbVars, cfg.MapleStepSize, cfg.MapleMinStepSize, cfg.MapleStepSizeDec, conflictIdx))
		case BranchRandom:
			out = append(out, newRandomBrancher(nbVars, rng))
		case BranchVMTF:
			out = append(out, newVMTFBrancher(nbVars))
		}
	}
	return out
}
