// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

// solverStage names one phase of a single substitution step, per §4.9's
// state machine. It exists for observability (logged at each transition)
// rather than branching logic: a step either completes all four phases or
// the whole solve is considered corrupted (any error here is
// InvariantViolated, never partially recovered).
type solverStage int

const (
	stagePending solverStage = iota
	stageBuildingDef
	stageSubstituting
	stageDone
)

func (s solverStage) String() string {
	switch s {
	case stagePending:
		return "Pending"
	case stageBuildingDef:
		return "Building-def"
	case stageSubstituting:
		return "Substituting"
	case stageDone:
		return "Done"
	}
	return "?"
}

// Solver runs the AST-to-BDD substitution procedure of §4.9 against a Base.
type Solver struct {
	base  *Base
	ast   *AST
	Steps int // number of substitution steps performed by the last Solve call
}

// NewSolver returns a solver driving base with definitions from ast.
func NewSolver(base *Base, ast *AST) *Solver {
	return &Solver{base: base, ast: ast}
}

// topVirtual returns the virtual-variable index n branches on at its
// shallowest point, and whether one exists at all (false once only real
// variables and constants remain).
func topVirtual(n NID) (uint32, bool) {
	v := topVID(n)
	if !v.IsVirtual() {
		return 0, false
	}
	return v.Index(), true
}

// Solve runs the substitution procedure on root (an AST NID, typically
// produced by AST.sortByCost so that every definition's operands carry a
// strictly smaller virtual index than the definition itself — the
// invariant the termination argument and the BDD's own "children are
// strictly deeper" rule both rely on) until no virtual variable remains,
// returning the resulting BDD over real input variables.
//
// Each iteration performs one substitution step: build the BDD for the
// topmost remaining virtual variable's definition, then compose it into B
// with Ite, replacing every occurrence of that variable in a single pass
// (the standard BDD variable-composition identity
// compose(B,v,d) = ite(d, B|v=1, B|v=0)).
func (s *Solver) Solve(root NID) (NID, error) {
	s.Steps = 0
	B := root
	log.Debugw("solve start", "root", root, "stage", stagePending)
	for {
		k, ok := topVirtual(B)
		if !ok {
			log.Debugw("solve done", "steps", s.Steps, "result", B, "stage", stageDone)
			return B, nil
		}
		log.Debugw("solve step", "vir", k, "stage", stageBuildingDef)
		kind, x, y := s.ast.Def(k)
		def, err := s.evalDef(kind, x, y)
		if err != nil {
			return O, wrapError(InvariantViolated, err, "solve: building def")
		}

		log.Debugw("solve step", "vir", k, "stage", stageSubstituting)
		v := VVirtual(k)
		bHi, err := s.base.When(v, true, B)
		if err != nil {
			return O, wrapError(InvariantViolated, err, "solve: restrict hi")
		}
		bLo, err := s.base.When(v, false, B)
		if err != nil {
			return O, wrapError(InvariantViolated, err, "solve: restrict lo")
		}
		B, err = s.base.Ite(def, bHi, bLo)
		if err != nil {
			return O, wrapError(InvariantViolated, err, "solve: compose")
		}
		s.Steps++
	}
}

func (s *Solver) evalDef(kind astKind, x, y NID) (NID, error) {
	switch kind {
	case astAnd:
		return s.base.And(x, y)
	case astOr:
		return s.base.Or(x, y)
	case astXor:
		return s.base.Xor(x, y)
	case astNot:
		return s.base.Not(x), nil
	}
	return O, newError(InvariantViolated, "evalDef: unknown op kind %v", kind)
}
