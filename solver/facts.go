// SPDX-License-Identifier: MIT

package solver

import (
	"math"
)

// factDef is one row of a fact table. eval may read facts listed earlier.
type factDef struct {
	name    string
	about   string
	formula string
	label   string
	eval    func(s *Solution) float64
}

// fv reads an already computed fact.
func fv(s *Solution, name string) float64 { return s.Bilt.Factor(name) }

// pfInfHorTable is evaluated first for every stage.
var pfInfHorTable = []factDef{
	{"DiscLiv", "Survival-adjusted discount factor", "DiscFac·LivPrb", "β ℒ",
		func(s *Solution) float64 { return s.Pars.DiscLiv() }},
	{"APF", "Absolute Patience Factor", "(Rfree·DiscLiv)^(1/CRRA)", "Þ",
		func(s *Solution) float64 { return math.Pow(s.Pars.Rfree*fv(s, "DiscLiv"), 1/s.Pars.CRRA) }},
	{"RPF", "Return Patience Factor", "APF/Rfree", "Þ_R",
		func(s *Solution) float64 { return fv(s, "APF") / s.Pars.Rfree }},
	{"GPFRaw", "Growth Patience Factor", "APF/PermGroFac", "Þ_Γ",
		func(s *Solution) float64 { return fv(s, "APF") / s.Pars.PermGroFac }},
	{"GPFLiv", "Mortality-adjusted Growth Patience Factor", "APF·LivPrb/PermGroFac", "Þ_ℒΓ",
		func(s *Solution) float64 { return fv(s, "APF") * s.Pars.LivPrb / s.Pars.PermGroFac }},
	{"RNrmPF", "Growth-normalized return factor", "Rfree/PermGroFac", "R/Γ",
		func(s *Solution) float64 { return s.Pars.Rfree / s.Pars.PermGroFac }},
	{"InvRNrmPF", "Inverse growth-normalized return factor", "1/RNrmPF", "Γ/R",
		func(s *Solution) float64 { return 1 / fv(s, "RNrmPF") }},
	{"FHWF", "Finite Human Wealth Factor", "PermGroFac/Rfree", "Γ/R",
		func(s *Solution) float64 { return s.Pars.PermGroFac / s.Pars.Rfree }},
	{"hNrmInf", "Infinite-horizon human wealth", "1/(1−FHWF) if FHWF < 1 else +Inf", "h_∞",
		func(s *Solution) float64 {
			if f := fv(s, "FHWF"); f < 1 {
				return 1 / (1 - f)
			}
			return math.Inf(1)
		}},
	{"DiscGPFRawCusp", "Discount factor at which GPFRaw = 1", "PermGroFac^CRRA/Rfree", "β_Γ",
		func(s *Solution) float64 { return math.Pow(s.Pars.PermGroFac, s.Pars.CRRA) / s.Pars.Rfree }},
	{"DiscGPFLivCusp", "Discount factor at which GPFLiv = 1", "PermGroFac^CRRA/(Rfree·LivPrb)", "β_ℒΓ",
		func(s *Solution) float64 {
			return math.Pow(s.Pars.PermGroFac, s.Pars.CRRA) / (s.Pars.Rfree * s.Pars.LivPrb)
		}},
	{"FVAF", "Finite Value of Autarky Factor", "LivPrb·DiscLiv", "ℒ β",
		func(s *Solution) float64 { return s.Pars.LivPrb * fv(s, "DiscLiv") }},
	{"IncNrmNxt", "Expected normalized income next period", "1", "E[ψθ]",
		func(*Solution) float64 { return 1 }},
	{"InvPermShk", "Expected inverse permanent shock", "1", "E[ψ⁻¹]",
		func(*Solution) float64 { return 1 }},
	{"UInvPermShk", "Expected permanent shock to the power 1−CRRA", "1", "E[ψ^(1−ρ)]",
		func(*Solution) float64 { return 1 }},
	{"RNrm", "Expected growth-normalized return factor", "RNrmPF·InvPermShk", "E[R/(Γψ)]",
		func(s *Solution) float64 { return fv(s, "RNrmPF") * fv(s, "InvPermShk") }},
	{"GPFNrm", "Normalized Growth Patience Factor", "GPFRaw·InvPermShk", "Þ_Γψ",
		func(s *Solution) float64 { return fv(s, "GPFRaw") * fv(s, "InvPermShk") }},
	{"WRPF", "Weak Return Patience Factor", "RPF without unemployment risk", "Þ_R",
		func(s *Solution) float64 { return fv(s, "RPF") }},
}

// riskInfHorTable overrides and extends pfInfHorTable under income risk.
func riskInfHorTable(sh *ShockSetup) []factDef {
	return []factDef{
		{"IncNrmNxt", "Expected normalized income next period", "E[ψθ]", "E[ψθ]",
			func(*Solution) float64 { return sh.expect(func(psi, theta float64) float64 { return psi * theta }) }},
		{"InvPermShk", "Expected inverse permanent shock", "E[1/ψ]", "E[ψ⁻¹]",
			func(*Solution) float64 { return sh.expect(func(psi, _ float64) float64 { return 1 / psi }) }},
		{"UInvPermShk", "Expected permanent shock to the power 1−CRRA", "E[ψ^(1−CRRA)]", "E[ψ^(1−ρ)]",
			func(s *Solution) float64 {
				return sh.expect(func(psi, _ float64) float64 { return math.Pow(psi, 1-s.Pars.CRRA) })
			}},
		{"RNrm", "Expected growth-normalized return factor", "RNrmPF·InvPermShk", "E[R/(Γψ)]",
			func(s *Solution) float64 { return fv(s, "RNrmPF") * fv(s, "InvPermShk") }},
		{"GPFNrm", "Normalized Growth Patience Factor", "GPFRaw·InvPermShk", "Þ_Γψ",
			func(s *Solution) float64 { return fv(s, "GPFRaw") * fv(s, "InvPermShk") }},
		{"FVAF", "Finite Value of Autarky Factor (risk-adjusted)", "LivPrb·DiscLiv·UInvPermShk", "ℒ β E[ψ^(1−ρ)]",
			func(s *Solution) float64 { return s.Pars.LivPrb * fv(s, "DiscLiv") * fv(s, "UInvPermShk") }},
		{"WRPF", "Weak Return Patience Factor", "UnempPrb^(1/CRRA)·RPF", "℘^(1/ρ) Þ_R",
			func(s *Solution) float64 { return math.Pow(sh.UnempPrb, 1/s.Pars.CRRA) * fv(s, "RPF") }},
		{"IncMinPF", "Patience factor at the worst income event", "IncMinPrb^(1/CRRA)·RPF", "℘_min^(1/ρ) Þ_R",
			func(s *Solution) float64 { return math.Pow(sh.IncMinPrb, 1/s.Pars.CRRA) * fv(s, "RPF") }},
		{"DiscGPFNrmCusp", "Discount factor at which GPFNrm = 1", "(PermGroFac/InvPermShk)^CRRA/Rfree", "β_Γψ",
			func(s *Solution) float64 {
				return math.Pow(s.Pars.PermGroFac/fv(s, "InvPermShk"), s.Pars.CRRA) / s.Pars.Rfree
			}},
	}
}

// recursiveTable relates this stage to its successor. permShkMin and
// tranShkMin are the worst shocks (1 under perfect foresight); mpcMaxFactor
// is the patience factor driving the MPCmax recursion.
func recursiveTable(permShkMin, tranShkMin float64, mpcMaxFactor string) []factDef {
	return []factDef{
		{"hNrm", "Normalized human wealth", "(PermGroFac/Rfree)·(IncNrmNxt + hNrm_tp1)", "h",
			func(s *Solution) float64 {
				return s.Pars.PermGroFac / s.Pars.Rfree * (fv(s, "IncNrmNxt") + s.Folw.HNrm)
			}},
		{"BoroCnstNat", "Natural borrowing constraint", "(mNrmMin_tp1 − TranShkMin)·(PermGroFac/Rfree)·PermShkMin", "a_nat",
			func(s *Solution) float64 {
				return (s.Folw.MNrmMin - tranShkMin) * (s.Pars.PermGroFac / s.Pars.Rfree) * permShkMin
			}},
		{"BoroCnst", "Effective borrowing constraint", "max(BoroCnstNat, BoroCnstArt)", "a_min",
			func(s *Solution) float64 {
				nat := fv(s, "BoroCnstNat")
				if s.Pars.BoroCnstArt != nil {
					return math.Max(nat, *s.Pars.BoroCnstArt)
				}
				return nat
			}},
		{"mNrmMin", "Minimum normalized market resources", "BoroCnst", "m_min",
			func(s *Solution) float64 { return fv(s, "BoroCnst") }},
		{"MPCmin", "Minimal marginal propensity to consume", "1/(1 + RPF/MPCmin_tp1)", "κ_min",
			func(s *Solution) float64 { return 1 / (1 + fv(s, "RPF")/s.Folw.MPCmin) }},
		{"MPCmax", "Maximal marginal propensity to consume", "1/(1 + " + mpcMaxFactor + "/MPCmax_tp1)", "κ_max",
			func(s *Solution) float64 { return 1 / (1 + fv(s, mpcMaxFactor)/s.Folw.MPCmax) }},
		{"MPCmaxEff", "MPC at the effective constraint", "1 if BoroCnstArt binds else MPCmax", "κ̄",
			func(s *Solution) float64 {
				if fv(s, "BoroCnstNat") < fv(s, "mNrmMin") {
					return 1
				}
				return fv(s, "MPCmax")
			}},
		{"cFuncLimitIntercept", "Intercept of the limiting linear consumption function", "MPCmin·hNrm", "κ_min·h",
			func(s *Solution) float64 { return fv(s, "MPCmin") * fv(s, "hNrm") }},
		{"cFuncLimitSlope", "Slope of the limiting linear consumption function", "MPCmin", "κ_min",
			func(s *Solution) float64 { return fv(s, "MPCmin") }},
	}
}

// applyTable evaluates rows in order, recording each as a Fact.
func applyTable(s *Solution, table []factDef) {
	if s.Bilt.Facts == nil {
		s.Bilt.Facts = make(map[string]Fact, len(table))
	}
	for _, row := range table {
		s.Bilt.Facts[row.name] = Fact{
			Name:    row.name,
			About:   row.about,
			Formula: row.formula,
			Label:   row.label,
			Value:   row.eval(s),
		}
	}
}

// ---------- Fact builders ----------

// FactBuilder fills a stage's facts in two steps: parameter-only facts, then
// facts that depend on the successor.
type FactBuilder interface {
	BuildInfHorFacts(s *Solution)
	BuildRecursiveFacts(s *Solution)
}

// PerfectForesightFacts builds facts without income risk.
type PerfectForesightFacts struct{}

// BuildInfHorFacts applies the perfect-foresight table and publishes the
// expectation scalars.
func (PerfectForesightFacts) BuildInfHorFacts(s *Solution) {
	applyTable(s, pfInfHorTable)
	publishInfHor(s)
}

// BuildRecursiveFacts applies the recursive table with unit shocks.
func (PerfectForesightFacts) BuildRecursiveFacts(s *Solution) {
	table := recursiveTable(1, 1, "RPF")
	applyTable(s, table)
	publishRecursive(s, table)
}

// IncomeRiskFacts builds facts under the shock distribution of Shocks.
type IncomeRiskFacts struct {
	Shocks *ShockSetup
}

// BuildInfHorFacts applies the perfect-foresight table, then the risk overrides.
func (b IncomeRiskFacts) BuildInfHorFacts(s *Solution) {
	applyTable(s, pfInfHorTable)
	applyTable(s, riskInfHorTable(b.Shocks))
	publishInfHor(s)
}

// BuildRecursiveFacts uses the worst shocks for the natural constraint and
// for the MPCmax recursion.
func (b IncomeRiskFacts) BuildRecursiveFacts(s *Solution) {
	table := recursiveTable(b.Shocks.PermShkMin, b.Shocks.TranShkMin, "IncMinPF")
	applyTable(s, table)
	publishRecursive(s, table)
}

func publishInfHor(s *Solution) {
	s.Bilt.HNrmInf = fv(s, "hNrmInf")
	s.Et.Ante = AnteChoice{
		IncNrmNxt:   fv(s, "IncNrmNxt"),
		InvPermShk:  fv(s, "InvPermShk"),
		UInvPermShk: fv(s, "UInvPermShk"),
	}
	s.Et.Post.RNrmPF = fv(s, "RNrmPF")
	s.Et.Post.InvRNrmPF = fv(s, "InvRNrmPF")
	s.Et.Post.RNrm = fv(s, "RNrm")
}

func publishRecursive(s *Solution, table []factDef) {
	b := &s.Bilt
	b.HNrm = fv(s, "hNrm")
	b.BoroCnstNat = fv(s, "BoroCnstNat")
	b.BoroCnst = fv(s, "BoroCnst")
	b.MNrmMin = fv(s, "mNrmMin")
	b.MPCmin = fv(s, "MPCmin")
	b.MPCmax = fv(s, "MPCmax")
	b.MPCmaxEff = fv(s, "MPCmaxEff")
	b.CFuncLimitIntercept = fv(s, "cFuncLimitIntercept")
	b.CFuncLimitSlope = fv(s, "cFuncLimitSlope")
	b.Recursive = b.Recursive[:0]
	for _, row := range table {
		b.Recursive = append(b.Recursive, row.name)
	}
}
