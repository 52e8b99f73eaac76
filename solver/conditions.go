// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"

	"go.uber.org/zap"
)

// Condition is the outcome of one stability test on a patience factor.
type Condition struct {
	Name        string
	Factor      string
	Value       float64
	Holds       bool
	Message     string
	Explanation string
}

// Report lists the evaluated conditions in a fixed order.
type Report struct {
	Conditions []Condition
	// Degenerate is set when the limiting solution collapses: without an
	// artificial constraint when RIC or FHWC fails, with one when RIC fails.
	Degenerate bool
}

// Get returns the named condition.
func (r Report) Get(name string) (Condition, bool) {
	for _, c := range r.Conditions {
		if c.Name == name {
			return c, true
		}
	}

	return Condition{}, false
}

func (r Report) index() (map[string]Condition, bool) {
	m := make(map[string]Condition, len(r.Conditions))
	for _, c := range r.Conditions {
		m[c.Name] = c
	}

	return m, r.Degenerate
}

// conditionDef defines a test factor < 1 (or <= 1 when weak).
type conditionDef struct {
	name, factor, title string
	weak                bool
	pass, fail          string
}

var conditionTable = []conditionDef{
	{"AIC", "APF", "Absolute Impatience Condition", false,
		"consumption grows more slowly than the absolute return allows; the consumer is absolutely impatient",
		"the absolutely patient consumer lets consumption grow without bound relative to resources"},
	{"FHWC", "FHWF", "Finite Human Wealth Condition", false,
		"income grows more slowly than the interest rate, so human wealth is finite",
		"human wealth is infinite; the unconstrained perfect-foresight solution does not exist"},
	{"RIC", "RPF", "Return Impatience Condition", false,
		"the limiting MPC is positive",
		"the limiting MPC is zero; the consumer saves almost all of any increment in wealth"},
	{"GICRaw", "GPFRaw", "Growth Impatience Condition", false,
		"without risk and mortality the ratio of wealth to income falls over time",
		"without risk and mortality the ratio of wealth to income rises without bound"},
	{"GICLiv", "GPFLiv", "Mortality-adjusted Growth Impatience Condition", false,
		"the aggregate wealth-to-income ratio of a population with mortality is bounded",
		"the aggregate wealth-to-income ratio of a population with mortality grows without bound"},
	{"FVAC", "FVAF", "Finite Value of Autarky Condition", false,
		"the value of consuming income forever is finite",
		"the value of consuming income forever is infinite"},
	{"GICNrm", "GPFNrm", "Normalized Growth Impatience Condition", true,
		"a target wealth-to-permanent-income ratio exists",
		"the expected wealth-to-permanent-income ratio rises without bound"},
	{"WRIC", "WRPF", "Weak Return Impatience Condition", true,
		"the limiting MPC in the unemployment-risk model is positive",
		"the consumer fearing unemployment saves almost all of any increment in wealth"},
}

func evaluateConditions(s *Solution) Report {
	var r Report
	for _, row := range conditionTable {
		v := s.Bilt.Factor(row.factor)
		holds := v < 1
		op := "<"
		if row.weak {
			holds, op = v <= 1, "<="
		}
		c := Condition{Name: row.name, Factor: row.factor, Value: v, Holds: holds}
		if holds {
			c.Message = fmt.Sprintf("%s=%.6f %s 1: %s (%s) holds", row.factor, v, op, row.title, row.name)
			c.Explanation = "Therefore " + row.pass + "."
		} else {
			c.Message = fmt.Sprintf("%s=%.6f fails %s 1: %s (%s) does not hold", row.factor, v, op, row.title, row.name)
			c.Explanation = "Therefore " + row.fail + "."
		}
		r.Conditions = append(r.Conditions, c)
	}

	ric, _ := r.Get("RIC")
	fhwc, _ := r.Get("FHWC")
	if s.Pars.BoroCnstArt != nil {
		r.Degenerate = !ric.Holds
	} else {
		r.Degenerate = !ric.Holds || !fhwc.Holds
	}

	return r
}

// CheckConditions evaluates the stability conditions of a solved stage and
// logs each message, with the explanation when verbose is set.
func CheckConditions(s *Solution, verbose bool, opts ...Option) Report {
	o := gatherOptions(opts...)
	r := evaluateConditions(s)
	for _, c := range r.Conditions {
		fields := []zap.Field{zap.String("condition", c.Name), zap.Float64(c.Factor, c.Value), zap.Bool("holds", c.Holds)}
		if verbose {
			fields = append(fields, zap.String("explanation", c.Explanation))
		}
		o.logger.Info(c.Message, fields...)
	}
	if r.Degenerate {
		o.logger.Warn("limiting solution is degenerate", zap.Int("stage", s.Stage))
	}

	return r
}
