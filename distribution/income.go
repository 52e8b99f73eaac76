// SPDX-License-Identifier: MIT

package distribution

import "fmt"

// Variable names of the income shock distribution.
const (
	PermShk = "PermShk"
	TranShk = "TranShk"
)

// IncomeProcess parameterizes the standard income shock distribution:
// mean-one lognormal permanent and transitory shocks, with an unemployment
// outcome mixed into the transitory marginal.
type IncomeProcess struct {
	PermShkStd   float64 `yaml:"perm_shk_std"`
	PermShkCount int     `yaml:"perm_shk_count"`
	TranShkStd   float64 `yaml:"tran_shk_std"`
	TranShkCount int     `yaml:"tran_shk_count"`
	UnempPrb     float64 `yaml:"unemp_prb"`
	IncUnemp     float64 `yaml:"inc_unemp"`
}

// Build returns the joint (PermShk, TranShk) distribution.
func (ip IncomeProcess) Build() (*Discrete, error) {
	perm, err := MeanOneLogNormal(ip.PermShkStd, ip.PermShkCount, PermShk)
	if err != nil {
		return nil, fmt.Errorf("permanent shocks: %w", err)
	}
	tran, err := MeanOneLogNormal(ip.TranShkStd, ip.TranShkCount, TranShk)
	if err != nil {
		return nil, fmt.Errorf("transitory shocks: %w", err)
	}
	tran, err = AddOutcomeConstantMean(tran, ip.IncUnemp, ip.UnempPrb)
	if err != nil {
		return nil, fmt.Errorf("unemployment: %w", err)
	}

	return CombineIndependent(perm, tran)
}
