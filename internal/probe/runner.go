package probe

import "context"

// Summary aggregates the results of one probe run.
type Summary struct {
	Results []Result `json:"results"`
	Passed  int      `json:"passed"`
	Total   int      `json:"total"`
	OK      bool     `json:"ok"`
}

// Run executes the probes strictly in order and tallies the outcome.
// Every probe always runs: a failure never short-circuits the remaining
// checks, so one run reports the full state of the environment.
func Run(ctx context.Context, probes []Probe) Summary {
	sum := Summary{
		Results: make([]Result, 0, len(probes)),
		Total:   len(probes),
	}

	for _, p := range probes {
		res := p.Run(ctx)
		sum.Results = append(sum.Results, res)
		if res.OK {
			sum.Passed++
		}
	}

	sum.OK = sum.Passed == sum.Total
	return sum
}
