package config

import "github.com/correctocr/correctocr/internal/heuristics"

// PolicyMap converts the configuration's bin->action-code map into a
// heuristics.PolicyMap. A bin missing from c.Bins keeps its
// heuristics.DefaultPolicy action: "original" for bin 1, "defer to
// annotator" for bins 2-9.
func (c *Config) PolicyMap() heuristics.PolicyMap {
	p := heuristics.DefaultPolicy()
	for bin, code := range c.Bins {
		if bin < 1 || bin > 9 {
			continue
		}
		p[bin] = heuristics.Action(code[0])
	}
	return p
}
