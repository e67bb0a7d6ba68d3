package types

// Finding describes one line of an eligible file that matched a secret rule.
// Preview is the stripped line text, truncated for display.
type Finding struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	RuleID  string `json:"rule_id"`
	Label   string `json:"label"`
	Preview string `json:"preview"`
}
