package reviewer

import (
	"encoding/json"
	"strings"
)

// ParseVerdict turns a reviewer's raw response into a Verdict. It never
// fails: models do not reliably honor formatting instructions, so malformed
// output degrades to a heuristic verdict instead of a hard error.
//
// The strict decode and the heuristic classifier are separate functions with
// the fallback boundary visible here.
func ParseVerdict(raw string) Verdict {
	v, err := DecodeVerdict(StripFence(raw))
	if err != nil {
		return ClassifyHeuristic(raw)
	}
	return v
}

// StripFence removes a leading/trailing markdown code-fence wrapper, with an
// optional language tag on the opening fence. Input without a fence is
// returned trimmed.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.TrimSpace(strings.Join(lines[1:end], "\n"))
}

// DecodeVerdict strictly decodes text as a verdict object. Unknown extra
// fields pass through silently; anything that is not a JSON object fails.
func DecodeVerdict(s string) (Verdict, error) {
	var v Verdict
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return Verdict{}, err
	}
	return v, nil
}

// ClassifyHeuristic synthesizes a verdict from free-form reviewer text: a
// response mentioning SAFE without UNSAFE is taken as approval, anything
// else is flagged for review with the raw text as reasoning.
func ClassifyHeuristic(raw string) Verdict {
	upper := strings.ToUpper(raw)
	if strings.Contains(upper, "SAFE") && !strings.Contains(upper, "UNSAFE") {
		return Verdict{
			Status:    StatusSafe,
			Reasoning: "Response appears acceptable.",
		}
	}
	return Verdict{
		Status:     StatusUnsafe,
		Reasoning:  raw,
		Suggestion: "Review needed.",
	}
}
