package reviewer

import "testing"

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Verdict
	}{
		{
			name:     "plain JSON",
			raw:      `{"status": "SAFE", "reasoning": "Accurate and appropriately cautious."}`,
			expected: Verdict{Status: StatusSafe, Reasoning: "Accurate and appropriately cautious."},
		},
		{
			name: "fenced JSON with language tag",
			raw: "```json\n" +
				`{"status": "UNSAFE", "reasoning": "Recommends a dosage.", "suggestion": "Remove the dosage."}` +
				"\n```",
			expected: Verdict{Status: StatusUnsafe, Reasoning: "Recommends a dosage.", Suggestion: "Remove the dosage."},
		},
		{
			name:     "fenced JSON without language tag",
			raw:      "```\n{\"status\": \"SAFE\", \"reasoning\": \"fine\"}\n```",
			expected: Verdict{Status: StatusSafe, Reasoning: "fine"},
		},
		{
			name:     "free text mentioning SAFE falls back to approval",
			raw:      "This response is SAFE, no concerns.",
			expected: Verdict{Status: StatusSafe, Reasoning: "Response appears acceptable."},
		},
		{
			name:  "free text mentioning UNSAFE is flagged",
			raw:   "I find this UNSAFE because it diagnoses.",
			expected: Verdict{
				Status:     StatusUnsafe,
				Reasoning:  "I find this UNSAFE because it diagnoses.",
				Suggestion: "Review needed.",
			},
		},
		{
			name:  "unparseable text is flagged with the raw text preserved",
			raw:   "I'm not sure what to make of this.",
			expected: Verdict{
				Status:     StatusUnsafe,
				Reasoning:  "I'm not sure what to make of this.",
				Suggestion: "Review needed.",
			},
		},
		{
			name: "malformed JSON mentioning both verdicts is flagged",
			raw:  `{"status": SAFE-ish, maybe UNSAFE}`,
			expected: Verdict{
				Status:     StatusUnsafe,
				Reasoning:  `{"status": SAFE-ish, maybe UNSAFE}`,
				Suggestion: "Review needed.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseVerdict(tt.raw)
			if got != tt.expected {
				t.Errorf("ParseVerdict() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"fence with tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence without tag", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"unterminated fence keeps body", "```json\n{\"a\": 1}", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFence(tt.input); got != tt.expected {
				t.Errorf("StripFence(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
