// Package reviewer defines the panel of safety reviewers that inspect a
// drafted answer, the routing rules that decide which reviewers run for a
// given question, and the parsing of raw reviewer output into verdicts.
package reviewer

import (
	"constellation/internal/prompts"
)

// ID identifies a reviewer. The set is closed: adding a reviewer means
// adding a constant here and extending every switch below, which the
// exhaustiveness of the switches turns into a compile-time checklist.
type ID string

const (
	Medical         ID = "medical"
	Pediatric       ID = "pediatric"
	DrugInteraction ID = "drug_interaction"
	Legal           ID = "legal"
	Empathy         ID = "empathy"
)

// Stage groups reviewers that run concurrently. Stages execute in order:
// the foundational medical check first, specialized checks second,
// compliance and tone polish last.
type Stage int

const (
	Stage1 Stage = iota + 1
	Stage2
	Stage3
)

// All returns every reviewer in canonical stage order. Router results and
// stream events always follow this order, never match order.
func All() []ID {
	return []ID{Medical, Pediatric, DrugInteraction, Legal, Empathy}
}

// InStage returns the reviewers assigned to a stage, in canonical order.
func InStage(s Stage) []ID {
	var ids []ID
	for _, id := range All() {
		if id.Stage() == s {
			ids = append(ids, id)
		}
	}
	return ids
}

// Stage returns the execution stage for a reviewer.
func (id ID) Stage() Stage {
	switch id {
	case Medical:
		return Stage1
	case Pediatric, DrugInteraction:
		return Stage2
	case Legal, Empathy:
		return Stage3
	default:
		panic("unknown reviewer: " + string(id))
	}
}

// DisplayName returns the human-readable reviewer name used in result
// summaries and correction feedback.
func (id ID) DisplayName() string {
	switch id {
	case Medical:
		return "Medical Reviewer"
	case Pediatric:
		return "Pediatric Specialist"
	case DrugInteraction:
		return "Drug Interaction Checker"
	case Legal:
		return "Compliance Officer"
	case Empathy:
		return "Empathy Reviewer"
	default:
		panic("unknown reviewer: " + string(id))
	}
}

// AlwaysRun reports whether the reviewer runs for every request regardless
// of content.
func (id ID) AlwaysRun() bool {
	switch id {
	case Medical, Legal, Empathy:
		return true
	case Pediatric, DrugInteraction:
		return false
	default:
		panic("unknown reviewer: " + string(id))
	}
}

// Keywords returns the activation keywords for keyword-triggered reviewers.
// Matched as case-insensitive substrings against the query and the trailing
// history window. Empty for always-run reviewers.
func (id ID) Keywords() []string {
	switch id {
	case Medical, Legal, Empathy:
		return nil
	case Pediatric:
		return []string{
			"year old", "years old", "baby", "infant", "toddler",
			"child", "newborn", "pediatric", "my son", "my daughter",
		}
	case DrugInteraction:
		return []string{
			"tylenol", "advil", "ibuprofen", "acetaminophen", "aspirin",
			"medication", "medicine", "prescription", "antibiotic",
			"blood thinner", "supplement", "dosage", "dose", "pill", "drug",
		}
	default:
		panic("unknown reviewer: " + string(id))
	}
}

// PromptTemplate returns the review prompt template for the reviewer, with
// {draft} and {query} placeholders.
func (id ID) PromptTemplate() string {
	switch id {
	case Medical:
		return prompts.MedicalReview
	case Pediatric:
		return prompts.PediatricReview
	case DrugInteraction:
		return prompts.DrugInteractionReview
	case Legal:
		return prompts.LegalReview
	case Empathy:
		return prompts.EmpathyReview
	default:
		panic("unknown reviewer: " + string(id))
	}
}
