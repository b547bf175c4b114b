// cmd/veritas/pipeline.go
package main

import (
	"context"
	"strings"
)

// OutcomeKind identifies which fallback tier produced the result
type OutcomeKind int

const (
	OutcomeStructured OutcomeKind = iota
	OutcomeFreeform
	OutcomeEncyclopedia
	OutcomeNoResults
	OutcomeFailure
)

// PipelineOutcome carries the result of one fact-check pipeline run.
// Exactly one of Pages, Answer or Summaries is populated, per Kind.
type PipelineOutcome struct {
	Kind      OutcomeKind
	Statement string
	Pages     []Page
	Answer    *FreeformAnswer
	Summaries []WikiSummary
	Err       error
}

// Verdict returns the overall verdict of the outcome
func (o *PipelineOutcome) Verdict() Verdict {
	switch o.Kind {
	case OutcomeStructured:
		if len(o.Pages) > 0 {
			return o.Pages[0].Verdict
		}
	case OutcomeFreeform:
		if o.Answer != nil {
			return o.Answer.Verdict
		}
	}
	return VerdictOther
}

// StructuredSource searches published fact checks for a statement
type StructuredSource interface {
	Search(ctx context.Context, statement string) ([]ClaimResult, error)
}

// FreeformSource classifies a statement through a completion service
type FreeformSource interface {
	Classify(ctx context.Context, statement string) (*FreeformAnswer, error)
}

// SummarySource finds encyclopedia context for a statement
type SummarySource interface {
	Summaries(ctx context.Context, statement string) ([]WikiSummary, error)
}

// Pipeline runs the tiered fallback chain: structured fact checks first,
// then AI classification, then encyclopedia summaries. A nil source skips
// its tier.
type Pipeline struct {
	facts StructuredSource
	ai    FreeformSource
	wiki  SummarySource
}

// NewPipeline assembles a fallback pipeline from its claim sources
func NewPipeline(facts StructuredSource, ai FreeformSource, wiki SummarySource) *Pipeline {
	return &Pipeline{facts: facts, ai: ai, wiki: wiki}
}

// Run checks a statement against each tier in priority order, stopping at
// the first tier that yields usable results. A transport failure in one
// tier falls through to the next; the recorded error surfaces only when
// every tier fails.
func (p *Pipeline) Run(ctx context.Context, statement string) *PipelineOutcome {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return &PipelineOutcome{
			Kind: OutcomeFailure,
			Err:  NewError(ErrorTypeInput, ErrCodeEmptyInput, "statement is empty", nil),
		}
	}

	outcome := &PipelineOutcome{Statement: statement}
	var firstErr error

	if p.facts != nil {
		results, err := p.facts.Search(ctx, statement)
		if err != nil {
			Logger().Warning("Structured fact check failed, falling through: %v", err)
			firstErr = err
		} else if len(results) > 0 {
			outcome.Kind = OutcomeStructured
			outcome.Pages = Paginate(results)
			return outcome
		}
	}

	if p.ai != nil {
		answer, err := p.ai.Classify(ctx, statement)
		if err != nil {
			Logger().Warning("AI classification failed, falling through: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		} else if answer != nil {
			outcome.Kind = OutcomeFreeform
			outcome.Answer = answer
			return outcome
		}
	}

	if p.wiki != nil {
		summaries, err := p.wiki.Summaries(ctx, statement)
		if err != nil {
			Logger().Warning("Encyclopedia lookup failed: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		} else if len(summaries) > 0 {
			outcome.Kind = OutcomeEncyclopedia
			outcome.Summaries = summaries
			return outcome
		}
	}

	// Every tier came back empty. Only report a failure when at least one
	// tier actually broke; otherwise this is a clean no-results outcome.
	if firstErr != nil {
		outcome.Kind = OutcomeFailure
		outcome.Err = firstErr
	} else {
		outcome.Kind = OutcomeNoResults
	}
	return outcome
}
