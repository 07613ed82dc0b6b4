package llm

import "context"

const stubVerdict = `{
  "product_name": "Stub Product",
  "score": 55,
  "verdict_badge": "PROCEED WITH CAUTION",
  "verdict_summary": "Canned verdict from the stub provider.",
  "marketing_claim": "Best product ever made.",
  "reality_check": "This reply was generated locally without a model.",
  "reddit_consensus": "No real users were consulted."
}`

// Stub is a deterministic Provider for tests and offline development. Reply
// and Err override the canned verdict; Calls counts Generate invocations and
// LastPrompt keeps the most recent prompt for inspection.
type Stub struct {
	Reply      string
	Err        error
	Calls      int
	LastPrompt string
}

func NewStub() *Stub { return &Stub{} }

func (s *Stub) Generate(ctx context.Context, prompt string) (string, error) {
	s.Calls++
	s.LastPrompt = prompt
	if s.Err != nil {
		return "", s.Err
	}
	if s.Reply != "" {
		return s.Reply, nil
	}
	return stubVerdict, nil
}

func (s *Stub) Source() string { return "stub" }

func (s *Stub) Configured() bool { return true }
