package domain

import "time"

// HaltReason tells why a run stopped.
type HaltReason string

const (
	HaltAccepted        HaltReason = "accepted"         // current state is an end state
	HaltRuleNotFound    HaltReason = "rule_not_found"   // no rule matched the configuration
	HaltBudgetExhausted HaltReason = "budget_exhausted" // maxSteps transitions executed
)

// Mapping categories used in SimulationResult.EncodedRulesMappings.
const (
	MappingStates     = "states"
	MappingSymbols    = "symbols"
	MappingDirections = "directions"
)

// SimulationResult is the structured outcome of one run.
type SimulationResult struct {
	Accepted bool       `json:"accepted"`
	Reason   HaltReason `json:"halt_reason"`
	Steps    int        `json:"steps"`

	// FinalReturnContent is the blank-stripped content of the output tape.
	FinalReturnContent string `json:"final_return_content"`
	// InitialInput is the original input of the input tape.
	InitialInput string `json:"initial_input"`

	// RulesExecuted describes every rule that fired, in order.
	RulesExecuted []string `json:"rules_executed"`

	// EncodedRulesBinary encodes the whole defined rule set, not only what fired.
	EncodedRulesBinary string `json:"encoded_rules_binary"`
	// EncodedRulesMappings holds the integer tables of the executed rules, keyed
	// by MappingStates, MappingSymbols and MappingDirections.
	EncodedRulesMappings map[string]map[string]string `json:"encoded_rules_mappings"`
}

// RunRecord is a persisted SimulationResult.
type RunRecord struct {
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Result    *SimulationResult `json:"result"`
}
