package shared

// ConfirmationPolicy specifies how workflows handle overwrite confirmations.
type ConfirmationPolicy int

const (
	// ConfirmationPrompt indicates the workflow should prompt the user.
	ConfirmationPrompt ConfirmationPolicy = iota
	// ConfirmationAssumeYes indicates the workflow should continue without prompting.
	ConfirmationAssumeYes
)

// ConfirmationPolicyFromBool converts a --yes flag into a policy.
func ConfirmationPolicyFromBool(assumeYes bool) ConfirmationPolicy {
	if assumeYes {
		return ConfirmationAssumeYes
	}
	return ConfirmationPrompt
}

// ShouldPrompt reports whether the workflow must prompt the user.
func (policy ConfirmationPolicy) ShouldPrompt() bool {
	return policy != ConfirmationAssumeYes
}

// Outcome is the only result a workflow entry point reports to its caller.
type Outcome int

// Workflow outcomes.
const (
	OutcomeCompleted Outcome = iota
	OutcomeCancelled
	OutcomeFailed
)

// String returns the lowercase outcome name.
func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}
