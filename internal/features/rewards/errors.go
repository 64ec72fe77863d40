package rewards

import "strings"

// FailureKind classifies a failed trigger so the bot can answer with the
// right chat message.
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureCooldown
	FailureEventNotFound
)

// Structured error codes the rewards API emits.
const (
	codeCooldownActive = "COOLDOWN_ACTIVE"
	codeEventNotFound  = "EVENT_NOT_FOUND"
	codeInvalidEvent   = "INVALID_EVENT"
)

// Classify inspects a failed Result. The structured code field wins when
// present; matching on error-text substrings is retained only as a
// compatibility fallback for older API versions that send bare messages.
func Classify(r Result) FailureKind {
	switch r.Code {
	case codeCooldownActive:
		return FailureCooldown
	case codeEventNotFound, codeInvalidEvent:
		return FailureEventNotFound
	}

	if strings.Contains(r.Error, "cooldown") {
		return FailureCooldown
	}
	if strings.Contains(r.Error, "not found") || strings.Contains(r.Error, "Invalid event") {
		return FailureEventNotFound
	}
	return FailureGeneric
}
