// Package stage contains the pure business logic for the applicant workflow
// stages. This is part of the Functional Core - no I/O, only pure functions.
package stage

// Stage identifiers for the eleven-stage housing workflow, in board order.
const (
	AwaitingReferral    = "awaiting-referral"
	ApplicationPacket   = "application-packet"
	BackgroundCheck     = "background-check"
	AppealDocumentation = "appeal-documentation"
	TaxCreditPaperwork  = "tax-credit-paperwork"
	AlexiaHFProcessing  = "alexia-hf-processing"
	HFIntakePacket      = "hf-intake-packet"
	HFPacketCompletion  = "hf-packet-completion"
	VideoIntake         = "video-intake"
	LeaseSigning        = "lease-signing"
	WraparoundIntake    = "wraparound-intake"
)

// ordered is the canonical board ordering.
var ordered = []string{
	AwaitingReferral,
	ApplicationPacket,
	BackgroundCheck,
	AppealDocumentation,
	TaxCreditPaperwork,
	AlexiaHFProcessing,
	HFIntakePacket,
	HFPacketCompletion,
	VideoIntake,
	LeaseSigning,
	WraparoundIntake,
}

// titles maps stage ids to their board column titles.
var titles = map[string]string{
	AwaitingReferral:    "Waiting for JOHS Referral",
	ApplicationPacket:   "Waiting on Application Packet",
	BackgroundCheck:     "Waiting on Background Check",
	AppealDocumentation: "Waiting on Appeal Documentation",
	TaxCreditPaperwork:  "Tax Credit Paperwork Appointment",
	AlexiaHFProcessing:  "Waiting for HF Intake Packet",
	HFIntakePacket:      "HF Intake Packet Appointment",
	HFPacketCompletion:  "Waiting for Video Intake",
	VideoIntake:         "Contract and Lease Signing Meeting",
	LeaseSigning:        "Wraparound Support Appointment",
	WraparoundIntake:    "Completed",
}

// typicalDays maps stage ids to the expected working days spent in the stage.
// Zero means no time limit.
var typicalDays = map[string]int{
	AwaitingReferral:    14,
	ApplicationPacket:   10,
	BackgroundCheck:     7,
	AppealDocumentation: 10,
	TaxCreditPaperwork:  5,
	AlexiaHFProcessing:  21,
	HFIntakePacket:      14,
	HFPacketCompletion:  21,
	VideoIntake:         7,
	LeaseSigning:        0,
	WraparoundIntake:    0,
}

// First returns the stage every new applicant starts in.
func First() string {
	return ordered[0]
}

// IDs returns the stage identifiers in board order.
func IDs() []string {
	out := make([]string, len(ordered))
	copy(out, ordered)
	return out
}

// IsValid reports whether id names a known workflow stage.
func IsValid(id string) bool {
	_, ok := titles[id]
	return ok
}

// Title returns the board column title for a stage, or the id itself when the
// stage is unknown (loaded data may reference retired stages).
func Title(id string) string {
	if t, ok := titles[id]; ok {
		return t
	}
	return id
}

// TypicalDays returns the expected working days for a stage, zero when
// unknown or unlimited.
func TypicalDays(id string) int {
	return typicalDays[id]
}
