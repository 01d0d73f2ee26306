package trigger

// Outcome of classifying an inbound webhook payload.
type Outcome int

const (
	OutcomeIgnore Outcome = iota
	OutcomeAccept
	OutcomeVerification
)

// VerificationType is the one-time subscription-verification marker Clover
// sends before it will deliver real events.
const VerificationType = "PING"

// acceptedKinds maps wire event types to trigger kinds. Adding a new
// accepted kind is a one-line edit here.
var acceptedKinds = map[string]Kind{
	"PAYMENT_CREATED": KindPaymentCreated,
	"ORDER_CREATED":   KindOrderCreated,
}

// Classification is the decision for one inbound payload.
type Classification struct {
	Outcome          Outcome
	Kind             Kind
	VerificationCode string
}

// Classify decides what to do with a decoded webhook payload. Malformed or
// unrecognized payloads classify as ignore, never as an error: the source
// platform suspends delivery on repeated non-2xx responses, so silently
// dropping garbage is the deliberate trade here.
func Classify(payload map[string]any) Classification {
	etype, _ := payload["type"].(string)

	if etype == VerificationType {
		if code, ok := payload["verificationCode"].(string); ok && code != "" {
			return Classification{Outcome: OutcomeVerification, VerificationCode: code}
		}
	}

	if kind, ok := acceptedKinds[etype]; ok {
		return Classification{Outcome: OutcomeAccept, Kind: kind}
	}

	return Classification{Outcome: OutcomeIgnore}
}
