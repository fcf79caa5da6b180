package fraud

// Presentation text for auto actions. Kept separate from the scoring
// logic so the wording can change without touching the aggregator.
var actionMessages = map[AutoAction]string{
	ActionBlock:   "AUTO-BLOCK: Order held for manual review",
	ActionAlert:   "ALERT: Critical fraud risk detected",
	ActionFlag:    "FLAG: Order flagged for verification",
	ActionVerify:  "VERIFY: Confirm customer details before dispatch",
	ActionMonitor: "MONITOR: Watch this order through fulfilment",
}

// RenderAction returns the display message for one auto action
func RenderAction(a AutoAction) string {
	if msg, ok := actionMessages[a]; ok {
		return msg
	}
	return string(a)
}

// RenderActions returns the display messages for a list of auto actions
func RenderActions(actions []AutoAction) []string {
	messages := make([]string, len(actions))
	for i, a := range actions {
		messages[i] = RenderAction(a)
	}
	return messages
}
