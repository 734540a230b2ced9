package core

// ConversationState identifies where a session currently sits in the guided
// lead-qualification flow. The set is closed; no state is terminal. The
// dialogue engine always yields a next state, so a conversation cycles until
// its session expires or is reset.
type ConversationState string

const (
	// StateAskingLanguage is the entry state of a freshly created session.
	// The bot waits for the user to pick (or reveal) a language.
	StateAskingLanguage ConversationState = "asking_language"
	// StateIdle is the resting state between guided flows.
	StateIdle ConversationState = "idle"
	// StateAskingName collects the client name for a project inquiry.
	StateAskingName ConversationState = "asking_name"
	// StateAskingEmail collects a contact email.
	StateAskingEmail ConversationState = "asking_email"
	// StateAskingBudget collects a budget estimate as raw text.
	StateAskingBudget ConversationState = "asking_budget"
	// StateAskingProjectDetails collects free-form requirements; leaving this
	// state finalizes the lead.
	StateAskingProjectDetails ConversationState = "asking_project_details"
	// StateAskingProjectConfirmation asks whether a pricing question should
	// turn into a full project inquiry.
	StateAskingProjectConfirmation ConversationState = "asking_project_confirmation"
)

// String implements fmt.Stringer.
func (s ConversationState) String() string { return string(s) }
