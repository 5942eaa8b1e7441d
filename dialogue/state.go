package dialogue

// State is the per-chat step of the quiz conversation. Exactly one of
// the three variants below is held for a chat at any time; a chat with
// no stored session is in Start.
type State interface {
	isState()
}

// Start means no quiz conversation is pending in the chat.
type Start struct{}

// ChooseTarget means the chooser keyboard is up and the bot is waiting
// for a committee member to be picked. PromptID is the chooser message,
// deleted once a choice arrives.
type ChooseTarget struct {
	PromptID int
}

// SetQuote means a target has been picked and the bot is waiting for the
// quote text. PromptID is the "what did they say?" message, deleted once
// the quote arrives.
type SetQuote struct {
	PromptID int
	Target   string
}

func (Start) isState()        {}
func (ChooseTarget) isState() {}
func (SetQuote) isState()     {}
