package review

// Phase is the state of one card's lifecycle. Within a card, phases
// run strictly in order; the only shortcut is the automatic timeout
// from reflection straight to feedback-incorrect.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseListeningWord     Phase = "listening-word"
	PhaseListeningContext  Phase = "listening-context"
	PhaseReflection        Phase = "reflection"
	PhaseAnswer            Phase = "answer"
	PhaseFeedbackCorrect   Phase = "feedback-correct"
	PhaseFeedbackIncorrect Phase = "feedback-incorrect"
)

// InputMode selects how the answer is captured. Typed input is graded
// exactly; transcribed voice input is graded with fuzzy matching.
type InputMode string

const (
	InputModeText  InputMode = "text"
	InputModeVoice InputMode = "voice"
)

// Feedback is the grading outcome shown for the current card.
type Feedback string

const (
	FeedbackNone      Feedback = ""
	FeedbackCorrect   Feedback = "correct"
	FeedbackIncorrect Feedback = "incorrect"
)
