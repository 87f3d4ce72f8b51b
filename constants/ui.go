package constants

// Window
const (
	AppTitle = "Disappearing Text App"

	// MinWidth and MinHeight are the smallest usable terminal size
	MinWidth  = 60
	MinHeight = 20
)

// Passage text
var InstructionalText = []string{
	"This app will keep your text as long as you keep typing.",
	"After one second of no activity, the text will be deleted.",
	"Start typing in the text box below.",
}

const TestPassage = "Good Luck. After one second of inactivity, your work will disappear."

// Labels
const (
	TimeLabelPrefix      = "Time: "
	HighScoreLabelPrefix = "High Score: "
	EntryPrompt          = "Please enter text:"
	ResetButtonText      = "[ Reset ]"
	HelpLine             = "Ctrl+R reset  Esc quit"
)

// Layout padding (cells)
const (
	PadX         = 3
	PadY         = 1
	PassageLines = 4
)
