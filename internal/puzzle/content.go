package puzzle

// Item is one card in the ordering puzzle.
type Item struct {
	ID    string
	Label string
}

// TimelineItems is the correct order for gift 1.
var TimelineItems = []Item{
	{ID: "met", Label: "Jhakaas photoshoot !!"},
	{ID: "joke", Label: "Cheesecake and fun"},
	{ID: "best", Label: "Mat 😭"},
	{ID: "today", Label: "Macbooook !!"},
}

// Cipher constants for gift 2.
const (
	CipherText   = "Y0U 4R3 M4G1C"
	CipherTarget = "YOUAREMAGIC"
	CipherAnswer = "YOU ARE MAGIC"
	CipherHint   = "Numbers replace letters (0→O, 4→A, 3→E, 1→I)."
)

// Question is one prompt in the choice puzzle.
type Question struct {
	ID      int
	Prompt  string
	Answers []string
}

// VibeQuestions are the gift 4 prompts.
var VibeQuestions = []Question{
	{ID: 1, Prompt: "Junoon or Sukoon?", Answers: []string{"Junoon", "Sukoon"}},
	{ID: 2, Prompt: "Mountains or sea?", Answers: []string{"Mountains", "Sea"}},
	{ID: 3, Prompt: "FC Road or JM Road?", Answers: []string{"FC Road", "JM Road"}},
	{ID: 4, Prompt: "Plan or spontaneity?", Answers: []string{"Plan", "Spontaneous"}},
}
