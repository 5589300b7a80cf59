package achievement

type ID string

const (
	FirstBlood      ID = "first_blood"
	TriviaMaster    ID = "trivia_master"
	QuickDraw       ID = "quick_draw"
	Perfectionist   ID = "perfectionist"
	EarlyBird       ID = "early_bird"
	Comedian        ID = "comedian"
	SocialButterfly ID = "social_butterfly"
	Dedicated       ID = "dedicated"
)

type Definition struct {
	ID          ID
	Name        string
	Description string
	Points      int
}

var catalog = []Definition{
	{ID: FirstBlood, Name: "🎯 First Blood", Description: "Answer your first trivia question correctly", Points: 5},
	{ID: TriviaMaster, Name: "🧠 Trivia Master", Description: "Answer 10 trivia questions correctly", Points: 50},
	{ID: QuickDraw, Name: "⚡ Quick Draw", Description: "Answer a trivia question in under 5 seconds", Points: 25},
	{ID: Perfectionist, Name: "💯 Perfectionist", Description: "Get 5 correct answers in a row", Points: 100},
	{ID: EarlyBird, Name: "🌅 Early Bird", Description: "Claim daily reward 7 days in a row", Points: 75},
	{ID: Comedian, Name: "😂 Comedian", Description: "Use /joke 50 times", Points: 20},
	{ID: SocialButterfly, Name: "🦋 Social Butterfly", Description: "Use 100 commands total", Points: 50},
	{ID: Dedicated, Name: "🏆 Dedicated", Description: "Reach 500 points", Points: 100},
}

var byID = func() map[ID]Definition {
	m := make(map[ID]Definition, len(catalog))
	for _, def := range catalog {
		m[def.ID] = def
	}
	return m
}()

// All returns the catalog in display order.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(id ID) (Definition, bool) {
	def, ok := byID[id]
	return def, ok
}

func Count() int {
	return len(catalog)
}
