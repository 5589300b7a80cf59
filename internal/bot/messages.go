package bot

import (
	"fmt"
	"strings"
	"time"
)

const (
	messageDailyAlreadyClaimedFormat = "❌ You've already claimed your daily reward today!\nCome back tomorrow (%s)!"
	messageNoAchievements            = "You haven't unlocked any achievements yet!\nKeep playing to unlock them! 🎯"
	messageNoPointsYet               = "No one has points yet! Play trivia to earn some!"
	messageNoStatsYet                = "You haven't used any commands yet!"

	messageTriviaAlreadyActive = "❌ A trivia question is already active! Answer it first."
	messageTriviaFetchFailed   = "⚠️ Couldn't fetch a trivia question. Try again!"
	messageTriviaGone          = "⚠️ This trivia question has already been answered or expired!"
	messageTriviaAnswered      = "❌ You've already submitted an answer for this question!"
	messageTriviaFooter        = "Click the button below to submit your answer privately!"

	messageRiddleFetchFailed = "⚠️ Couldn't fetch a riddle. Try again!"
	messageRiddleFooter      = "Click the button below to reveal the answer!"
	messageRiddleRevealed    = "Answer already revealed!"

	messageDogFetchFailed  = "⚠️ Couldn't fetch a dog image right now!"
	messageMemeFetchFailed = "⚠️ Couldn't fetch a meme right now!"

	messageRollTooFewSides = "❌ Dice must have at least 2 sides!"
	messageRemindRange     = "❌ Please set a reminder between 1 and 1440 minutes (24 hours)!"
	messageRemindEmpty     = "❌ Tell me what to remind you about!"

	messageCooldown       = "⏳ Slow down a little! Try again in a few seconds."
	messageUnknownCommand = "⚠️ Unknown command."
	messageGenericFailure = "⚠️ Something went wrong. Please try again."
)

var roasts = []string{
	"{target}, you just might be why the middle finger was invented.",
	"{target}, if I were on a deserted island with you and a tin of corned beef, I'd rather eat you and talk to the corned beef.",
	"I'd smack {target}, but I'm against animal abuse.",
	"When I see {target} coming, I get pre-annoyed.",
	"If I had a dollar every time {target} shut up, I would give it back as a thank you.",
	"{target} is like a software update. Every time I see them, I think, 'Not now.'",
	"A glowstick has a brighter future than {target}.",
	"{target}'s so dense, light bends around them.",
	"I've seen more life in a cemetery than in {target}'s personality.",
	"{target}, you're the reason the gene pool needs a lifeguard.",
}

var compliments = []string{
	"{target}, you're like a ray of sunshine on a cloudy day! ☀️",
	"{target}, you're breathtaking! Keep being awesome! 🌟",
	"{target}, you light up every room you enter! ✨",
	"{target}, you're one in a million! 💎",
	"{target}, your smile is contagious! 😊",
	"{target}, you make the world a better place! 🌍",
	"{target}, you're absolutely amazing! 🎉",
	"{target}, you're proof that good people exist! 💙",
}

var eightBallAnswers = []string{
	"It is certain.", "It is decidedly so.", "Without a doubt.",
	"Yes definitely.", "You may rely on it.", "As I see it, yes.",
	"Most likely.", "Outlook good.", "Yes.", "Signs point to yes.",
	"Reply hazy, try again.", "Ask again later.", "Better not tell you now.",
	"Cannot predict now.", "Concentrate and ask again.",
	"Don't count on it.", "My reply is no.", "My sources say no.",
	"Outlook not so good.", "Very doubtful.",
}

// chatTriggers earn a 😎 reaction wherever they appear in a message.
var chatTriggers = []string{".joke", ".roast", ".trivia", ".meme"}

var leaderboardMedals = []string{"🥇", "🥈", "🥉"}

func withTarget(template, mention string) string {
	return strings.ReplaceAll(template, "{target}", mention)
}

func dailyAlreadyClaimed(next string) string {
	return fmt.Sprintf(messageDailyAlreadyClaimedFormat, next)
}

func triviaCorrect(points int, elapsed time.Duration, total int) string {
	return fmt.Sprintf("✅ **Correct!** 🎉\nYou earned **%d points**!\nResponse time: **%.2fs**\nTotal points: **%d**", points, elapsed.Seconds(), total)
}

func triviaIncorrect(answer string) string {
	return fmt.Sprintf("❌ **Incorrect!**\nYour answer: `%s`\nYou can't answer this question again!", answer)
}

func triviaWinner(mention string, elapsed time.Duration) string {
	return fmt.Sprintf("%s answered correctly in %.2fs!", mention, elapsed.Seconds())
}

func triviaTimesUp(answer string) string {
	return fmt.Sprintf("The correct answer was: **%s**", answer)
}

func reminderSet(minutes int, text string) string {
	return fmt.Sprintf("⏰ Reminder set! I'll remind you in **%d minute(s)** about: %s", minutes, text)
}

func reminderDue(mention, text string) string {
	return fmt.Sprintf("⏰ %s Reminder: **%s**", mention, text)
}

func helpFields(prefix string) [][2]string {
	return [][2]string{
		{"🎮 **Fun**", "`/joke`, `/joke_de`, `/roast`, `/compliment`, `/8ball`, `/flip`, `/roll`, `/meme`, `/riddle`"},
		{"🧠 **Trivia & Games**", "`/trivia`, `/points`, `/leaderboard`, `/profile`"},
		{"🎁 **Rewards**", "`/daily`, `/achievements`"},
		{"🐾 **Animals**", "`/catfact`, `/dog`"},
		{"💡 **Inspiration**", "`/advice`, `/quote`, `/activity`"},
		{"⏰ **Utility**", "`/remind`, `/stats`, `/help`"},
		{"💬 **AI Chat**", fmt.Sprintf("Use `%s` prefix to chat with AI (e.g., `%shello`)", prefix, prefix)},
	}
}
