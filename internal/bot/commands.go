package bot

import (
	"github.com/foxseedlab/runebot/internal/discord"
	"github.com/foxseedlab/runebot/internal/reminder"
)

const (
	cmdDaily        = "daily"
	cmdAchievements = "achievements"
	cmdProfile      = "profile"
	cmdPoints       = "points"
	cmdLeaderboard  = "leaderboard"
	cmdStats        = "stats"
	cmdTrivia       = "trivia"
	cmdRiddle       = "riddle"
	cmdJoke         = "joke"
	cmdJokeDE       = "joke_de"
	cmdRoast        = "roast"
	cmdCompliment   = "compliment"
	cmdCatFact      = "catfact"
	cmdDog          = "dog"
	cmdAdvice       = "advice"
	cmdQuote        = "quote"
	cmdMeme         = "meme"
	cmdActivity     = "activity"
	cmdEightBall    = "8ball"
	cmdFlip         = "flip"
	cmdRoll         = "roll"
	cmdRemind       = "remind"
	cmdHelp         = "help"
)

const (
	optUser     = "user"
	optQuestion = "question"
	optSides    = "sides"
	optMinutes  = "minutes"
	optMessage  = "message"

	defaultDiceSides = 6
	leaderboardSize  = 10
)

func userOption(description string) discord.CommandOption {
	return discord.CommandOption{Name: optUser, Description: description, Type: discord.OptionUser}
}

func SlashCommandDefinitions() []discord.SlashCommandDefinition {
	return []discord.SlashCommandDefinition{
		{Name: cmdDaily, Description: "Claim your daily reward! 🎁"},
		{Name: cmdAchievements, Description: "View your achievements 🏆"},
		{Name: cmdProfile, Description: "View your complete profile 👤", Options: []discord.CommandOption{userOption("User to view (optional)")}},
		{Name: cmdPoints, Description: "Check your points or someone else's 🏆", Options: []discord.CommandOption{userOption("User to check points for (optional)")}},
		{Name: cmdLeaderboard, Description: "View the top 10 users by points 📊"},
		{Name: cmdStats, Description: "View your bot usage statistics 📊"},
		{Name: cmdTrivia, Description: "Start a trivia question with button answers! 🧠"},
		{Name: cmdRiddle, Description: "Get a riddle to solve! 🤔"},
		{Name: cmdJoke, Description: "Get a random joke"},
		{Name: cmdJokeDE, Description: "Bekomme einen deutschen Witz"},
		{Name: cmdRoast, Description: "Roast someone with a savage burn 🔥", Options: []discord.CommandOption{userOption("The user to roast (optional)")}},
		{Name: cmdCompliment, Description: "Give someone a wholesome compliment 💙", Options: []discord.CommandOption{userOption("The user to compliment (optional)")}},
		{Name: cmdCatFact, Description: "Get a random cat fact 🐱"},
		{Name: cmdDog, Description: "Get a random dog picture 🐕"},
		{Name: cmdAdvice, Description: "Get random life advice 💡"},
		{Name: cmdQuote, Description: "Get an inspirational quote ✨"},
		{Name: cmdMeme, Description: "Get a random meme from Reddit 😂"},
		{Name: cmdActivity, Description: "Get a random activity suggestion when you're bored 🎯"},
		{Name: cmdEightBall, Description: "Ask the magic 8-ball a yes/no question 🎱", Options: []discord.CommandOption{
			{Name: optQuestion, Description: "Your yes/no question", Type: discord.OptionString, Required: true},
		}},
		{Name: cmdFlip, Description: "Flip a coin 🪙"},
		{Name: cmdRoll, Description: "Roll a dice 🎲", Options: []discord.CommandOption{
			{Name: optSides, Description: "Number of sides (default: 6)", Type: discord.OptionInteger},
		}},
		{Name: cmdRemind, Description: "Set a reminder ⏰", Options: []discord.CommandOption{
			{Name: optMinutes, Description: "Minutes from now", Type: discord.OptionInteger, Required: true, MinValue: reminder.MinMinutes, MaxValue: reminder.MaxMinutes},
			{Name: optMessage, Description: "What to remind you about", Type: discord.OptionString, Required: true},
		}},
		{Name: cmdHelp, Description: "View all available commands 📖"},
	}
}
