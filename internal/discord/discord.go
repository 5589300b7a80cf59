package discord

import "context"

const (
	ColorGold   = 0xF1C40F
	ColorBlue   = 0x3498DB
	ColorGreen  = 0x2ECC71
	ColorRed    = 0xE74C3C
	ColorPurple = 0x9B59B6
	ColorOrange = 0xE67E22
	ColorTeal   = 0x1ABC9C
)

type User struct {
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
	IsBot       bool
}

func (u User) Mention() string {
	return "<@" + u.ID + ">"
}

// Name prefers the display name and falls back to the username, then the id.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.ID
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

type Embed struct {
	Title        string
	Description  string
	URL          string
	Color        int
	Fields       []EmbedField
	ImageURL     string
	ThumbnailURL string
	Footer       string
}

type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

type Button struct {
	Label    string
	CustomID string
	Style    ButtonStyle
	Disabled bool
}

// Message is an outgoing message. A nil Buttons slice on an edit removes any
// existing buttons.
type Message struct {
	Content   string
	Embeds    []Embed
	Buttons   []Button
	Ephemeral bool
}

type MessageRef struct {
	ChannelID string
	MessageID string
}

type TextInput struct {
	CustomID    string
	Label       string
	Placeholder string
	MaxLength   int
}

type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

type OptionType int

const (
	OptionString OptionType = iota
	OptionInteger
	OptionUser
)

type CommandOption struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	MinValue    int
	MaxValue    int
}

type SlashCommandDefinition struct {
	Name        string
	Description string
	Options     []CommandOption
}

type OptionValue struct {
	String string
	Int    int64
	User   *User
}

// Interaction carries the reply functions shared by every interaction kind.
// Respond and Defer acknowledge the interaction and may be called only once;
// after Defer, Followup delivers the actual reply.
type Interaction struct {
	GuildID   string
	ChannelID string
	User      User

	Respond   func(msg Message) error
	Defer     func(ephemeral bool) error
	Followup  func(msg Message) (MessageRef, error)
	OpenModal func(modal Modal) error
}

type SlashCommandEvent struct {
	Interaction
	CommandName string
	Options     map[string]OptionValue
}

type ComponentEvent struct {
	Interaction
	CustomID string
	Message  MessageRef

	// UpdateMessage acknowledges by editing the message that holds the component.
	UpdateMessage func(msg Message) error
}

type ModalSubmitEvent struct {
	Interaction
	CustomID string
	Values   map[string]string
}

type MessageEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	Content   string
	Author    User
}

func (e MessageEvent) Ref() MessageRef {
	return MessageRef{ChannelID: e.ChannelID, MessageID: e.MessageID}
}

type Client interface {
	Connect(ctx context.Context) error
	Close() error
	Run(ctx context.Context) error
	BotUser() (User, error)
	SetStatus(text string) error
	RegisterSlashCommands(guildID string, defs []SlashCommandDefinition) error

	OnSlashCommand(handler func(SlashCommandEvent))
	OnComponent(handler func(ComponentEvent))
	OnModalSubmit(handler func(ModalSubmitEvent))
	OnMessage(handler func(MessageEvent))

	SendMessage(channelID string, msg Message) (MessageRef, error)
	EditMessage(ref MessageRef, msg Message) error
	AddReaction(ref MessageRef, emoji string) error
	TriggerTyping(channelID string) error
}
