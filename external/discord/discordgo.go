package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/runebot/internal/discord"
)

const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent |
	discordgo.IntentsGuildMembers

type Client struct {
	token string

	mu      sync.Mutex
	session *discordgo.Session
	botUser *discordgo.User

	onSlash     func(discordpkg.SlashCommandEvent)
	onComponent func(discordpkg.ComponentEvent)
	onModal     func(discordpkg.ModalSubmitEvent)
	onMessage   func(discordpkg.MessageEvent)
}

func NewClient(token string) discordpkg.Client {
	return &Client{token: token}
}

// Connect opens a fresh gateway session, replacing any previous one. Handlers
// registered earlier are attached to the new session.
func (c *Client) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close previous discord session", "error", err)
	}

	s, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return err
	}
	s.Identify.Intents = discordgo.MakeIntent(intents)
	s.AddHandler(c.dispatchInteraction)
	s.AddHandler(c.dispatchMessage)
	if err := s.Open(); err != nil {
		return err
	}

	c.mu.Lock()
	c.session = s
	c.botUser = nil
	c.mu.Unlock()

	if _, err := c.BotUser(); err != nil {
		return err
	}
	return nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()
	if s != nil {
		return s.Close()
	}
	return nil
}

// Run blocks until ctx is cancelled. discordgo reconnects the gateway on its
// own, so there is nothing else to wait for.
func (c *Client) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (c *Client) current() (*discordgo.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, fmt.Errorf("discord session is not initialized")
	}
	return c.session, nil
}

func (c *Client) BotUser() (discordpkg.User, error) {
	s, err := c.current()
	if err != nil {
		return discordpkg.User{}, err
	}

	c.mu.Lock()
	cached := c.botUser
	c.mu.Unlock()
	if cached != nil {
		return toUser(cached, nil), nil
	}

	var u *discordgo.User
	if s.State != nil && s.State.User != nil && s.State.User.ID != "" {
		u = s.State.User
	} else {
		u, err = s.User("@me")
		if err != nil {
			return discordpkg.User{}, err
		}
	}
	c.mu.Lock()
	c.botUser = u
	c.mu.Unlock()
	return toUser(u, nil), nil
}

func (c *Client) SetStatus(text string) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.UpdateGameStatus(0, text)
}

// RegisterSlashCommands replaces the application's command set. An empty
// guildID registers global commands.
func (c *Client) RegisterSlashCommands(guildID string, defs []discordpkg.SlashCommandDefinition) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	appID := applicationID(s)
	if appID == "" {
		return fmt.Errorf("discord application id is not available")
	}
	cmds := make([]*discordgo.ApplicationCommand, 0, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			continue
		}
		cmds = append(cmds, toApplicationCommand(def))
	}
	_, err = s.ApplicationCommandBulkOverwrite(appID, guildID, cmds)
	return err
}

func applicationID(s *discordgo.Session) string {
	if s == nil || s.State == nil {
		return ""
	}
	if s.State.Application != nil && s.State.Application.ID != "" {
		return s.State.Application.ID
	}
	if s.State.User != nil {
		return s.State.User.ID
	}
	return ""
}

func (c *Client) OnSlashCommand(handler func(discordpkg.SlashCommandEvent)) {
	c.mu.Lock()
	c.onSlash = handler
	c.mu.Unlock()
}

func (c *Client) OnComponent(handler func(discordpkg.ComponentEvent)) {
	c.mu.Lock()
	c.onComponent = handler
	c.mu.Unlock()
}

func (c *Client) OnModalSubmit(handler func(discordpkg.ModalSubmitEvent)) {
	c.mu.Lock()
	c.onModal = handler
	c.mu.Unlock()
}

func (c *Client) OnMessage(handler func(discordpkg.MessageEvent)) {
	c.mu.Lock()
	c.onMessage = handler
	c.mu.Unlock()
}

func (c *Client) dispatchInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic == nil || ic.Interaction == nil {
		return
	}
	base := newInteraction(s, ic)
	if base.User.ID == "" {
		return
	}

	c.mu.Lock()
	onSlash, onComponent, onModal := c.onSlash, c.onComponent, c.onModal
	c.mu.Unlock()

	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		if onSlash == nil {
			return
		}
		data := ic.ApplicationCommandData()
		if data.Name == "" {
			return
		}
		slog.Info("slash command interaction received", "guild_id", ic.GuildID, "channel_id", ic.ChannelID, "command", data.Name, "user_id", base.User.ID)
		onSlash(discordpkg.SlashCommandEvent{
			Interaction: base,
			CommandName: data.Name,
			Options:     optionValues(s, data),
		})
	case discordgo.InteractionMessageComponent:
		if onComponent == nil {
			return
		}
		data := ic.MessageComponentData()
		ref := discordpkg.MessageRef{ChannelID: ic.ChannelID}
		if ic.Message != nil {
			ref.MessageID = ic.Message.ID
		}
		slog.Debug("component interaction received", "guild_id", ic.GuildID, "custom_id", data.CustomID, "user_id", base.User.ID)
		onComponent(discordpkg.ComponentEvent{
			Interaction: base,
			CustomID:    data.CustomID,
			Message:     ref,
			UpdateMessage: func(msg discordpkg.Message) error {
				return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseUpdateMessage,
					Data: responseData(msg),
				})
			},
		})
	case discordgo.InteractionModalSubmit:
		if onModal == nil {
			return
		}
		data := ic.ModalSubmitData()
		slog.Debug("modal submission received", "guild_id", ic.GuildID, "custom_id", data.CustomID, "user_id", base.User.ID)
		onModal(discordpkg.ModalSubmitEvent{
			Interaction: base,
			CustomID:    data.CustomID,
			Values:      modalValues(data.Components),
		})
	}
}

func newInteraction(s *discordgo.Session, ic *discordgo.InteractionCreate) discordpkg.Interaction {
	var user discordpkg.User
	if ic.Member != nil && ic.Member.User != nil {
		user = toUser(ic.Member.User, ic.Member)
	} else if ic.User != nil {
		user = toUser(ic.User, nil)
	}
	return discordpkg.Interaction{
		GuildID:   ic.GuildID,
		ChannelID: ic.ChannelID,
		User:      user,
		Respond: func(msg discordpkg.Message) error {
			return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: responseData(msg),
			})
		},
		Defer: func(ephemeral bool) error {
			data := &discordgo.InteractionResponseData{}
			if ephemeral {
				data.Flags = discordgo.MessageFlagsEphemeral
			}
			return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
				Data: data,
			})
		},
		Followup: func(msg discordpkg.Message) (discordpkg.MessageRef, error) {
			params := &discordgo.WebhookParams{
				Content:    msg.Content,
				Embeds:     toEmbeds(msg.Embeds),
				Components: toComponents(msg.Buttons),
			}
			if msg.Ephemeral {
				params.Flags = discordgo.MessageFlagsEphemeral
			}
			m, err := s.FollowupMessageCreate(ic.Interaction, true, params)
			if err != nil {
				return discordpkg.MessageRef{}, err
			}
			return discordpkg.MessageRef{ChannelID: m.ChannelID, MessageID: m.ID}, nil
		},
		OpenModal: func(modal discordpkg.Modal) error {
			return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseModal,
				Data: &discordgo.InteractionResponseData{
					CustomID:   modal.CustomID,
					Title:      modal.Title,
					Components: toTextInputs(modal.Inputs),
				},
			})
		},
	}
}

func (c *Client) dispatchMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil || m.Author == nil {
		return
	}
	c.mu.Lock()
	onMessage := c.onMessage
	c.mu.Unlock()
	if onMessage == nil {
		return
	}
	onMessage(discordpkg.MessageEvent{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Content:   m.Content,
		Author:    toUser(m.Author, m.Member),
	})
}

func (c *Client) SendMessage(channelID string, msg discordpkg.Message) (discordpkg.MessageRef, error) {
	s, err := c.current()
	if err != nil {
		return discordpkg.MessageRef{}, err
	}
	m, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    msg.Content,
		Embeds:     toEmbeds(msg.Embeds),
		Components: toComponents(msg.Buttons),
	})
	if err != nil {
		return discordpkg.MessageRef{}, err
	}
	return discordpkg.MessageRef{ChannelID: m.ChannelID, MessageID: m.ID}, nil
}

func (c *Client) EditMessage(ref discordpkg.MessageRef, msg discordpkg.Message) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	embeds := toEmbeds(msg.Embeds)
	components := toComponents(msg.Buttons)
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	edit := &discordgo.MessageEdit{
		ID:         ref.MessageID,
		Channel:    ref.ChannelID,
		Embeds:     &embeds,
		Components: &components,
	}
	if msg.Content != "" {
		edit.Content = &msg.Content
	}
	_, err = s.ChannelMessageEditComplex(edit)
	return err
}

func (c *Client) AddReaction(ref discordpkg.MessageRef, emoji string) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.MessageReactionAdd(ref.ChannelID, ref.MessageID, emoji)
}

func (c *Client) TriggerTyping(channelID string) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.ChannelTyping(channelID)
}
