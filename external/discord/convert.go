package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/runebot/internal/discord"
)

func toUser(u *discordgo.User, member *discordgo.Member) discordpkg.User {
	if u == nil {
		return discordpkg.User{}
	}
	display := u.GlobalName
	if member != nil && member.Nick != "" {
		display = member.Nick
	}
	return discordpkg.User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: display,
		AvatarURL:   u.AvatarURL(""),
		IsBot:       u.Bot,
	}
}

func toEmbeds(embeds []discordpkg.Embed) []*discordgo.MessageEmbed {
	if len(embeds) == 0 {
		return []*discordgo.MessageEmbed{}
	}
	out := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, e := range embeds {
		me := &discordgo.MessageEmbed{
			Title:       e.Title,
			Description: e.Description,
			URL:         e.URL,
			Color:       e.Color,
		}
		for _, f := range e.Fields {
			me.Fields = append(me.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
		}
		if e.ImageURL != "" {
			me.Image = &discordgo.MessageEmbedImage{URL: e.ImageURL}
		}
		if e.ThumbnailURL != "" {
			me.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.ThumbnailURL}
		}
		if e.Footer != "" {
			me.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
		}
		out = append(out, me)
	}
	return out
}

func toButtonStyle(style discordpkg.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case discordpkg.ButtonSecondary:
		return discordgo.SecondaryButton
	case discordpkg.ButtonSuccess:
		return discordgo.SuccessButton
	case discordpkg.ButtonDanger:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}

// toComponents places all buttons in a single action row.
func toComponents(buttons []discordpkg.Button) []discordgo.MessageComponent {
	if len(buttons) == 0 {
		return nil
	}
	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		row.Components = append(row.Components, discordgo.Button{
			Label:    b.Label,
			Style:    toButtonStyle(b.Style),
			CustomID: b.CustomID,
			Disabled: b.Disabled,
		})
	}
	return []discordgo.MessageComponent{row}
}

func toTextInputs(inputs []discordpkg.TextInput) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    in.CustomID,
					Label:       in.Label,
					Style:       discordgo.TextInputShort,
					Placeholder: in.Placeholder,
					MaxLength:   in.MaxLength,
				},
			},
		})
	}
	return rows
}

func responseData(msg discordpkg.Message) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    msg.Content,
		Embeds:     toEmbeds(msg.Embeds),
		Components: toComponents(msg.Buttons),
	}
	if data.Components == nil {
		data.Components = []discordgo.MessageComponent{}
	}
	if msg.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

func toOptionType(t discordpkg.OptionType) discordgo.ApplicationCommandOptionType {
	switch t {
	case discordpkg.OptionInteger:
		return discordgo.ApplicationCommandOptionInteger
	case discordpkg.OptionUser:
		return discordgo.ApplicationCommandOptionUser
	default:
		return discordgo.ApplicationCommandOptionString
	}
}

func toApplicationCommand(def discordpkg.SlashCommandDefinition) *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Name:        def.Name,
		Description: def.Description,
	}
	for _, o := range def.Options {
		opt := &discordgo.ApplicationCommandOption{
			Type:        toOptionType(o.Type),
			Name:        o.Name,
			Description: o.Description,
			Required:    o.Required,
		}
		if o.Type == discordpkg.OptionInteger && o.MaxValue > 0 {
			minValue := float64(o.MinValue)
			opt.MinValue = &minValue
			opt.MaxValue = float64(o.MaxValue)
		}
		cmd.Options = append(cmd.Options, opt)
	}
	return cmd
}

func optionValues(s *discordgo.Session, data discordgo.ApplicationCommandInteractionData) map[string]discordpkg.OptionValue {
	values := make(map[string]discordpkg.OptionValue, len(data.Options))
	for _, opt := range data.Options {
		if opt == nil {
			continue
		}
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			values[opt.Name] = discordpkg.OptionValue{String: opt.StringValue()}
		case discordgo.ApplicationCommandOptionInteger:
			values[opt.Name] = discordpkg.OptionValue{Int: opt.IntValue()}
		case discordgo.ApplicationCommandOptionUser:
			values[opt.Name] = discordpkg.OptionValue{User: resolveOptionUser(s, data, opt)}
		}
	}
	return values
}

// resolveOptionUser prefers the resolved payload sent with the interaction and
// only falls back to a REST lookup when it is missing.
func resolveOptionUser(s *discordgo.Session, data discordgo.ApplicationCommandInteractionData, opt *discordgo.ApplicationCommandInteractionDataOption) *discordpkg.User {
	id := fmt.Sprint(opt.Value)
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[id]; ok && u != nil {
			var member *discordgo.Member
			if data.Resolved.Members != nil {
				member = data.Resolved.Members[id]
			}
			user := toUser(u, member)
			return &user
		}
	}
	user := toUser(opt.UserValue(s), nil)
	if user.ID == "" {
		user.ID = id
	}
	return &user
}

func modalValues(components []discordgo.MessageComponent) map[string]string {
	values := make(map[string]string)
	var walk func([]discordgo.MessageComponent)
	walk = func(cs []discordgo.MessageComponent) {
		for _, comp := range cs {
			switch v := comp.(type) {
			case *discordgo.ActionsRow:
				walk(v.Components)
			case discordgo.ActionsRow:
				walk(v.Components)
			case *discordgo.TextInput:
				values[v.CustomID] = v.Value
			case discordgo.TextInput:
				values[v.CustomID] = v.Value
			}
		}
	}
	walk(components)
	return values
}
