// cmd/veritas/formatter.go
package main

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Formatter builds Discord embeds and navigation components
type Formatter struct {
	maxFieldLength int
}

// NewFormatter creates a formatter
func NewFormatter() *Formatter {
	return &Formatter{
		maxFieldLength: 1024, // Discord's field limit
	}
}

// TopicLabel renders the statement's key terms as a display topic
func (f *Formatter) TopicLabel(statement string) string {
	terms := ExtractKeyTerms(statement)
	if len(terms) == 0 {
		return truncate(statement, 60)
	}
	if len(terms) > 4 {
		terms = terms[:4]
	}
	return titleCaser.String(strings.Join(terms, " "))
}

// ClaimPageEmbed renders one structured fact-check page
func (f *Formatter) ClaimPageEmbed(statement string, page Page) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🔎 Fact Check",
		URL:         page.SourceURL,
		Description: fmt.Sprintf("**Statement:** %s\n\n**Claim:** %s", truncate(statement, 300), page.Content),
		Color:       page.Verdict.Color(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Verdict",
				Value:  fmt.Sprintf("%s %s", page.Verdict.Emoji(), page.Verdict),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d of %d • Veritas v%s", page.Index+1, page.Total, VERSION),
		},
	}

	if page.RawRating != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Rating",
			Value:  truncate(page.RawRating, f.maxFieldLength),
			Inline: true,
		})
	}
	if page.Publisher != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Publisher",
			Value:  page.Publisher,
			Inline: true,
		})
	}
	if page.ReviewDate != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Reviewed",
			Value:  page.ReviewDate,
			Inline: true,
		})
	}
	return embed
}

// SummaryPageEmbed renders one encyclopedia context page
func (f *Formatter) SummaryPageEmbed(statement string, page Page) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📚 Context: %s", page.Publisher),
		URL:         page.SourceURL,
		Description: page.Content,
		Color:       ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Statement",
				Value: truncate(statement, f.maxFieldLength),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("No published fact check found • Page %d of %d", page.Index+1, page.Total),
		},
	}
}

// FreeformEmbed renders the AI classifier's answer
func (f *Formatter) FreeformEmbed(statement string, answer *FreeformAnswer) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🤖 AI Assessment",
		Description: fmt.Sprintf("**Statement:** %s", truncate(statement, 300)),
		Color:       answer.Verdict.Color(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Verdict",
				Value:  fmt.Sprintf("%s %s", answer.Verdict.Emoji(), answer.Verdict),
				Inline: true,
			},
			{
				Name:  "Reason",
				Value: truncate(answer.Reason, f.maxFieldLength),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("No published fact check found • Veritas v%s", VERSION),
		},
	}

	if len(answer.Sources) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Sources",
			Value: truncate(strings.Join(answer.Sources, "\n"), f.maxFieldLength),
		})
	}
	return embed
}

// NoResultsEmbed renders the clean nothing-found outcome
func (f *Formatter) NoResultsEmbed(statement string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔎 Fact Check",
		Description: fmt.Sprintf("No fact checks, assessments or context found for:\n> %s", truncate(statement, 300)),
		Color:       ColorOther,
	}
}

// AddRelatedCoverage appends related headlines to an embed
func (f *Formatter) AddRelatedCoverage(embed *discordgo.MessageEmbed, links []NewsLink) {
	if len(links) == 0 {
		return
	}
	var lines []string
	for _, link := range links {
		lines = append(lines, fmt.Sprintf("[%s](%s)", truncate(link.Title, 90), link.URL))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Related coverage",
		Value: truncate(strings.Join(lines, "\n"), f.maxFieldLength),
	})
}

// NavComponents builds the Prev/Next/First button row. Disabled-state
// follows the current index; passing expired disables everything.
func (f *Formatter) NavComponents(index, total int, expired bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "◀ Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: ButtonIDPrev,
					Disabled: expired || index <= 0,
				},
				discordgo.Button{
					Label:    "Next ▶",
					Style:    discordgo.SecondaryButton,
					CustomID: ButtonIDNext,
					Disabled: expired || index >= total-1,
				},
				discordgo.Button{
					Label:    "⏮ First",
					Style:    discordgo.PrimaryButton,
					CustomID: ButtonIDFirst,
					Disabled: expired || index == 0,
				},
			},
		},
	}
}

// AlertEmbed renders a watch alert for a flagged user
func (f *Formatter) AlertEmbed(sourceChannelID, userID string, outcome *PipelineOutcome) *discordgo.MessageEmbed {
	verdict := outcome.Verdict()

	embed := &discordgo.MessageEmbed{
		Title: "🚨 Watch Alert",
		Description: fmt.Sprintf("Recent messages from <@%s> in <#%s> were rated **%s**.",
			userID, sourceChannelID, verdict),
		Color: verdict.Color(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Checked statement",
				Value: truncate(outcome.Statement, f.maxFieldLength),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Topic: %s", f.TopicLabel(outcome.Statement)),
		},
	}

	switch outcome.Kind {
	case OutcomeStructured:
		page := outcome.Pages[0]
		value := page.RawRating
		if page.Publisher != "" {
			value = fmt.Sprintf("%s — %s", value, page.Publisher)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Fact check",
			Value: truncate(value, f.maxFieldLength),
		})
	case OutcomeFreeform:
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Assessment",
			Value: truncate(outcome.Answer.Reason, f.maxFieldLength),
		})
	}
	return embed
}

// truncate shortens s to at most n bytes, ellipsized. Cuts land on rune
// boundaries so the result stays valid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:runeBoundary(s, n)]
	}
	return s[:runeBoundary(s, n-3)] + "..."
}

// discordRenderer edits the bound Discord message for a session
type discordRenderer struct {
	session   *discordgo.Session
	formatter *Formatter
}

// NewDiscordRenderer creates the Discord-backed session renderer
func NewDiscordRenderer(session *discordgo.Session, formatter *Formatter) SessionRenderer {
	return &discordRenderer{session: session, formatter: formatter}
}

func (r *discordRenderer) edit(sess *Session, page Page, expired bool) error {
	var embed *discordgo.MessageEmbed
	if sess.Kind == OutcomeEncyclopedia {
		embed = r.formatter.SummaryPageEmbed(sess.Statement, page)
	} else {
		embed = r.formatter.ClaimPageEmbed(sess.Statement, page)
	}

	_, err := r.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    sess.ChannelID,
		ID:         sess.MessageID,
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: r.formatter.NavComponents(page.Index, page.Total, expired),
	})
	return err
}

func (r *discordRenderer) RenderPage(sess *Session, page Page) error {
	return r.edit(sess, page, false)
}

func (r *discordRenderer) DisableControls(sess *Session, page Page) error {
	return r.edit(sess, page, true)
}

// discordAlertSink delivers watch alerts through Discord
type discordAlertSink struct {
	session   *discordgo.Session
	formatter *Formatter
}

// NewDiscordAlertSink creates the Discord-backed alert sink
func NewDiscordAlertSink(session *discordgo.Session, formatter *Formatter) AlertSink {
	return &discordAlertSink{session: session, formatter: formatter}
}

func (a *discordAlertSink) SendAlert(alertChannelID, sourceChannelID, userID string, outcome *PipelineOutcome) error {
	embed := a.formatter.AlertEmbed(sourceChannelID, userID, outcome)
	if _, err := a.session.ChannelMessageSendEmbed(alertChannelID, embed); err != nil {
		return NewError(ErrorTypeDiscord, "", "failed to send alert", err)
	}
	GetState().RecordAlert()
	return nil
}
