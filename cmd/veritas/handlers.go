// cmd/veritas/handlers.go
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Bot wires the fact-check pipeline to the Discord transport
type Bot struct {
	cfg       *Config
	discord   *discordgo.Session
	pipeline  *Pipeline
	sessions  *SessionManager
	limiter   *CooldownLimiter
	watcher   *Watcher
	formatter *Formatter
	news      *NewsClient
	articles  *ArticleResolver
}

// NewBot assembles the bot from its components
func NewBot(cfg *Config, discord *discordgo.Session, pipeline *Pipeline, sessions *SessionManager,
	limiter *CooldownLimiter, watcher *Watcher, formatter *Formatter) *Bot {
	b := &Bot{
		cfg:       cfg,
		discord:   discord,
		pipeline:  pipeline,
		sessions:  sessions,
		limiter:   limiter,
		watcher:   watcher,
		formatter: formatter,
		articles:  NewArticleResolver(),
	}
	if cfg.EnableRelatedNews {
		b.news = NewNewsClient()
	}
	return b
}

// AddHandlers registers the Discord event handlers
func (b *Bot) AddHandlers() {
	b.discord.AddHandler(b.handleReady)
	b.discord.AddHandler(b.handleMessageCreate)
	b.discord.AddHandler(b.handleInteractionCreate)
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	Logger().Info("Logged in as %s#%s", r.User.Username, r.User.Discriminator)
	if err := s.UpdateGameStatus(0, "Checking facts | /factcheck"); err != nil {
		Logger().Warning("Failed to update status: %v", err)
	}
}

// handleMessageCreate serves the prefix-command path and feeds the watcher
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	trigger := b.cfg.CommandPrefix + "factcheck"
	if m.Content != trigger && !strings.HasPrefix(m.Content, trigger+" ") {
		b.watcher.Observe(m.ChannelID, m.Author.ID, m.Content)
		return
	}

	statement := strings.TrimSpace(strings.TrimPrefix(m.Content, trigger))
	if statement == "" && m.ReferencedMessage != nil {
		// Bare trigger on a reply checks the replied-to message
		statement = strings.TrimSpace(m.ReferencedMessage.Content)
	}
	if statement == "" {
		s.ChannelMessageSend(m.ChannelID,
			fmt.Sprintf("⚠️ Usage: `%s <statement>` or reply to a message with `%s`", trigger, trigger))
		return
	}

	if denial := b.gateInvocation(m.Author.ID, m.Member); denial != nil {
		if reply := b.denialReply(denial); reply != "" {
			s.ChannelMessageSend(m.ChannelID, reply)
		}
		return
	}

	outcome := b.runPipeline(statement)

	embed, components, pages := b.buildResult(outcome)
	msg, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		Logger().Error("Failed to send fact check result: %v", err)
		GetState().RecordError(err.Error())
		return
	}

	if len(pages) > 0 {
		b.sessions.Open(m.ChannelID, msg.ID, m.Author.ID, outcome.Statement, outcome.Kind, pages)
	}
}

// handleInteractionCreate routes slash commands and button clicks
func (b *Bot) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "factcheck":
		b.handleFactCheckCommand(s, i)
	case "watch":
		b.handleWatchCommand(s, i)
	case "unwatch":
		b.handleUnwatchCommand(s, i)
	case "watching":
		b.handleWatchingCommand(s, i)
	case "ping":
		b.handlePingCommand(s, i)
	case "status":
		b.handleStatusCommand(s, i)
	case "help":
		b.handleHelpCommand(s, i)
	default:
		respondEphemeral(s, i, "⚠️ Unknown command")
	}
}

// handleComponent routes pagination button clicks to the owning session
func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var action NavAction
	switch i.MessageComponentData().CustomID {
	case ButtonIDPrev:
		action = NavPrev
	case ButtonIDNext:
		action = NavNext
	case ButtonIDFirst:
		action = NavFirst
	default:
		return
	}

	userID := interactionUserID(i)
	if b.sessions.Dispatch(i.Message.ID, userID, action) {
		// Ack without content; the session's owner goroutine edits the message
		s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		return
	}

	respondEphemeral(s, i, "⌛ This fact check has expired — run it again to keep browsing")
}

func (b *Bot) handleFactCheckCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)

	statement := strings.TrimSpace(getOptionString(i.ApplicationCommandData().Options, "statement"))
	if statement == "" {
		respondEphemeral(s, i, "⚠️ Give me a statement to check, e.g. `/factcheck statement: The earth is flat`")
		return
	}

	if denial := b.gateInvocation(userID, i.Member); denial != nil {
		if reply := b.denialReply(denial); reply != "" {
			respondEphemeral(s, i, reply)
		}
		return
	}

	// Acknowledge first; the fallback chain can take a while
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		Logger().Error("Failed to acknowledge interaction: %v", err)
		return
	}

	outcome := b.runPipeline(statement)

	embed, components, pages := b.buildResult(outcome)
	msg, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		Logger().Error("Failed to send fact check result: %v", err)
		GetState().RecordError(err.Error())
		return
	}

	if len(pages) > 0 {
		b.sessions.Open(i.ChannelID, msg.ID, userID, outcome.Statement, outcome.Kind, pages)
	}
}

// runPipeline resolves link statements and runs the fallback chain
func (b *Bot) runPipeline(statement string) *PipelineOutcome {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if IsBareURL(statement) {
		resolved, err := b.articles.Resolve(ctx, statement)
		if err != nil {
			Logger().Warning("Article resolution failed, checking the raw link text: %v", err)
		} else if resolved != "" {
			statement = resolved
		}
	}

	GetState().RecordCheck()
	return b.pipeline.Run(ctx, statement)
}

// buildResult renders a pipeline outcome into the first embed, its
// navigation components, and the page list for a session (nil when the
// outcome is not paginated)
func (b *Bot) buildResult(outcome *PipelineOutcome) (*discordgo.MessageEmbed, []discordgo.MessageComponent, []Page) {
	switch outcome.Kind {
	case OutcomeStructured:
		page := outcome.Pages[0]
		embed := b.formatter.ClaimPageEmbed(outcome.Statement, page)
		b.attachRelatedCoverage(embed, outcome.Statement)
		return embed, b.formatter.NavComponents(page.Index, page.Total, false), outcome.Pages

	case OutcomeEncyclopedia:
		pages := PaginateSummaries(outcome.Summaries)
		page := pages[0]
		embed := b.formatter.SummaryPageEmbed(outcome.Statement, page)
		return embed, b.formatter.NavComponents(page.Index, page.Total, false), pages

	case OutcomeFreeform:
		return b.formatter.FreeformEmbed(outcome.Statement, outcome.Answer), nil, nil

	case OutcomeNoResults:
		return b.formatter.NoResultsEmbed(outcome.Statement), nil, nil

	default:
		GetState().RecordError(outcome.Err.Error())
		return &discordgo.MessageEmbed{
			Title:       "⚠️ Fact check unavailable",
			Description: "Every source failed to answer. Try again in a moment.",
			Color:       ColorOther,
		}, nil, nil
	}
}

// attachRelatedCoverage decorates an embed with recent headlines; lookup
// failures are logged and ignored
func (b *Bot) attachRelatedCoverage(embed *discordgo.MessageEmbed, statement string) {
	if b.news == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultHTTPTimeout)
	defer cancel()

	links, err := b.news.Related(ctx, statement)
	if err != nil {
		Logger().Debug("Related coverage lookup failed: %v", err)
		return
	}
	b.formatter.AddRelatedCoverage(embed, links)
}

// Watch management commands

func (b *Bot) handleWatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(i) {
		respondEphemeral(s, i, "⚠️ Only admins can manage watch lists")
		return
	}

	opts := i.ApplicationCommandData().Options
	user := getOptionUser(s, opts, "user")
	if user == nil {
		respondEphemeral(s, i, "⚠️ Pick a user to watch")
		return
	}

	channelID := i.ChannelID
	if ch := getOptionChannel(s, opts, "channel"); ch != nil {
		channelID = ch.ID
	}

	b.watcher.AddTarget(channelID, user.ID, i.ChannelID)
	respondEphemeral(s, i, fmt.Sprintf("👁️ Now watching %s in <#%s>", user.Username, channelID))
}

func (b *Bot) handleUnwatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdmin(i) {
		respondEphemeral(s, i, "⚠️ Only admins can manage watch lists")
		return
	}

	channelID := i.ChannelID
	if ch := getOptionChannel(s, i.ApplicationCommandData().Options, "channel"); ch != nil {
		channelID = ch.ID
	}

	if b.watcher.RemoveTarget(channelID) {
		respondEphemeral(s, i, fmt.Sprintf("✅ Stopped watching <#%s>", channelID))
	} else {
		respondEphemeral(s, i, fmt.Sprintf("⚠️ <#%s> was not being watched", channelID))
	}
}

func (b *Bot) handleWatchingCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	targets := b.watcher.TargetsSnapshot()
	if len(targets) == 0 {
		respondEphemeral(s, i, "Nothing is being watched right now")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Watched channels**\n")
	for _, t := range targets {
		if len(t.UserIDs) == 0 {
			fmt.Fprintf(&sb, "• <#%s> — everyone\n", t.ChannelID)
			continue
		}
		mentions := make([]string, len(t.UserIDs))
		for j, id := range t.UserIDs {
			mentions[j] = fmt.Sprintf("<@%s>", id)
		}
		fmt.Fprintf(&sb, "• <#%s> — %s\n", t.ChannelID, strings.Join(mentions, ", "))
	}
	respondEphemeral(s, i, sb.String())
}

// Utility commands

func (b *Bot) handlePingCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEphemeral(s, i, fmt.Sprintf("🏓 Pong! Gateway latency: %s",
		s.HeartbeatLatency().Round(time.Millisecond)))
}

func (b *Bot) handleStatusCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	snapshot := GetState().Snapshot()

	embed := &discordgo.MessageEmbed{
		Title: "📊 Veritas Status",
		Color: ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Version", Value: VERSION, Inline: true},
			{Name: "Uptime", Value: fmt.Sprintf("%ds", snapshot["uptime_seconds"]), Inline: true},
			{Name: "Checks run", Value: fmt.Sprintf("%d", snapshot["checks_run"]), Inline: true},
			{Name: "Checks denied", Value: fmt.Sprintf("%d", snapshot["checks_denied"]), Inline: true},
			{Name: "Alerts sent", Value: fmt.Sprintf("%d", snapshot["alerts_sent"]), Inline: true},
			{Name: "Live sessions", Value: fmt.Sprintf("%d", b.sessions.Count()), Inline: true},
		},
	}

	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) handleHelpCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	help := strings.Join([]string{
		"**Veritas — fact verification**",
		"`/factcheck statement:<text or link>` — check a statement against published fact checks,",
		"falling back to an AI assessment and encyclopedia context when none exist.",
		fmt.Sprintf("`%sfactcheck <text>` — same thing as a prefix command; reply to a message to check it.", b.cfg.CommandPrefix),
		"`/watch user:<user>` — (admin) monitor a user and alert on false claims.",
		"`/unwatch`, `/watching` — manage and inspect the watch list.",
		"Use the buttons under a result to page through multiple fact checks.",
	}, "\n")
	respondEphemeral(s, i, help)
}

// Permission helpers

// gateInvocation applies the allow-list and cooldown gates, returning a
// typed denial or nil when the invocation may proceed
func (b *Bot) gateInvocation(userID string, member *discordgo.Member) *VeritasError {
	if !b.invokerAllowed(userID, member) {
		return NewError(ErrorTypeAuth, ErrCodeNotAllowed,
			"You are not allowed to use this command", nil)
	}
	if ok, retryAfter := b.limiter.CheckAndRecord(userID); !ok {
		GetState().RecordDenied()
		return NewError(ErrorTypeRateLimit, ErrCodeCooldown,
			fmt.Sprintf("Slow down — try again in %d seconds", int(retryAfter.Seconds()+0.5)), nil)
	}
	return nil
}

// denialReply maps a gate denial to its user-facing reply; an empty
// reply means the denial stays silent
func (b *Bot) denialReply(denial *VeritasError) string {
	switch denial.Type {
	case ErrorTypeRateLimit:
		return "⏳ " + denial.Message
	default:
		if b.cfg.SilentDenial {
			return ""
		}
		return "⚠️ " + denial.Message
	}
}

// invokerAllowed applies the user allow-list: empty list means everyone
func (b *Bot) invokerAllowed(userID string, member *discordgo.Member) bool {
	if len(b.cfg.AllowedUserIDs) == 0 {
		return true
	}
	for _, id := range b.cfg.OwnerIDs {
		if id == userID {
			return true
		}
	}
	for _, id := range b.cfg.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	if member != nil {
		for _, role := range member.Roles {
			for _, adminRole := range b.cfg.AdminRoleIDs {
				if role == adminRole {
					return true
				}
			}
		}
	}
	return false
}

// permissionLevel resolves the invoker's level from the owner and
// admin-role config
func (b *Bot) permissionLevel(i *discordgo.InteractionCreate) int {
	userID := interactionUserID(i)
	for _, id := range b.cfg.OwnerIDs {
		if id == userID {
			return PermLevelOwner
		}
	}
	if i.Member != nil {
		for _, role := range i.Member.Roles {
			for _, adminRole := range b.cfg.AdminRoleIDs {
				if role == adminRole {
					return PermLevelAdmin
				}
			}
		}
	}
	return PermLevelEveryone
}

// isAdmin checks for owner or admin-role membership
func (b *Bot) isAdmin(i *discordgo.InteractionCreate) bool {
	return b.permissionLevel(i) >= PermLevelAdmin
}

// interactionUserID works for both guild and DM interactions
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// respondEphemeral replies to an interaction with a message only the
// invoker can see
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
