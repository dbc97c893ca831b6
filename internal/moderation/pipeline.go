package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// Action thresholds on the 0..1 toxicity scale.
const (
	removeThreshold = 0.70
	flagThreshold   = 0.40
)

// PipelineConfig carries the tunables the pipeline enforces.
type PipelineConfig struct {
	MaxWarnings   int
	MuteDuration  time.Duration
	BotDeleteTime time.Duration
}

// Pipeline makes the per-message moderation decision: spam check, then
// toxicity score, then the structural-pattern fallback, each step
// short-circuiting on action. It owns no state of its own; the injected
// detector, ledger and controller do.
type Pipeline struct {
	cfg      PipelineConfig
	spam     *SpamDetector
	scorer   Scorer
	ledger   *WarningLedger
	mutes    *MuteController
	platform Platform
	audit    AuditSink
}

// NewPipeline wires the moderation decision pipeline.
func NewPipeline(cfg PipelineConfig, spam *SpamDetector, scorer Scorer, ledger *WarningLedger, mutes *MuteController, platform Platform, audit AuditSink) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		spam:     spam,
		scorer:   scorer,
		ledger:   ledger,
		mutes:    mutes,
		platform: platform,
		audit:    audit,
	}
}

// HandleMessage runs the decision pipeline for one incoming message.
// Safe to call from any number of goroutines; only per-user state is
// locked, never the whole pipeline.
func (p *Pipeline) HandleMessage(ctx context.Context, ev MessageEvent) {
	if ev.AuthorIsBot {
		return
	}

	// Spam detection runs first and counts unconditionally.
	if isSpam, count := p.spam.RecordAndCheck(ev.AuthorID, ev.Timestamp); isSpam {
		p.deleteMessage(ev)
		p.applyWarning(ctx, ev, "is spamming")
		p.audit.Record(ev.GuildID, fmt.Sprintf("%s - SPAM - %d mensajes en la ventana", ev.AuthorID, count))
		return
	}

	score := p.scorer.Score(ctx, ev.Content)
	switch {
	case score.Value >= removeThreshold:
		p.deleteMessage(ev)
		p.applyWarning(ctx, ev, fmt.Sprintf("AI-moderation removed message (score %.2f)", score.Value))
		return
	case score.Value >= flagThreshold:
		p.deleteMessage(ev)
		p.applyWarning(ctx, ev, fmt.Sprintf("AI-moderation flagged message (score %.2f)", score.Value))
		return
	}

	// Last-resort structural scan. Deliberately not re-applied to
	// mid-range scores above; texts the scorer already rated past the
	// flag threshold took the branches above.
	if MatchesSlurPattern(ev.Content) {
		p.deleteMessage(ev)
		p.applyWarning(ctx, ev, "used inappropriate language (pattern match)")
		return
	}
}

// applyWarning increments the ledger, notifies the channel, writes the
// audit record and triggers the mute when escalation is reported.
func (p *Pipeline) applyWarning(ctx context.Context, ev MessageEvent, reason string) {
	count, escalated := p.ledger.AddWarning(ctx, ev.GuildID, ev.AuthorID, p.cfg.MaxWarnings)

	notice := fmt.Sprintf("⚠️ <@%s> %s | Advertencia %d/%d", ev.AuthorID, reason, count, p.cfg.MaxWarnings)
	if err := p.platform.SendChannelMessage(ev.ChannelID, notice, p.cfg.BotDeleteTime); err != nil {
		logger.Error(fmt.Sprintf("Fallo al enviar aviso de advertencia: %v", err), "Pipeline")
	}
	p.audit.Record(ev.GuildID, fmt.Sprintf("%s - WARNING - %s - %d/%d", ev.AuthorID, reason, count, p.cfg.MaxWarnings))

	if escalated {
		p.mutes.Apply(ev.GuildID, ev.AuthorID, p.cfg.MuteDuration, "Reached max warnings")
		notice := fmt.Sprintf("🔇 <@%s> ha sido silenciado (Reached max warnings)", ev.AuthorID)
		if err := p.platform.SendChannelMessage(ev.ChannelID, notice, p.cfg.BotDeleteTime); err != nil {
			logger.Error(fmt.Sprintf("Fallo al enviar aviso de silencio: %v", err), "Pipeline")
		}
	}
}

// deleteMessage removes the offending message. The platform call can
// fail (already deleted, missing permissions); the decision stands and
// the audit trail records the action regardless.
func (p *Pipeline) deleteMessage(ev MessageEvent) {
	if err := p.platform.DeleteMessage(ev.Ref()); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo eliminar el mensaje %s: %v", ev.MessageID, err), "Pipeline")
	}
}
