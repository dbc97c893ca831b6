package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
)

// Scorer produces a toxicity Score for a piece of text. Implementations
// must always return a usable score; degraded operation is signalled
// through the Source, never through an error.
type Scorer interface {
	Score(ctx context.Context, text string) Score
}

// moderationAPI is the slice of the OpenAI client the RemoteScorer
// uses, split out so tests can inject provider outages.
type moderationAPI interface {
	Moderations(ctx context.Context, request openai.ModerationRequest) (openai.ModerationResponse, error)
}

// RemoteScorer queries the OpenAI moderation endpoint and maps its
// categorical flags to a 0..1 score. On any failure it silently
// degrades to the heuristic scorer.
type RemoteScorer struct {
	api      moderationAPI
	fallback *HeuristicScorer
	timeout  time.Duration
}

// NewRemoteScorer creates a RemoteScorer backed by the OpenAI API.
func NewRemoteScorer(apiKey string, fallback *HeuristicScorer) *RemoteScorer {
	return &RemoteScorer{
		api:      openai.NewClient(apiKey),
		fallback: fallback,
		timeout:  10 * time.Second,
	}
}

// Score asks the moderation endpoint for a verdict. The score is the
// proportion of flagged categories plus a flat 0.2 bias toward stricter
// enforcement, capped at 1.0. Provider failures never propagate: the
// heuristic fallback always produces an answer.
func (r *RemoteScorer) Score(ctx context.Context, text string) Score {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.api.Moderations(ctx, openai.ModerationRequest{
		Input: text,
		Model: openai.ModerationTextStable,
	})
	if err != nil || len(resp.Results) == 0 {
		if err != nil {
			logger.Warn(fmt.Sprintf("Error del endpoint de moderación OpenAI, usando heurística: %v", err), "RemoteScorer")
		} else {
			logger.Warn("Respuesta de moderación OpenAI sin resultados, usando heurística", "RemoteScorer")
		}
		return Score{Value: r.fallback.Score(text), Source: SourceHeuristic}
	}

	flagged, total := countCategories(resp.Results[0].Categories)
	if total == 0 {
		total = 1
	}

	value := float64(flagged)/float64(total) + 0.2
	if value > 1.0 {
		value = 1.0
	}
	return Score{Value: value, Source: SourceRemote}
}

// countCategories tallies the provider's categorical flags.
func countCategories(c openai.ResultCategories) (flagged, total int) {
	for _, v := range []bool{
		c.Hate,
		c.HateThreatening,
		c.Harassment,
		c.HarassmentThreatening,
		c.SelfHarm,
		c.SelfHarmIntent,
		c.SelfHarmInstructions,
		c.Sexual,
		c.SexualMinors,
		c.Violence,
		c.ViolenceGraphic,
	} {
		total++
		if v {
			flagged++
		}
	}
	return flagged, total
}

// heuristicOnly adapts HeuristicScorer to the Scorer interface for
// deployments without an OpenAI credential.
type heuristicOnly struct {
	h *HeuristicScorer
}

// NewHeuristicOnly returns a Scorer that never leaves the process.
func NewHeuristicOnly(h *HeuristicScorer) Scorer {
	return heuristicOnly{h: h}
}

func (s heuristicOnly) Score(_ context.Context, text string) Score {
	return Score{Value: s.h.Score(text), Source: SourceHeuristic}
}
