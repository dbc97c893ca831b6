package moderation

import (
	"context"
	"fmt"
	"math"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// stubModerationAPI scripts the provider's behavior.
type stubModerationAPI struct {
	resp openai.ModerationResponse
	err  error
}

func (s *stubModerationAPI) Moderations(ctx context.Context, req openai.ModerationRequest) (openai.ModerationResponse, error) {
	return s.resp, s.err
}

func remoteScorerWith(api moderationAPI) *RemoteScorer {
	return &RemoteScorer{
		api:      api,
		fallback: NewHeuristicScorer(),
		timeout:  0, // expired immediately is fine for the stub
	}
}

// TestRemoteScorerCategoryMapping verifies flagged/total + 0.2, capped
// at 1.0.
func TestRemoteScorerCategoryMapping(t *testing.T) {
	resp := openai.ModerationResponse{
		Results: []openai.Result{{
			Categories: openai.ResultCategories{
				Hate:     true,
				Violence: true,
			},
		}},
	}
	r := remoteScorerWith(&stubModerationAPI{resp: resp})

	got := r.Score(context.Background(), "whatever")
	if got.Source != SourceRemote {
		t.Errorf("Source = %q, want %q", got.Source, SourceRemote)
	}
	// 2 of 11 categories flagged, plus the 0.2 strictness bias.
	want := 2.0/11.0 + 0.2
	if math.Abs(got.Value-want) > 1e-9 {
		t.Errorf("Value = %v, want %v", got.Value, want)
	}
}

// TestRemoteScorerCap verifies the score never exceeds 1.0 even when
// every category is flagged.
func TestRemoteScorerCap(t *testing.T) {
	resp := openai.ModerationResponse{
		Results: []openai.Result{{
			Categories: openai.ResultCategories{
				Hate: true, HateThreatening: true,
				Harassment: true, HarassmentThreatening: true,
				SelfHarm: true, SelfHarmIntent: true, SelfHarmInstructions: true,
				Sexual: true, SexualMinors: true,
				Violence: true, ViolenceGraphic: true,
			},
		}},
	}
	r := remoteScorerWith(&stubModerationAPI{resp: resp})

	if got := r.Score(context.Background(), "whatever"); got.Value != 1.0 {
		t.Errorf("Value = %v, want 1.0 (capped)", got.Value)
	}
}

// TestRemoteScorerFallbackOnError verifies the mandatory degradation:
// a provider outage never propagates, the heuristic answers instead.
func TestRemoteScorerFallbackOnError(t *testing.T) {
	r := remoteScorerWith(&stubModerationAPI{err: fmt.Errorf("connection refused")})

	got := r.Score(context.Background(), "n1g3r")
	if got.Source != SourceHeuristic {
		t.Errorf("Source = %q, want %q on provider failure", got.Source, SourceHeuristic)
	}
	if got.Value != 0.95 {
		t.Errorf("Value = %v, want heuristic 0.95", got.Value)
	}
}

// TestRemoteScorerFallbackOnEmptyResponse covers a malformed (empty)
// provider response.
func TestRemoteScorerFallbackOnEmptyResponse(t *testing.T) {
	r := remoteScorerWith(&stubModerationAPI{resp: openai.ModerationResponse{}})

	got := r.Score(context.Background(), "hello there")
	if got.Source != SourceHeuristic {
		t.Errorf("Source = %q, want %q on empty response", got.Source, SourceHeuristic)
	}
	if got.Value != 0.0 {
		t.Errorf("Value = %v, want 0.0", got.Value)
	}
}

// TestHeuristicOnlyScorer verifies the no-credential adapter.
func TestHeuristicOnlyScorer(t *testing.T) {
	s := NewHeuristicOnly(NewHeuristicScorer())

	got := s.Score(context.Background(), "wow!!!!")
	if got.Source != SourceHeuristic {
		t.Errorf("Source = %q, want %q", got.Source, SourceHeuristic)
	}
	if got.Value != 0.45 {
		t.Errorf("Value = %v, want 0.45", got.Value)
	}
}
