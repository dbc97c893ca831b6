package moderation

import "sync"

// Service bundles the moderation collaborators the rest of the bot
// talks to: the pipeline for incoming messages, the ledger for warning
// counts and the mute controller for restrictions.
type Service struct {
	Pipeline *Pipeline
	Ledger   *WarningLedger
	Mutes    *MuteController
	Spam     *SpamDetector
	Scorer   Scorer
}

var (
	service *Service
	once    sync.Once
)

// ServiceDeps are the externally provided collaborators
type ServiceDeps struct {
	Config   PipelineConfig
	Scorer   Scorer
	Store    WarningStore
	Platform Platform
	Audit    AuditSink
	Clock    Clock
	Spam     *SpamDetector
}

// Init wires the moderation service once and returns it
func Init(deps ServiceDeps) *Service {
	once.Do(func() {
		clock := deps.Clock
		if clock == nil {
			clock = RealClock()
		}

		ledger := NewWarningLedger(deps.Store)
		mutes := NewMuteController(deps.Platform, deps.Audit, clock)
		pipeline := NewPipeline(deps.Config, deps.Spam, deps.Scorer, ledger, mutes, deps.Platform, deps.Audit)

		service = &Service{
			Pipeline: pipeline,
			Ledger:   ledger,
			Mutes:    mutes,
			Spam:     deps.Spam,
			Scorer:   deps.Scorer,
		}
	})
	return service
}

// Get returns the global moderation service
func Get() *Service {
	return service
}
