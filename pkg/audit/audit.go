// Package audit provides the moderation audit trail. Every decision the
// bot takes is appended to a log file, mirrored to the mod-logs channel
// and published on MQTT so external tooling can follow along.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/google/uuid"
)

// Record is the wire form of one audit entry
type Record struct {
	ID        string    `json:"id"`
	GuildID   string    `json:"guildId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// recentCapacity bounds the in-memory tail served to the dashboard
const recentCapacity = 200

// Logger writes the append-only moderation log
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	recent  []string
	mirror  func(guildID, text string)
	publish func(record Record)
}

var (
	auditLogger *Logger
	once        sync.Once
)

// Init initializes the global audit logger
func Init() *Logger {
	once.Do(func() {
		auditLogger = NewAuditLogger(filepath.Join(".", "logs", "moderation.log"))
	})
	return auditLogger
}

// Get returns the global audit logger instance
func Get() *Logger {
	once.Do(func() {
		auditLogger = NewAuditLogger(filepath.Join(".", "logs", "moderation.log"))
	})
	return auditLogger
}

// NewAuditLogger creates a Logger appending to the given file
func NewAuditLogger(path string) *Logger {
	l := &Logger{}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error(fmt.Sprintf("Error creando el directorio de logs: %v", err), "Audit")
	}

	var err error
	l.file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Error(fmt.Sprintf("Error abriendo el log de moderación: %v", err), "Audit")
	}

	return l
}

// SetMirror registers the mod-logs channel callback
func (l *Logger) SetMirror(fn func(guildID, text string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mirror = fn
}

// SetPublisher registers the MQTT callback
func (l *Logger) SetPublisher(fn func(record Record)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.publish = fn
}

// Record appends one entry. The file write is synchronous; the channel
// mirror and MQTT publish run in the background so a slow broker never
// stalls the moderation path.
func (l *Logger) Record(guildID, text string) {
	now := time.Now()
	line := fmt.Sprintf("[%s] [%s] %s", now.Format("2006-01-02 15:04:05"), guildID, text)

	l.mu.Lock()
	if l.file != nil {
		l.file.WriteString(line + "\n")
	}
	l.recent = append(l.recent, line)
	if len(l.recent) > recentCapacity {
		l.recent = l.recent[len(l.recent)-recentCapacity:]
	}
	mirror := l.mirror
	publish := l.publish
	l.mu.Unlock()

	if mirror != nil {
		go mirror(guildID, text)
	}
	if publish != nil {
		go publish(Record{
			ID:        uuid.New().String(),
			GuildID:   guildID,
			Text:      text,
			Timestamp: now,
		})
	}
}

// Recent returns up to n entries, newest first
func (l *Logger) Recent(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.recent) {
		n = len(l.recent)
	}
	out := make([]string, 0, n)
	for i := len(l.recent) - 1; i >= len(l.recent)-n; i-- {
		out = append(out, l.recent[i])
	}
	return out
}

// Close closes the log file
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}
