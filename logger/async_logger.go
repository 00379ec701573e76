package logger

import (
	"log"

	logModel "runoot/models/log"
	"runoot/types"

	"gorm.io/gorm"
)

// AsyncLogger persists HTTP request logs to the logs table off the request
// path. Entries are dropped only if the process exits before the channel
// drains.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

// ProcessLog drains the channel into the database. Run it in a goroutine.
func (l *AsyncLogger) ProcessLog() {
	for entry := range l.channel {
		dbLog := logModel.Log{
			Method:          entry.Method,
			URL:             entry.URL,
			RequestBody:     entry.RequestBody,
			ResponseBody:    entry.ResponseBody,
			RequestHeaders:  entry.RequestHeaders,
			ResponseHeaders: entry.ResponseHeaders,
			StatusCode:      entry.StatusCode,
			CreatedAt:       entry.CreatedAt,
		}

		if err := l.db.Create(&dbLog).Error; err != nil {
			log.Printf("failed to insert request log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel
func (l *AsyncLogger) Log(entry types.LogEntry) {
	l.channel <- entry
}
