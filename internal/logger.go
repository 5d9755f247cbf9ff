package internal

import (
	"fmt"
	"hotelpay/services"
	"log"
	"time"
)

// Logger writes module-tagged lines to the standard log and, when a
// database sink is set, mirrors them to the payment log collection.
// Debug output only appears when debug mode is on.
type Logger struct {
	module   string
	debug    bool
	database services.Database
}

type logRecord struct {
	Time   time.Time `json:"time" bson:"time"`
	Level  string    `json:"level" bson:"level"`
	Module string    `json:"module" bson:"module"`
	Text   string    `json:"text" bson:"text"`
}

func (r *logRecord) DataType() string {
	return "log"
}

func NewLogger(module string, debug bool, database services.Database) *Logger {
	return &Logger{
		module:   module,
		debug:    debug,
		database: database,
	}
}

func (l *Logger) Debug(message string) {
	if !l.debug {
		return
	}
	l.write("DEBUG", message)
}

func (l *Logger) Info(message string) {
	l.write("INFO", message)
}

func (l *Logger) Warn(message string) {
	l.write("WARN", message)
}

func (l *Logger) Error(message string, err error) {
	l.write("ERROR", fmt.Sprintf("%s: %v", message, err))
}

func (l *Logger) write(level, text string) {
	log.Printf("%s: %s: %s", l.module, level, text)
	if l.database == nil {
		return
	}
	record := &logRecord{
		Time:   time.Now(),
		Level:  level,
		Module: l.module,
		Text:   text,
	}
	if err := l.database.WriteLogMessage(record); err != nil {
		log.Printf("%s: write log message: %v", l.module, err)
	}
}
