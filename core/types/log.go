package types

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrMissingLogEntry = errors.New("log entry not found")

// LogEntry is one flattened event attribute of a transaction result.
type LogEntry struct {
	MsgIndex int    `json:"msg_index"`
	Type     string `json:"type"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

type ArrayLog []LogEntry

// Find returns the value of the first entry with the given event type and key.
func (l ArrayLog) Find(eventType, key string) (string, error) {
	for _, e := range l {
		if e.Type == eventType && e.Key == key {
			return e.Value, nil
		}
	}
	return "", fmt.Errorf("%w: type=%q key=%q", ErrMissingLogEntry, eventType, key)
}

// FindAll returns the values of every entry with the given event type and key, in order.
func (l ArrayLog) FindAll(eventType, key string) []string {
	var out []string
	for _, e := range l {
		if e.Type == eventType && e.Key == key {
			out = append(out, e.Value)
		}
	}
	return out
}

type EventAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Event struct {
	Type       string           `json:"type"`
	Attributes []EventAttribute `json:"attributes"`
}

type MessageLog struct {
	MsgIndex int     `json:"msg_index"`
	Events   []Event `json:"events"`
}

// NewArrayLog flattens per-message logs. Chains that no longer fill logs only report
// top-level events; those are used when logs is empty.
func NewArrayLog(logs []MessageLog, events []Event) ArrayLog {
	var out ArrayLog
	if len(logs) > 0 {
		for _, l := range logs {
			for _, ev := range l.Events {
				for _, a := range ev.Attributes {
					out = append(out, LogEntry{MsgIndex: l.MsgIndex, Type: ev.Type, Key: a.Key, Value: a.Value})
				}
			}
		}
		return out
	}

	for _, ev := range events {
		idx := 0
		for _, a := range ev.Attributes {
			if a.Key == "msg_index" {
				if n, err := strconv.Atoi(a.Value); err == nil {
					idx = n
				}
			}
		}
		for _, a := range ev.Attributes {
			out = append(out, LogEntry{MsgIndex: idx, Type: ev.Type, Key: a.Key, Value: a.Value})
		}
	}
	return out
}
