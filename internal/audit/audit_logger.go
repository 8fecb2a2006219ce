package audit

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Event struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	RequestID string    `json:"request_id,omitempty"`
	MemberID  string    `json:"member_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	Details   any       `json:"details,omitempty"`
}

// Logger writes one structured AUDIT line per point-affecting operation.
type Logger struct {
	out zerolog.Logger
}

func NewLogger(w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	return &Logger{out: zerolog.New(w)}
}

func (a *Logger) LogEarn(transactionID, memberID string, amount int64, source string) {
	a.log(Event{
		EventType: "EARN",
		MemberID:  memberID,
		Amount:    amount,
		Status:    "SUCCESS",
		Details:   map[string]string{"transaction_id": transactionID, "source": source},
	})
}

func (a *Logger) LogRedemption(requestID, memberID, staffID string, amount int64, status string) {
	a.log(Event{
		EventType: "REDEMPTION",
		RequestID: requestID,
		MemberID:  memberID,
		ActorID:   staffID,
		Amount:    amount,
		Status:    status,
	})
}

func (a *Logger) LogError(requestID, actorID string, err error) {
	a.log(Event{
		EventType: "ERROR",
		RequestID: requestID,
		ActorID:   actorID,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) log(event Event) {
	if a == nil {
		return
	}
	event.Timestamp = time.Now()
	a.out.Log().Str("kind", "AUDIT").Interface("event", event).Send()
}
