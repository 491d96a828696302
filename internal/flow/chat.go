package flow

import (
	"strings"

	"medfollow-client/internal/dto"
	"medfollow-client/internal/session"

	"github.com/google/uuid"
)

type Speaker string

const (
	SpeakerPatient   Speaker = "patient"
	SpeakerAssistant Speaker = "assistant"
)

type Turn struct {
	ID       string   `json:"id"`
	Speaker  Speaker  `json:"speaker"`
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
	Pending  bool     `json:"pending"`
}

// Transcript is the append-only chat history of one session. A placeholder is
// resolved in place, so turns never move.
type Transcript struct {
	turns []Turn
	index map[string]int
}

func NewTranscript() *Transcript {
	return &Transcript{index: make(map[string]int)}
}

func (t *Transcript) append(turn Turn) Turn {
	turn.ID = uuid.NewString()
	t.index[turn.ID] = len(t.turns)
	t.turns = append(t.turns, turn)
	return turn
}

func (t *Transcript) AppendPatient(text string) Turn {
	return t.append(Turn{Speaker: SpeakerPatient, Text: text, Severity: SeverityLow})
}

// AppendPlaceholder adds the composing indicator and returns its id.
func (t *Transcript) AppendPlaceholder() string {
	return t.append(Turn{Speaker: SpeakerAssistant, Pending: true}).ID
}

// Resolve replaces placeholder id with the assistant reply. It reports false when
// id is unknown or already resolved.
func (t *Transcript) Resolve(id, text string, severity Severity) bool {
	i, ok := t.index[id]
	if !ok || !t.turns[i].Pending {
		return false
	}
	t.turns[i] = Turn{ID: id, Speaker: SpeakerAssistant, Text: text, Severity: severity}
	return true
}

func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

func (t *Transcript) Len() int { return len(t.turns) }

// Badge is the severity tag shown on resolved assistant turns above the lowest tier.
func Badge(turn Turn, label string) string {
	if turn.Speaker != SpeakerAssistant || turn.Pending {
		return ""
	}
	if turn.Severity == "" || turn.Severity == SeverityLow {
		return ""
	}
	return label + string(turn.Severity)
}

// TakeChatMessage adopts the post-op surgery type on first use, then consumes the
// chat input. It reports false for empty input.
func TakeChatMessage(s *session.Session, form Form) (string, bool) {
	s.AdoptSurgeryType(form.Get(FieldSurgeryType))

	text := strings.TrimSpace(form.Get(FieldChatInput))
	if text == "" {
		return "", false
	}
	form.Clear(FieldChatInput)
	return text, true
}

func ChatRequest(s *session.Session, message string) dto.PostOpChatRequest {
	return dto.PostOpChatRequest{
		PatientName: s.PatientName,
		PhoneNumber: s.PatientPhone,
		SurgeryType: s.ChatSurgeryType(),
		Message:     message,
		Language:    string(s.Language),
	}
}
