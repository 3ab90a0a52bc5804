package assistant

import (
	"strings"
	"unicode"

	"pet-house/internal/platform/logger"
)

type Recorder interface {
	RecordAssistantReply(topic string)
}

type nopRecorder struct{}

func (nopRecorder) RecordAssistantReply(string) {}

type Service struct {
	log     logger.Logger
	metrics Recorder
}

func NewService(log logger.Logger, rec Recorder) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{
		log:     log.With(logger.Fields{"component": "assistant"}),
		metrics: rec,
	}
}

func (s *Service) Greeting() Message {
	return Message{Role: RoleAssistant, Content: greeting}
}

func (s *Service) Disclaimer() string { return disclaimer }

func (s *Service) QuickPrompts() []QuickPrompt {
	out := make([]QuickPrompt, len(quickPrompts))
	copy(out, quickPrompts)
	return out
}

// Reply responde un mensaje libre según la primera palabra clave reconocida.
func (s *Service) Reply(text string) Reply {
	topic := Classify(text)

	content := defaultReply
	for _, r := range rules {
		if r.topic == topic {
			content = r.reply
			break
		}
	}
	return s.reply(topic, content, "message")
}

// Quick responde un atajo. Texto desconocido => pedido de más detalles.
func (s *Service) Quick(text string) Reply {
	text = strings.TrimSpace(text)
	for _, qp := range quickPrompts {
		if qp.Text == text {
			return s.reply(qp.Topic, qp.Response, "quick")
		}
	}
	return s.reply(TopicGeneral, unknownQuick, "quick")
}

func (s *Service) Emergency() EmergencyNotice {
	s.metrics.RecordAssistantReply("emergency")
	s.log.Warn("emergency notice requested", nil)
	return emergency
}

func (s *Service) reply(topic Topic, content, kind string) Reply {
	s.metrics.RecordAssistantReply(string(topic))
	s.log.Debug("assistant reply", logger.Fields{"topic": string(topic), "kind": kind})

	fu := followUps[topic]
	out := make([]string, len(fu))
	copy(out, fu)

	return Reply{
		Topic:     topic,
		Message:   Message{Role: RoleAssistant, Content: content},
		FollowUps: out,
	}
}

// Classify detecta el tema por prefijo de palabra, sin distinguir mayúsculas.
func Classify(text string) Topic {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, r := range rules {
		for _, w := range words {
			for _, p := range r.prefixes {
				if strings.HasPrefix(w, p) {
					return r.topic
				}
			}
		}
	}
	return TopicGeneral
}
