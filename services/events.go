package services

// EventType tags one server-sent event in the analysis stream.
type EventType string

const (
	EventImages  EventType = "images"
	EventContent EventType = "content"
	EventError   EventType = "error"
	EventDone    EventType = "done"
)

// Event is the envelope relayed to the client. The payload always
// travels under "data": a URL list for images, a token or message
// string for content and error, nothing for done. Consumers should
// switch on Type exhaustively.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

func ImagesEvent(urls []string) Event { return Event{Type: EventImages, Data: urls} }
func ContentEvent(token string) Event { return Event{Type: EventContent, Data: token} }
func ErrorEvent(message string) Event { return Event{Type: EventError, Data: message} }
func DoneEvent() Event                { return Event{Type: EventDone} }

// EventSink receives stream events in emission order. Implementations
// must not reorder or batch; the relay is strictly sequential per
// request.
type EventSink interface {
	Send(event Event) error
}
