package dto

// Message is the payload pushed to every subscriber of a broadcast. It is
// serialized as JSON into the push body and parsed back by the receiver.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// DefaultMessage is displayed when a push arrives with a missing or
// unparseable payload.
func DefaultMessage() Message {
	return Message{Title: "آية", Body: "تذكير..."}
}
