package dto

// Meta webhook delivery payload. Only the fields the adapter reads are
// declared; the platform sends far more.

type MetaWebhookPayload struct {
	Object string             `json:"object"` // "page" | "instagram"
	Entry  []MetaWebhookEntry `json:"entry"`
}

type MetaWebhookEntry struct {
	Id        string               `json:"id"` // page id
	Time      int64                `json:"time"`
	Messaging []MetaMessagingEvent `json:"messaging,omitempty"`
	Changes   []MetaChangeEvent    `json:"changes,omitempty"`
}

type MetaMessagingEvent struct {
	Sender    MetaParty    `json:"sender"`
	Recipient MetaParty    `json:"recipient"`
	Message   *MetaMessage `json:"message,omitempty"`
}

type MetaParty struct {
	Id   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type MetaMessage struct {
	Mid  string `json:"mid"`
	Text string `json:"text"`
}

type MetaChangeEvent struct {
	Field string          `json:"field"` // "feed" is the one we handle
	Value MetaChangeValue `json:"value"`
}

type MetaChangeValue struct {
	Item      string    `json:"item"` // "comment"
	Verb      string    `json:"verb"` // "add"
	CommentId string    `json:"comment_id"`
	PostId    string    `json:"post_id"`
	Message   string    `json:"message"`
	From      MetaParty `json:"from"`
}
