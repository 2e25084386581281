package models

// Keyword is a tracked text string scoped to a channel.
type Keyword struct {
	ID         string `json:"id"`
	ChannelID  string `json:"channelId"`
	Text       string `json:"text"`
	AlertCount int64  `json:"alertCount"`
}

// MaxFieldLength bounds channelId and text, in characters. Both values share
// one unique index entry, which Postgres caps at roughly 2.7 KB.
const MaxFieldLength = 256

// KeywordInput is the client-supplied part of a keyword.
type KeywordInput struct {
	ChannelID string `json:"channelId" yaml:"channel_id" validate:"required,max=256,storabletext"`
	Text      string `json:"text" yaml:"text" validate:"required,max=256,storabletext"`
}

// Key returns the (channelId, text) pair that must be unique across keywords.
func (k Keyword) Key() KeywordKey {
	return KeywordKey{ChannelID: k.ChannelID, Text: k.Text}
}

// KeywordKey identifies a keyword by its channel and text.
type KeywordKey struct {
	ChannelID string
	Text      string
}
