package discord

// EmbedField is a titled section within an embed
type EmbedField struct {
	Name  string
	Value string
}

// Embed is a transport-agnostic description of a rich message embed
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	ImageURL    string
	Footer      string
}

// Button is a single move control attached to a render
type Button struct {
	CustomID string
	Emoji    string
}

// Request describes one render of game state: an embed plus optional rows
// of move controls. Producing a Request has no side effects; the transport
// decides whether it becomes a new message or an edit of an existing one.
type Request struct {
	Embed   Embed
	Buttons [][]Button
}
