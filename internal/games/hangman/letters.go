package hangman

// letterEmoji maps the reaction emojis that look like letters to the
// letters they stand for. Several emojis alias the same letter.
var letterEmoji = map[string]string{
	"🅰️": "A", "🇦": "A",
	"🅱️": "B", "🇧": "B",
	"🇨": "C",
	"🇩": "D",
	"🇪": "E",
	"🇫": "F",
	"🇬": "G",
	"🇭": "H",
	"ℹ️": "I", "🇮": "I",
	"🇯": "J",
	"🇰": "K",
	"🇱": "L",
	"Ⓜ️": "M", "🇲": "M",
	"🇳": "N",
	"🅾️": "O", "⭕": "O", "🇴": "O",
	"🅿️": "P", "🇵": "P",
	"🇶": "Q",
	"🇷": "R",
	"🇸": "S",
	"🇹": "T",
	"🇺": "U",
	"🇻": "V",
	"🇼": "W",
	"✖️": "X", "❎": "X", "❌": "X", "🇽": "X",
	"🇾": "Y",
	"💤": "Z", "🇿": "Z",
}

// letterFor decodes a reaction emoji to its letter
func letterFor(emoji string) (string, bool) {
	letter, ok := letterEmoji[emoji]
	return letter, ok
}
