package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses blanks", "a  \t b", "a b"},
		{"caps blank lines", "a\n\n\n\nb", "a\n\nb"},
		{"space before punctuation", "end , then .", "end, then."},
		{"space after punctuation", "one.Two,three", "one. Two, three"},
		{"splits glued words", "theCell membraneProtects", "the Cell membrane Protects"},
		{"keeps acronyms", "use HTTP daily", "use HTTP daily"},
		{"trims lines", "  left  \n  right ", "left\nright"},
		{"empty", "   \n  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestCleanText_ReconstructsCharacterSeparatedText(t *testing.T) {
	assert.Equal(t, "Hello Big World", CleanText("H e l l o B i g W o r l d"))
}

func TestReconstructWords(t *testing.T) {
	assert.Equal(t, "hello world, again", ReconstructWords("h e l l o world , a g a i n"))
	assert.Equal(t, "ab Cd", ReconstructWords("a b C d"))
	assert.Equal(t, "", ReconstructWords(""))
}
