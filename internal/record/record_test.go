package record

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapter_JSON(t *testing.T) {
	tests := []struct {
		name    string
		chapter Chapter
		encoded string
	}{
		{"number", ChapterNumber(3), "3"},
		{"label", ChapterLabel(ChapterFootnotes), `"Footnotes"`},
		{"unset", Chapter{}, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.chapter)
			require.NoError(t, err)
			assert.Equal(t, tt.encoded, string(data))

			var got Chapter
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.chapter, got)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		var c Chapter
		assert.Error(t, json.Unmarshal([]byte("1.5"), &c))
	})
}

func TestChapter_Accessors(t *testing.T) {
	n, ok := ChapterNumber(7).Number()
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = ChapterLabel("Preface").Number()
	assert.False(t, ok)
	assert.Equal(t, "Preface", ChapterLabel("Preface").Label())

	assert.True(t, Chapter{}.IsZero())
	assert.Equal(t, "-", Chapter{}.String())
}

func TestParagraph_MarshalShape(t *testing.T) {
	p := Paragraph{
		Work:      "The Wars of the Jews",
		Book:      "I",
		Chapter:   ChapterNumber(1),
		Paragraph: 2,
		Text:      "Now at the time",
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"work":"The Wars of the Jews","book":"I","chapter":1,"paragraph":2,"text":"Now at the time"}`,
		string(data))
}

func TestLocators(t *testing.T) {
	v := Verse{Book: "Ruth", Chapter: 1, Verse: 16, Text: "x"}
	assert.Equal(t, "Ruth 1:16", v.Locator())

	p := Paragraph{Work: "Wars", Book: "II", Chapter: ChapterLabel(ChapterFootnotes), Paragraph: 4}
	assert.Equal(t, "Wars II.Footnotes.4", p.Locator())

	e := Entry{Book: "Ruth", Chapter: ChapterNumber(1), Verse: 16}
	assert.Equal(t, v.Locator(), e.Locator())
}

func TestDecodeLines(t *testing.T) {
	input := `{"book":"Ruth","chapter":1,"verse":1,"text":"a"}

{"work":"W","book":"I","chapter":"Footnotes","paragraph":2,"text":"b"}
`
	var entries []Entry
	err := DecodeLines(strings.NewReader(input), func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Verse)
	assert.Equal(t, ChapterFootnotes, entries[1].Chapter.Label())

	t.Run("reports bad line", func(t *testing.T) {
		err := DecodeLines(strings.NewReader("{}\nnot json\n"), func(Entry) error { return nil })
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}
