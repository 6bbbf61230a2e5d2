package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareBar(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	tests := []struct {
		percent int
		width   int
		want    string
	}{
		{percent: 0, width: 10, want: "..........   0%"},
		{percent: 29, width: 10, want: "##........  29%"},
		{percent: 50, width: 10, want: "#####.....  50%"},
		{percent: 57, width: 10, want: "#####.....  57%"},
		{percent: 100, width: 10, want: "########## 100%"},
		{percent: 200, width: 5, want: "##### 100%"},
		{percent: -1, width: 1, want: ".....   0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShareBar(tt.percent, tt.width))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "héll...", Truncate("héllo wörld", 7))
}

func TestStatusLines(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	var buf bytes.Buffer
	OK(&buf, "created")
	Fail(&buf, "nope")
	assert.Equal(t, "ok created\nerror: nope\n", buf.String())
}

func TestSetThemeFallback(t *testing.T) {
	SetTheme("does-not-exist")
	assert.Equal(t, "classic", Current().Name)
	SetTheme("NEON")
	assert.Equal(t, "neon", Current().Name)
	SetTheme("classic")
}
