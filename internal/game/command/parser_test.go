package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse_Empty(t *testing.T) {
	result := Parse("")
	assert.Equal(t, "", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_SingleWord(t *testing.T) {
	result := Parse("rm")
	assert.Equal(t, "rm", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_Lowercase(t *testing.T) {
	result := Parse("RAVS")
	assert.Equal(t, "ravs", result.Command)
}

func TestParse_WithArgs(t *testing.T) {
	result := Parse("rd 3 侦查 1")
	assert.Equal(t, "rd", result.Command)
	assert.Equal(t, []string{"3", "侦查", "1"}, result.Args)
}

func TestParse_ExtraWhitespace(t *testing.T) {
	result := Parse("  sc   3   1/1d6  ")
	assert.Equal(t, "sc", result.Command)
	assert.Equal(t, []string{"3", "1/1d6"}, result.Args)
}

func TestParseRequest_BareExpression(t *testing.T) {
	req := ParseRequest("3D6+2")
	assert.Equal(t, "r", req.Command)
	assert.Equal(t, "3D6+2", req.Arg(1))
	assert.Equal(t, "", req.Arg(2))

	req = ParseRequest("17")
	assert.Equal(t, "r", req.Command)
	assert.Equal(t, "17", req.Arg(1))
}

func TestParseRequest_Command(t *testing.T) {
	req := ParseRequest("rav 1 spot 2 listen 1 -1 extra")
	assert.Equal(t, "rav", req.Command)
	assert.Equal(t, [MaxArgs]string{"1", "spot", "2", "listen", "1", "-1"}, req.Args)
}

func TestParseRequest_NotAnExpression(t *testing.T) {
	req := ParseRequest("d6 please")
	assert.Equal(t, "d6", req.Command)
	assert.Equal(t, "please", req.Arg(1))
}

func TestPropertyParseAlwaysLowercasesCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		result := Parse(word)
		for _, c := range result.Command {
			if c >= 'A' && c <= 'Z' {
				t.Fatalf("command %q contains uppercase char in Parse result %q", word, result.Command)
			}
		}
	})
}

func TestPropertyParseRequestDetectsExpressions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		expr := rapid.StringMatching(`[1-9]?d(4|6|20)([+-][1-9])?`).Draw(t, "expr")
		req := ParseRequest(expr)
		if req.Command != "r" || req.Arg(1) != expr {
			t.Fatalf("expression %q parsed as %+v", expr, req)
		}
	})
}
