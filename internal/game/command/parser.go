package command

import (
	"regexp"
	"strings"
)

// ParseResult holds the parsed command token and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
}

// Parse splits a text line into a command and arguments.
//
// Precondition: line should be trimmed of leading/trailing whitespace.
// Postcondition: Returns a ParseResult. If line is empty, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}

	cmd, rest, found := strings.Cut(line, " ")
	if !found {
		return ParseResult{
			Command: strings.ToLower(line),
		}
	}

	rest = strings.TrimSpace(rest)
	var args []string
	if rest != "" {
		args = strings.Fields(rest)
	}

	return ParseResult{
		Command: strings.ToLower(cmd),
		Args:    args,
	}
}

// bareRoll matches a line that is nothing but a dice expression.
var bareRoll = regexp.MustCompile(`(?i)^(\d*d\d+|\d+)([+-](\d*d\d+|\d+))*$`)

// ParseRequest turns a typed line into a Request. A line that is only a dice
// expression ("3d6+2") becomes an r command; otherwise the first word is the
// command token and up to MaxArgs following words fill the arguments.
//
// Postcondition: Returns a Request; extra words beyond MaxArgs are dropped.
func ParseRequest(line string) Request {
	line = strings.TrimSpace(line)
	if bareRoll.MatchString(line) {
		return Request{Command: "r", Args: [MaxArgs]string{line}}
	}
	p := Parse(line)
	req := Request{Command: p.Command}
	copy(req.Args[:], p.Args)
	return req
}
