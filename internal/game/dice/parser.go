package dice

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cory-johannsen/keeper/internal/game/gameerr"
)

// ErrInvalidExpression is the kind of every dice-expression parse failure.
var ErrInvalidExpression = errors.New("invalid dice expression")

// MaxDicePerTerm bounds N in an NdM term.
const MaxDicePerTerm = 100

// MaxStatic bounds a literal term. Together with MaxDicePerTerm it keeps every
// total far inside the range of int.
const MaxStatic = 1_000_000

// ValidSides lists the physical dice available at the table, ascending.
var ValidSides = []int{2, 3, 4, 6, 8, 10, 20, 100}

// sidesLabel is how the invalid-die message has always listed ValidSides.
const sidesLabel = "{2, 3, 100, 4, 6, 8, 10, 20}"

const msgInvalidCommand = "输入指令无效，请点击“操作指引”获取帮助。"

// Term is one signed operand of an expression: either Count dice of Sides faces
// or a static integer.
type Term struct {
	Sign   int // +1 or -1
	Count  int // dice count; zero for static terms
	Sides  int // faces per die; zero for static terms
	Static int // literal value for static terms (unsigned)
}

// IsDice reports whether t rolls dice.
func (t Term) IsDice() bool { return t.Sides > 0 }

// Expression is a parsed dice expression ready to be rolled.
//
// Invariant: len(Terms) >= 1; every dice term has Sides in ValidSides and
// 0 <= Count <= MaxDicePerTerm; every static term is at most MaxStatic.
type Expression struct {
	Raw   string
	Terms []Term
}

// Parse parses expressions of the form term (('+'|'-') term)* where a term is
// "[N]dM" or a non-negative integer, e.g. "d20", "3d6+2d4-1", "1d100+5".
//
// Postcondition: Returns a valid Expression, or an error matching
// ErrInvalidExpression that carries the player-facing message.
func Parse(expr string) (Expression, error) {
	raw := expr
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, gameerr.New(ErrInvalidExpression, msgInvalidCommand)
	}

	var terms []Term
	sign := 1
	start := 0
	for {
		end := start
		for end < len(s) && s[end] != '+' && s[end] != '-' {
			end++
		}
		term, err := parseTerm(s[start:end], sign)
		if err != nil {
			return Expression{}, err
		}
		terms = append(terms, term)
		if end == len(s) {
			break
		}
		sign = 1
		if s[end] == '-' {
			sign = -1
		}
		start = end + 1
	}

	return Expression{Raw: raw, Terms: terms}, nil
}

func parseTerm(s string, sign int) (Term, error) {
	if s == "" {
		return Term{}, gameerr.New(ErrInvalidExpression, msgInvalidCommand)
	}

	dIdx := strings.IndexByte(s, 'd')
	if dIdx < 0 {
		if !isDigits(s) {
			return Term{}, gameerr.New(ErrInvalidExpression, msgInvalidCommand)
		}
		v, err := strconv.Atoi(s)
		if err != nil || v > MaxStatic {
			return Term{}, gameerr.New(ErrInvalidExpression, msgInvalidCommand)
		}
		return Term{Sign: sign, Static: v}, nil
	}

	countStr, sidesStr := s[:dIdx], s[dIdx+1:]
	count := 1
	if countStr != "" {
		if !isDigits(countStr) {
			return Term{}, gameerr.New(ErrInvalidExpression, msgInvalidCommand)
		}
		n, err := strconv.Atoi(countStr)
		if err != nil || n > MaxDicePerTerm {
			return Term{}, gameerr.New(ErrInvalidExpression, msgInvalidCommand)
		}
		count = n
	}
	if !isDigits(sidesStr) {
		return Term{}, gameerr.New(ErrInvalidExpression, msgInvalidCommand)
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Term{}, gameerr.New(ErrInvalidExpression,
			"不存在这样的骰子哦：d%s。在这个维度中只存在以下这些骰子：%s", sidesStr, sidesLabel)
	}
	if !validSide(sides) {
		return Term{}, gameerr.New(ErrInvalidExpression,
			"不存在这样的骰子哦：d%d。在这个维度中只存在以下这些骰子：%s", sides, sidesLabel)
	}
	return Term{Sign: sign, Count: count, Sides: sides}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func validSide(n int) bool {
	for _, v := range ValidSides {
		if v == n {
			return true
		}
	}
	return false
}

// MustParse parses expr and panics on error. Useful for package-level constants.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
