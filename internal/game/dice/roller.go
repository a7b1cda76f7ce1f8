package dice

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: every rolled face lies in [1, Sides]; result.Total is the signed
// sum of all terms.
func Roll(expr Expression, src Source) RollResult {
	total := 0
	var faces []int
	for _, t := range expr.Terms {
		if !t.IsDice() {
			total += t.Sign * t.Static
			faces = append(faces, t.Sign*t.Static)
			continue
		}
		for i := 0; i < t.Count; i++ {
			face := src.Intn(t.Sides) + 1
			total += t.Sign * face
			faces = append(faces, face)
		}
	}
	return RollResult{
		Expression: expr.Raw,
		Total:      total,
		Dice:       faces,
	}
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a RollResult or an ErrInvalidExpression error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
