package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll evaluates a parsed expression and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("total", result.Total),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or an ErrInvalidExpression error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// RollPercentile rolls a modified d100 and logs every tens candidate.
func (r *Roller) RollPercentile(modifier int) PercentileRoll {
	p := RollPercentile(modifier, r.src)
	r.logger.Debug("percentile roll",
		zap.Int("modifier", p.Modifier),
		zap.Int("unit", p.Unit),
		zap.Ints("tens", p.Tens),
		zap.Int("total", p.Total),
	)
	return p
}

// Secret rolls expr and returns its total obscured inside random digits.
// Only the digits are logged, never the plain total.
func (r *Roller) Secret(expr string) (string, error) {
	e, err := Parse(expr)
	if err != nil {
		return "", err
	}
	secret := Obscure(Roll(e, r.src).Total, r.src)
	r.logger.Debug("secret roll",
		zap.String("expression", e.Raw),
		zap.String("secret", secret),
	)
	return secret, nil
}
