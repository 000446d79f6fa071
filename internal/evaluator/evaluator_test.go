// Talon - UCI chess engine in Go
//
// MIT License. See LICENSE.

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talonchess/talon/internal/position"
	. "github.com/talonchess/talon/internal/types"
)

func TestStartposIsBalanced(t *testing.T) {
	pos := position.NewPosition()
	e := NewEvaluator()
	assert.Equal(t, Value(0), e.Evaluate(pos))
}

func TestSideToMoveFlipsSign(t *testing.T) {
	white, err := position.NewPositionFen("4k3/8/8/8/8/8/8/4KQ2 w - - 0 1")
	require.NoError(t, err)
	black, err := position.NewPositionFen("4k3/8/8/8/8/8/8/4KQ2 b - - 0 1")
	require.NoError(t, err)

	e := NewEvaluator()
	assert.Equal(t, e.Evaluate(white), -e.Evaluate(black))
}

func TestMaterialAdvantageIsPositive(t *testing.T) {
	pos, err := position.NewPositionFen("4k3/8/8/8/8/8/8/4KQ2 w - - 0 1")
	require.NoError(t, err)
	e := NewEvaluator()
	assert.Greater(t, int(e.Evaluate(pos)), 0)
}

// TestBareKingScoreRespondsToKingSquare checks that once black has no
// material left, moving its king changes the evaluated score: the
// king-edge mating-assist term of spec section 4.D is active.
func TestBareKingScoreRespondsToKingSquare(t *testing.T) {
	center, err := position.NewPositionFen("8/8/3k4/8/3QK3/8/8/8 w - - 0 1")
	require.NoError(t, err)
	corner, err := position.NewPositionFen("7k/8/8/8/3QK3/8/8/8 w - - 0 1")
	require.NoError(t, err)

	e := NewEvaluator()
	assert.NotEqual(t, e.Evaluate(center), e.Evaluate(corner),
		"a bare king's square should affect the score via the king-edge term")
}
