package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, c *Context, name string) any {
	t.Helper()
	v, err := c.Value(name)
	require.NoError(t, err)
	return v
}

func TestExecuteProgram(t *testing.T) {
	program := "declare A1 = 5;\ndeclare B1 = 10;\ndeclare C1 = A1+B1;"
	c := NewContext()
	require.NoError(t, c.Execute(program))

	assert.EqualValues(t, 5, value(t, c, "A1"))
	assert.EqualValues(t, 10, value(t, c, "B1"))
	assert.EqualValues(t, 15, value(t, c, "C1"))
}

func TestFloatDivision(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.Execute("declare A1 = 10/100;"))
	assert.InDelta(t, 0.1, value(t, c, "A1"), 1e-12)
}

func TestCommaDecimalPercentage(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.Execute("declare A1 = 10.05/100;"))
	assert.InDelta(t, 0.1005, value(t, c, "A1"), 1e-12)
}

func TestMinMax(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.Execute("declare A1 = 3;\ndeclare B1 = min(A1, 7);\ndeclare C1 = max(A1, 7);"))
	assert.EqualValues(t, 3, value(t, c, "B1"))
	assert.EqualValues(t, 7, value(t, c, "C1"))
}

func TestFailingLineDoesNotStopExecution(t *testing.T) {
	program := "declare A1 = 5;\ndeclare B1 = SUM(;\ndeclare C1 = A1*2;"
	c := NewContext()
	err := c.Execute(program)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B1")

	assert.EqualValues(t, 5, value(t, c, "A1"))
	assert.EqualValues(t, 10, value(t, c, "C1"))
	_, err = c.Value("B1")
	assert.Error(t, err)
}

func TestMalformedLine(t *testing.T) {
	c := NewContext()
	err := c.Execute("var A1 = 5;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a declaration")
}

func TestValueUndeclared(t *testing.T) {
	c := NewContext()
	_, err := c.Value("Z9")
	assert.Error(t, err)
}

func TestContextsAreIndependent(t *testing.T) {
	a := NewContext()
	require.NoError(t, a.Execute("declare A1 = 1;"))
	b := NewContext()
	_, err := b.Value("A1")
	assert.Error(t, err)
}

func TestEmptyProgram(t *testing.T) {
	c := NewContext()
	assert.NoError(t, c.Execute(""))
}
