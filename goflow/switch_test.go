package goflow_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAssigned(t *testing.T, want []string, res interface{ Names() []string }) {
	t.Helper()
	if diff := cmp.Diff(want, res.Names()); diff != "" {
		t.Errorf("assigned variables mismatch (-want +got):\n%s", diff)
	}
}

func TestExpressionSwitch(t *testing.T) {
	t.Run("WithDefault", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(x int) {
	var a, b int
	switch x {
	case 1:
		a, b = 1, 1
	case 2:
		a = 2
	default:
		a = 3
	}
	use(a, b)
}`)
		require.True(t, res.Exit.Reachable())
		assertAssigned(t, []string{"a"}, res.Exit)
		assert.Empty(t, res.Diagnostics)
	})

	t.Run("WithoutDefault", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(x int) {
	var a int
	switch x {
	case 1, 2:
		a = 1
	case 3:
		a = 2
	}
	use(a)
}`)
		require.True(t, res.Exit.Reachable())
		assert.Empty(t, res.Exit.Names())
	})

	t.Run("AllCasesReturn", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(x int) int {
	switch x {
	case 1:
		return 1
	default:
		panic("no")
	}
}`)
		assert.False(t, res.Exit.Reachable())
	})

	t.Run("ConstantTag", func(t *testing.T) {
		res, c := checkFunc(t, `
func f() {
	var a, b int
	switch 2 {
	case 1:
		a = 1
	case 2:
		a, b = 2, 2
	default:
		b = 3
	}
	use(a, b)
}`)
		assertAssigned(t, []string{"a", "b"}, res.Exit)
		assert.Equal(t, []int{8, 12}, lines(c, res.Diagnostics))
	})

	t.Run("ConstantWithoutMatch", func(t *testing.T) {
		res, c := checkFunc(t, `
const mode = "fast"

func f() {
	var a int
	switch mode {
	case "slow":
		a = 1
	}
	use(a)
}`)
		require.True(t, res.Exit.Reachable())
		assert.Empty(t, res.Exit.Names())
		assert.Equal(t, []int{10}, lines(c, res.Diagnostics))
	})

	t.Run("NonConstantCaseStopsFolding", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(y int) {
	switch 2 {
	case 1:
	case y:
	case 2:
	}
}`)
		assert.Empty(t, res.Diagnostics)
	})

	t.Run("Tagless", func(t *testing.T) {
		res, c := checkFunc(t, `
const debug = true

func f(x int) {
	var a int
	switch {
	case debug:
		a = 1
	default:
		return
	}
	use(a)
}`)
		assertAssigned(t, []string{"a"}, res.Exit)
		assert.Equal(t, []int{12}, lines(c, res.Diagnostics))
	})

	t.Run("Fallthrough", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(x int) {
	var a, b int
	switch x {
	case 1:
		a = 1
		fallthrough
	default:
		b = 2
	}
	use(a, b)
}`)
		assertAssigned(t, []string{"b"}, res.Exit)
	})

	t.Run("FallthroughFromConstant", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f() {
	var a, b int
	switch 1 {
	case 1:
		a = 1
		fallthrough
	case 2:
		b = 2
	}
	use(a, b)
}`)
		assert.Empty(t, res.Diagnostics, "a case entered by fallthrough is reachable")
		assertAssigned(t, []string{"a", "b"}, res.Exit)
	})

	t.Run("UnreachableSwitchIsQuiet", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f() {
	return
	switch 1 {
	case 2:
	}
}`)
		assert.Empty(t, res.Diagnostics)
	})
}

func TestTypeSwitch(t *testing.T) {
	t.Run("Incomplete", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(x interface{}) {
	var a int
	switch v := x.(type) {
	case int:
		a = v
	case string, bool:
		a = 1
		use(v)
	}
	use(a)
}`)
		require.True(t, res.Exit.Reachable())
		assert.Empty(t, res.Exit.Names())
		assert.Empty(t, res.Diagnostics)
	})

	t.Run("Complete", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(x interface{}) {
	var a int
	switch x.(type) {
	case nil:
		a = 1
	case int:
		a = 2
	case interface{}:
		a = 3
	}
	use(a)
}`)
		assertAssigned(t, []string{"a"}, res.Exit)
	})

	t.Run("NilWithoutCatchAll", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(x interface{}) {
	var a int
	switch x.(type) {
	case nil:
		a = 1
	case error:
		a = 2
	}
	use(a)
}`)
		assert.Empty(t, res.Exit.Names())
	})

	t.Run("BindsClauseVariable", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(x error) {
	var a int
	switch v := x.(type) {
	case nil, error:
		a = 1
		use(v)
	}
	use(a)
}`)
		assertAssigned(t, []string{"a", "v"}, res.Exit)
	})

	t.Run("DefaultIsReachable", func(t *testing.T) {
		res, _ := checkFunc(t, `
func f(x interface{}) {
	switch x.(type) {
	case nil, interface{}:
		return
	default:
	}
}`)
		assert.Empty(t, res.Diagnostics)
		assert.True(t, res.Exit.Reachable())
	})
}
