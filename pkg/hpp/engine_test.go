package hpp

import (
	"testing"
	"time"

	"github.com/hpp-embedded/hpp/internal/store"
	"github.com/stretchr/testify/require"
)

func TestRunArithmeticAndWriteln(t *testing.T) {
	var lines []string
	e := New(WithWriteln(func(s string) { lines = append(lines, s) }))

	v, ok := e.Run(`a = 2; b = 3; writeln(a * b); return a * b;`, "")
	require.True(t, ok)
	require.Equal(t, "6", v)
	require.Equal(t, []string{"6"}, lines)
}

func TestRunCanBeCalledRepeatedlyAgainstSameStore(t *testing.T) {
	e := New()

	_, ok := e.Run(`Total = 1;`, "")
	require.True(t, ok)

	v, ok := e.Run(`Total = Total + 1; return Total;`, "")
	require.True(t, ok)
	require.Equal(t, "2", v)

	v, ok = e.Run(`Total = Total + 1; return Total;`, "")
	require.True(t, ok)
	require.Equal(t, "3", v)
}

func TestRunSourceDecodesEncodedScript(t *testing.T) {
	e := New()

	raw := []byte{0xFF, 0xFE} // UTF-16LE BOM
	for _, r := range "return 1+1;" {
		raw = append(raw, byte(r), 0)
	}

	v, ok, err := e.RunSource(raw, "", "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", v)
}

func TestLastErrorAfterFailedRun(t *testing.T) {
	e := New()

	v, ok := e.Run(`writeln(unknown);`, "ReturnWithError")
	require.True(t, ok)
	require.NotEmpty(t, v)

	require.NotNil(t, e.LastError())
	require.Equal(t, UnknownVariable, e.LastError().Kind)
}

func TestTimeoutAfterAbortsLongRunningLoop(t *testing.T) {
	e := New(WithPoll(TimeoutAfter(10 * time.Millisecond)))

	_, ok := e.Run(`while(true) {}`, "")
	require.False(t, ok)
}

func TestHookIsConsultedBeforeUnknownFunctionError(t *testing.T) {
	called := false
	e := New(WithHook(func(s *store.Store, name, paramTemplate, resultKey string) []byte {
		called = true
		if name != "DoubleIt" {
			return nil
		}
		return []byte("ok")
	}))

	v, ok := e.Run(`return DoubleIt(21);`, "")
	require.True(t, ok)
	require.True(t, called)
	require.Equal(t, "ok", v)
}
