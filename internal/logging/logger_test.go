package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger("world", Options{Console: &buf, ConsoleLevel: INFO})
	require.NoError(t, err)

	l.Debug("скрыто %d", 1)
	l.Info("чанк %d создан", 7)
	l.Error("ошибка")

	out := buf.String()
	assert.NotContains(t, out, "скрыто")
	assert.Contains(t, out, "[INFO] [world] чанк 7 создан")
	assert.Contains(t, out, "[ERROR]")
}

func TestLogger_FileSink(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger("physics", Options{Dir: dir, FileLevel: TRACE, ConsoleLevel: ERROR})
	require.NoError(t, err)

	l.Trace("приземление")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "повторное закрытие безопасно")

	files, err := filepath.Glob(filepath.Join(dir, "physics_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "[TRACE] [physics] приземление")
}

func TestLogger_NilAndNop(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Info("ничего") })
	assert.False(t, l.Enabled(ERROR))

	nop := NewNopLogger("x")
	assert.False(t, nop.Enabled(ERROR))
}

func TestDefaultLogger_SilentUntilInit(t *testing.T) {
	CloseDefaultLogger()
	assert.NotPanics(t, func() { Info("до инициализации") })

	var buf bytes.Buffer
	require.NoError(t, InitDefaultLogger("main", Options{Console: &buf, ConsoleLevel: DEBUG}))
	defer CloseDefaultLogger()

	Debug("после инициализации")
	assert.Contains(t, buf.String(), "после инициализации")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoggerManager(t *testing.T) {
	var buf bytes.Buffer
	lm := NewLoggerManager(Options{Console: &buf, ConsoleLevel: WARN})

	a := lm.MustGetLogger("world")
	b := lm.MustGetLogger("world")
	assert.Same(t, a, b)

	lm.MustGetLogger("api")
	assert.Equal(t, []string{"api", "world"}, lm.ListComponents())

	require.NoError(t, lm.SetLogLevel("world", DEBUG, ERROR))
	a.Debug("подробно")
	assert.Contains(t, buf.String(), "подробно")

	assert.Error(t, lm.SetLogLevel("missing", DEBUG, DEBUG))
	require.NoError(t, lm.CloseAll())
	assert.Empty(t, lm.ListComponents())
}

func TestLoggerManagerConfigureRelevelsExisting(t *testing.T) {
	var buf bytes.Buffer
	lm := NewLoggerManager(Options{Console: &buf, ConsoleLevel: ERROR})

	world := lm.MustGetLogger(ComponentWorld)
	world.Info("до настройки")
	assert.Empty(t, buf.String())

	lm.Configure(Options{Console: &buf, ConsoleLevel: INFO})
	world.Info("после настройки")
	assert.Contains(t, buf.String(), "после настройки")
	assert.Same(t, world, lm.MustGetLogger(ComponentWorld), "логгер не пересоздаётся")
}
