package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/workbench"
	"github.com/aretw0/workbench/internal/config"
	"github.com/aretw0/workbench/internal/logging"
	"github.com/aretw0/workbench/pkg/adapters/clipboard"
	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/observability"
	"github.com/aretw0/workbench/pkg/panel"
	"github.com/aretw0/workbench/pkg/presenter"
	"github.com/aretw0/workbench/pkg/validate"
)

func newTestWorkbench(t *testing.T) *workbench.Workbench {
	t.Helper()
	wb, err := NewWorkbench(config.Default(), logging.NewNop(), domain.LifecycleHooks{})
	require.NoError(t, err)
	return wb
}

func TestRunTool_Text(t *testing.T) {
	wb := newTestWorkbench(t)
	var out bytes.Buffer

	err := RunTool(context.Background(), wb, RunOptions{
		Tool: "case_convert",
		Args: []string{"text=hello world", "mode=title"},
	}, &out, io.Discard)

	require.NoError(t, err)
	assert.Equal(t, "Hello World\n", out.String())
	assert.Equal(t, panel.CaseConverter, wb.Panels().Active())
}

func TestRunTool_Failure(t *testing.T) {
	wb := newTestWorkbench(t)
	var out bytes.Buffer

	var errOut bytes.Buffer
	err := RunTool(context.Background(), wb, RunOptions{Tool: "bmi", Args: []string{"weight=0", "height=0"}}, &out, &errOut)

	assert.ErrorIs(t, err, ErrToolFailed)
	assert.Empty(t, out.String())
	assert.Equal(t, "Error: Please enter valid weight and height.\n", errOut.String())
}

func TestRunTool_BadInvocations(t *testing.T) {
	wb := newTestWorkbench(t)

	tests := []struct {
		name string
		opts RunOptions
		want string
	}{
		{"Unknown Tool", RunOptions{Tool: "nope"}, `unknown tool "nope"`},
		{"Bad Argument", RunOptions{Tool: "bmi", Args: []string{"weight"}}, `invalid argument "weight"`},
		{"Missing File", RunOptions{Tool: "png_to_jpg", File: filepath.Join(t.TempDir(), "missing.png")}, "failed to read"},
		{"Copy Without Clipboard", RunOptions{Tool: "word_count", Args: []string{"text=hi"}, Copy: true}, "clipboard unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunTool(context.Background(), wb, tt.opts, io.Discard, io.Discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunTool_JSON(t *testing.T) {
	wb := newTestWorkbench(t)
	var out bytes.Buffer

	err := RunTool(context.Background(), wb, RunOptions{
		Tool: "convert_length",
		Args: []string{"cm=100"},
		JSON: true,
	}, &out, io.Discard)
	require.NoError(t, err)

	var res domain.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.True(t, res.OK)
	assert.Equal(t, domain.ToolID("convert_length"), res.Tool)
	assert.Contains(t, res.Output.Text, "39.37")
	assert.Contains(t, out.String(), "\n  \"ok\": true")
}

func TestRunTool_Copy(t *testing.T) {
	wb := newTestWorkbench(t)
	clip := &clipboard.Memory{}
	var out bytes.Buffer

	err := RunTool(context.Background(), wb, RunOptions{
		Tool:      "url_encode",
		Args:      []string{"text=a b&c"},
		Copy:      true,
		Clipboard: clip,
	}, &out, io.Discard)

	require.NoError(t, err)
	assert.Equal(t, "a%20b%26c", clip.Text)
	assert.Contains(t, out.String(), ">>> "+presenter.CopiedLabel)
}

func TestRunTool_FileAndArtifact(t *testing.T) {
	wb := newTestWorkbench(t)
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	src := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(src, buf.Bytes(), 0o644))

	var out bytes.Buffer
	err := RunTool(context.Background(), wb, RunOptions{Tool: "png_to_jpg", File: src, Out: dir}, &out, io.Discard)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "photo.jpg"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xFF, 0xD8}))
	assert.Contains(t, out.String(), "Saved")
}

func TestRunTool_ArtifactWithoutOut(t *testing.T) {
	wb := newTestWorkbench(t)
	var out bytes.Buffer

	err := RunTool(context.Background(), wb, RunOptions{Tool: "qr_code", Args: []string{"text=hi"}}, &out, io.Discard)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "image/png")
	assert.Contains(t, out.String(), "use --out")
}

func TestNewSessionManager_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultPanel = panel.QRGenerator

	m, err := NewSessionManager(context.Background(), cfg, logging.NewNop(), domain.LifecycleHooks{})
	require.NoError(t, err)

	state, err := m.Current(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, panel.QRGenerator, state.Active)
}

func TestNewSessionManager_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()
	ctx := context.Background()

	m, err := NewSessionManager(ctx, cfg, logging.NewNop(), domain.LifecycleHooks{})
	require.NoError(t, err)

	_, err = m.Activate(ctx, "s1", panel.JSONFormatter)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cfg.Redis.Prefix+"s1"))

	mr.Close()
	_, err = NewSessionManager(ctx, cfg, logging.NewNop(), domain.LifecycleHooks{})
	assert.ErrorContains(t, err, "redis session store unavailable")
}

func TestNewHooks_FeedsMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	hooks := NewHooks(logging.NewNop(), metrics)
	require.NotNil(t, hooks.OnToolReturn)

	wb, err := NewWorkbench(config.Default(), logging.NewNop(), hooks)
	require.NoError(t, err)
	wb.Run(context.Background(), "word_count", domain.Input{"text": "a b"})

	var out bytes.Buffer
	require.NoError(t, RunTool(context.Background(), wb, RunOptions{Tool: "password", Args: []string{"length=8"}}, &out, io.Discard))
	assert.Len(t, strings.TrimSpace(out.String()), 8)
}

func TestApplyInputLimit(t *testing.T) {
	t.Setenv(validate.EnvMaxInputSize, "")

	applyInputLimit(validate.DefaultMaxInputSize)
	assert.Equal(t, validate.DefaultMaxInputSize, validate.MaxInputSize())

	applyInputLimit(64)
	assert.Equal(t, 64, validate.MaxInputSize())

	// The environment wins over the settings file.
	applyInputLimit(128)
	assert.Equal(t, 64, validate.MaxInputSize())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewLogger("off")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}

func TestColorJSON(t *testing.T) {
	plain := ColorJSON([]byte(`{"a":1}`), false)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(plain))

	colored := ColorJSON([]byte(`{"a":1}`), true)
	assert.Contains(t, string(colored), "\x1b[")
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestInterruptibleReader(t *testing.T) {
	cancel := make(chan struct{})
	r := NewInterruptibleReader(strings.NewReader("line\n"), cancel)

	buf := make([]byte, 16)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(buf[:n]))

	close(cancel)
	_, err = r.Read(buf)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.NoError(t, handleExecutionError(err))
	assert.Error(t, handleExecutionError(errors.New("boom")))
}

func TestRunShell_Headless(t *testing.T) {
	wb := newTestWorkbench(t)
	var out bytes.Buffer

	err := RunShell(context.Background(), wb, ShellOptions{
		Input:    strings.NewReader("base64_encode text=hi\n:quit\n"),
		Output:   &out,
		Headless: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "aGk=\nBye!\n", out.String())
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Serve(ctx, nil, 0, logging.NewNop())
	assert.NoError(t, err)
}
