package host

import (
	"context"
	"testing"
	"time"

	"cityscape/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFyne(t *testing.T) *Fyne {
	t.Helper()
	return NewFyne(test.NewTempApp(t), WindowOptions{
		Title:       "Cityscape",
		Width:       640,
		Height:      480,
		ExitCommand: "exit_app",
	}, logger.NoOp{})
}

func waitForCall(t *testing.T, inv *recordingInvoker) string {
	t.Helper()
	select {
	case name := <-inv.calls:
		return name
	case <-time.After(2 * time.Second):
		t.Fatal("command was not invoked")
		return ""
	}
}

func TestFyneMenuExitInvokesCommand(t *testing.T) {
	f := newTestFyne(t)
	inv := newRecordingInvoker()
	f.Bind(inv)

	menu := f.window.MainMenu()
	require.NotNil(t, menu)
	require.Equal(t, "File", menu.Items[0].Label)
	item := menu.Items[0].Items[0]
	require.Equal(t, "Exit", item.Label)

	item.Action()

	assert.Equal(t, "exit_app", waitForCall(t, inv))
}

func TestFyneExitButtonInvokesCommand(t *testing.T) {
	f := newTestFyne(t)
	inv := newRecordingInvoker()
	f.Bind(inv)

	test.Tap(f.exitBtn)

	assert.Equal(t, "exit_app", waitForCall(t, inv))
}

func TestFyneExitBeforeBindIsIgnored(t *testing.T) {
	f := newTestFyne(t)

	assert.NotPanics(t, func() { f.requestExit() })
}

func TestFyneWindowConfiguration(t *testing.T) {
	f := newTestFyne(t)

	assert.Equal(t, "Cityscape", f.window.Title())
	assert.NotNil(t, f.window.Content())
}

func TestFyneRunOnce(t *testing.T) {
	f := newTestFyne(t)
	f.Bind(newRecordingInvoker())

	reason, err := f.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ReasonWindowClosed, reason)

	_, err = f.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestFyneQuitShortcutInvokesCommand(t *testing.T) {
	f := newTestFyne(t)
	inv := newRecordingInvoker()
	f.Bind(inv)

	assert.Equal(t, fyne.KeyQ, f.quitKey.KeyName)
	assert.Equal(t, fyne.KeyModifierShortcutDefault, f.quitKey.Modifier)

	f.onShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: fyne.KeyModifierShortcutDefault,
	})

	assert.Equal(t, "exit_app", waitForCall(t, inv))
}

func TestFyneOtherShortcutIgnored(t *testing.T) {
	f := newTestFyne(t)
	inv := newRecordingInvoker()
	f.Bind(inv)

	f.onShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyW,
		Modifier: fyne.KeyModifierShortcutDefault,
	})

	select {
	case name := <-inv.calls:
		t.Fatalf("unexpected command %q", name)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFyneQuitsOnCancel(t *testing.T) {
	f := newTestFyne(t)
	quit := make(chan struct{}, 1)
	f.quit = func() { quit <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.quitOnCancel(ctx, make(chan struct{}))

	assert.Len(t, quit, 1)
	assert.Equal(t, ReasonCanceled, Reason(f.reason.Load()))
}

func TestFyneNoQuitAfterStop(t *testing.T) {
	f := newTestFyne(t)
	quit := make(chan struct{}, 1)
	f.quit = func() { quit <- struct{}{} }

	stop := make(chan struct{})
	close(stop)
	f.quitOnCancel(context.Background(), stop)

	assert.Empty(t, quit)
	assert.Equal(t, ReasonWindowClosed, Reason(f.reason.Load()))
}
