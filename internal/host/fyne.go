package host

import (
	"context"
	"sync"
	"sync/atomic"

	"cityscape/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

type WindowOptions struct {
	Title  string
	Width  float32
	Height float32
	// ExitCommand is invoked by the File > Exit menu item, the quit shortcut
	// and the Exit button.
	ExitCommand string
}

// Fyne runs the application shell on a Fyne app with a single master window.
type Fyne struct {
	app     fyne.App
	window  fyne.Window
	opts    WindowOptions
	logger  logger.Logger
	exitBtn *widget.Button
	// quitKey triggers ExitCommand from the keyboard.
	quitKey *desktop.CustomShortcut
	// quit stops the event loop; replaced in tests.
	quit func()

	mu      sync.Mutex
	bridge  *Bridge
	started atomic.Bool
	reason  atomic.Int32
}

func NewFyne(a fyne.App, opts WindowOptions, log logger.Logger) *Fyne {
	f := &Fyne{
		app:    a,
		opts:   opts,
		logger: log,
	}
	f.quit = func() { fyne.Do(a.Quit) }
	f.reason.Store(int32(ReasonWindowClosed))
	f.buildWindow()
	return f
}

func (f *Fyne) buildWindow() {
	w := f.app.NewWindow(f.opts.Title)
	w.Resize(fyne.NewSize(f.opts.Width, f.opts.Height))
	w.CenterOnScreen()
	w.SetMaster()

	exitItem := fyne.NewMenuItem("Exit", f.requestExit)
	w.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File", exitItem)))

	f.quitKey = &desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: fyne.KeyModifierShortcutDefault,
	}
	w.Canvas().AddShortcut(f.quitKey, f.onShortcut)

	f.exitBtn = widget.NewButton("Exit", f.requestExit)
	w.SetContent(container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle(f.opts.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		f.exitBtn,
	)))

	w.SetOnClosed(func() {
		f.logger.Info("Host", "main window closed", nil)
	})

	f.window = w
}

func (f *Fyne) Bind(invoker Invoker) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bridge = NewBridge(context.Background(), invoker, f.logger)
}

func (f *Fyne) onShortcut(s fyne.Shortcut) {
	if s.ShortcutName() == f.quitKey.ShortcutName() {
		f.requestExit()
	}
}

func (f *Fyne) requestExit() {
	f.mu.Lock()
	bridge := f.bridge
	f.mu.Unlock()

	if bridge == nil {
		f.logger.Warning("Host", "exit requested before commands were bound", nil)
		return
	}
	f.logger.Debug("Host", "front-end command call", map[string]interface{}{
		"command": f.opts.ExitCommand,
	})
	bridge.Call(f.opts.ExitCommand)
}

// Run shows the window and blocks in the Fyne event loop. It must be called
// from the main goroutine.
func (f *Fyne) Run(ctx context.Context) (Reason, error) {
	if !f.started.CompareAndSwap(false, true) {
		return 0, ErrAlreadyRunning
	}

	stop := make(chan struct{})
	defer close(stop)
	go f.quitOnCancel(ctx, stop)

	f.logger.Info("Host", "event loop starting", map[string]interface{}{
		"title": f.opts.Title,
	})
	f.window.Show()
	f.app.Run()

	reason := Reason(f.reason.Load())
	f.logger.Info("Host", "event loop stopped", map[string]interface{}{
		"reason": reason.String(),
	})
	return reason, nil
}

// quitOnCancel stops the event loop when ctx is cancelled before stop closes.
func (f *Fyne) quitOnCancel(ctx context.Context, stop <-chan struct{}) {
	select {
	case <-ctx.Done():
		f.reason.Store(int32(ReasonCanceled))
		f.logger.Info("Host", "run context cancelled, quitting", nil)
		f.quit()
	case <-stop:
	}
}
