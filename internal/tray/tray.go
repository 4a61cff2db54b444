package tray

import (
	"log"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"

	"github.com/soar/mapview/internal/session"
)

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// Commander applies the navigation commands offered in the menu.
type Commander interface {
	Apply(session.Command) error
}

// Tray manages the system tray icon and menu
type Tray struct {
	url          string
	commands     Commander
	shutdownFunc ShutdownFunc
	once         sync.Once
	shuttingDown atomic.Bool
	menuOpen     *systray.MenuItem
	menuExit     *systray.MenuItem
	actions      []menuAction
}

type menuAction struct {
	title, tooltip string
	cmd            session.Command
	item           *systray.MenuItem
}

func defaultActions() []menuAction {
	return []menuAction{
		{title: "Next Preset", tooltip: "Switch to the next mapping preset", cmd: session.Command{Name: session.CmdNextPreset}},
		{title: "Previous Preset", tooltip: "Switch to the previous mapping preset", cmd: session.Command{Name: session.CmdPrevPreset}},
		{title: "Flip View", tooltip: "Show the other face", cmd: session.Command{Name: session.CmdFlip}},
		{title: "Next Detail", tooltip: "Cycle summary and mapping overlays", cmd: session.Command{Name: session.CmdDetail}},
		{title: "Next Page", tooltip: "Show the next callout page", cmd: session.Command{Name: session.CmdNextPage}},
	}
}

// New creates a new Tray instance
func New(url string, commands Commander, shutdownFn ShutdownFunc) *Tray {
	return &Tray{
		url:          url,
		commands:     commands,
		shutdownFunc: shutdownFn,
		actions:      defaultActions(),
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// onReady is called when the tray is ready
func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("mapview")
	systray.SetTooltip("mapview - " + t.url)

	t.menuOpen = systray.AddMenuItem("Open Browser", "Open web interface")
	systray.AddSeparator()
	for i := range t.actions {
		a := &t.actions[i]
		a.item = systray.AddMenuItem(a.title, a.tooltip)
		go t.handleAction(a)
	}
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	log.Println("System tray initialized")
}

func (t *Tray) handleAction(a *menuAction) {
	for range a.item.ClickedCh {
		if t.shuttingDown.Load() {
			return
		}
		t.apply(a.cmd)
	}
}

func (t *Tray) apply(cmd session.Command) {
	if err := t.commands.Apply(cmd); err != nil {
		log.Printf("Tray command failed: %v", err)
	}
}

// handleMenuClicks processes menu item clicks without blocking
func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

// onExit is called when the tray is exiting
func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	log.Println("System tray exiting")
}

// openBrowser opens the default web browser
func (t *Tray) openBrowser() {
	if t.shuttingDown.Load() {
		return
	}
	if err := browserCommand(runtime.GOOS, t.url).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

func browserCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
