package gamepad

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/mapview/internal/session"
)

const (
	deadzone     = 0.05
	pollDelayNS  = 16_000_000 // ~60Hz
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *DeviceMapping
	name     string
	id       sdl.JoystickID
}

// Reader reads the SDL3 Joystick API and turns button presses into navigation commands.
type Reader struct {
	state     PadState
	held      Button
	joysticks map[sdl.JoystickID]*joystickInfo
	activeID  sdl.JoystickID // the first connected joystick
	hasActive bool
	debug     bool
	commands  chan session.Command
	mu        sync.RWMutex
}

func NewReader(debug bool) *Reader {
	return &Reader{
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
		debug:     debug,
		commands:  make(chan session.Command, 64),
	}
}

// Commands returns the channel on which navigation commands are sent.
func (r *Reader) Commands() <-chan session.Command {
	return r.commands
}

// CurrentState returns the last polled sample.
func (r *Reader) CurrentState() PadState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Run initializes SDL and runs the main event+polling loop on the current thread
// until ctx is done.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("SDL init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	log.Println("SDL3 Joystick subsystem initialized")

	// Check for already-connected joysticks
	ids := sdl.GetJoysticks()
	for _, id := range ids {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		r.pollState()
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			devEvent := event.JDevice()
			r.openJoystick(devEvent.Which)

		case sdl.EventJoystickRemoved:
			devEvent := event.JDevice()
			r.removeJoystick(devEvent.Which)

		case sdl.EventJoystickButtonDown:
			if r.debug {
				be := event.JButton()
				log.Printf("[DEBUG] Button DOWN: index=%d joystick=%d", be.Button, be.Which)
			}

		case sdl.EventJoystickHatMotion:
			if r.debug {
				he := event.JHat()
				log.Printf("[DEBUG] Hat: index=%d value=0x%02X joystick=%d", he.Hat, he.Value, he.Which)
			}
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := GetMapping(vendorID, productID)

	info := &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
	}
	r.joysticks[jsID] = info

	numAxes := sdl.GetNumJoystickAxes(js)
	numButtons := sdl.GetNumJoystickButtons(js)
	numHats := sdl.GetNumJoystickHats(js)

	log.Printf("Joystick connected: %s (VID=%04X PID=%04X) mapping=%s axes=%d buttons=%d hats=%d",
		name, vendorID, productID, mapping.Name, numAxes, numButtons, numHats)

	// Use the first connected joystick as active
	if !r.hasActive {
		r.activeID = jsID
		r.hasActive = true
		log.Printf("Active joystick set: %s (ID=%d)", name, jsID)
	}
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	log.Printf("Joystick disconnected: %s", info.name)
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)

	if r.hasActive && r.activeID == instanceID {
		r.hasActive = false
		r.setState(PadState{})
		r.held = 0

		// Promote the next available joystick
		for id, js := range r.joysticks {
			if sdl.JoystickConnected(js.joystick) {
				r.activeID = id
				r.hasActive = true
				log.Printf("Active joystick switched to: %s (ID=%d)", js.name, id)
				break
			}
		}
	}
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
}

func (r *Reader) pollState() {
	if !r.hasActive {
		return
	}

	info, exists := r.joysticks[r.activeID]
	if !exists || !sdl.JoystickConnected(info.joystick) {
		return
	}

	js := info.joystick
	mapping := info.mapping
	var state PadState

	// Read axes
	for _, am := range mapping.Axes {
		raw := sdl.GetJoystickAxis(js, am.Index)
		if am.IsTrigger {
			val := ApplyDeadzone(NormalizeTrigger(raw, am.RawMin, am.RawMax), deadzone)
			switch am.Target {
			case AxisLT:
				state.LT = val
			case AxisRT:
				state.RT = val
			}
			continue
		}
		val := NormalizeAxis(raw)
		if am.Invert {
			val = -val
		}
		val = ApplyDeadzone(val, deadzone)
		switch am.Target {
		case AxisStickX:
			state.Stick.X = val
		case AxisStickY:
			state.Stick.Y = val
		}
	}

	// Read buttons
	numButtons := sdl.GetNumJoystickButtons(js)
	for _, bm := range mapping.Buttons {
		if bm.Index < numButtons && sdl.GetJoystickButton(js, bm.Index) {
			state.Buttons |= bm.Target
		}
	}

	// Read hat (D-pad)
	if mapping.HasHat && sdl.GetNumJoystickHats(js) > 0 {
		state.Buttons |= hatButtons(sdl.GetJoystickHat(js, 0))
	}

	r.mu.RLock()
	changed := Changed(r.state, state)
	r.mu.RUnlock()
	if !changed {
		return
	}
	r.setState(state)

	held := state.Digital(r.held)
	pressed := Pressed(r.held, held)
	r.held = held
	for _, cmd := range Commands(pressed) {
		r.emit(cmd)
	}
}

func hatButtons(hat uint8) Button {
	var b Button
	if hat&hatUp != 0 {
		b |= ButtonUp
	}
	if hat&hatRight != 0 {
		b |= ButtonRight
	}
	if hat&hatDown != 0 {
		b |= ButtonDown
	}
	if hat&hatLeft != 0 {
		b |= ButtonLeft
	}
	return b
}

func (r *Reader) setState(s PadState) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func (r *Reader) emit(cmd session.Command) {
	if r.debug {
		log.Printf("[DEBUG] Gamepad command: %s", cmd.Name)
	}
	select {
	case r.commands <- cmd:
	default:
		// Drop if channel is full to avoid blocking the SDL thread
	}
}
