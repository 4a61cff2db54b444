package gamepad

import "github.com/soar/mapview/internal/session"

// navBindings maps newly pressed buttons to session commands.
var navBindings = map[Button]session.Command{
	ButtonUp:     {Name: session.CmdCursor, DRow: -1},
	ButtonDown:   {Name: session.CmdCursor, DRow: 1},
	ButtonLeft:   {Name: session.CmdCursor, DCol: -1},
	ButtonRight:  {Name: session.CmdCursor, DCol: 1},
	ButtonA:      {Name: session.CmdToggleCell},
	ButtonB:      {Name: session.CmdClearSelection},
	ButtonX:      {Name: session.CmdDetail},
	ButtonY:      {Name: session.CmdFlip},
	ButtonLB:     {Name: session.CmdPrevPreset},
	ButtonRB:     {Name: session.CmdNextPreset},
	ButtonLT:     {Name: session.CmdPrevPage},
	ButtonRT:     {Name: session.CmdNextPage},
	ButtonSelect: {Name: session.CmdView, View: "both"},
	ButtonStart:  {Name: session.CmdView, View: "front"},
}

// Commands returns the commands for every button in pressed, lowest bit first.
func Commands(pressed Button) []session.Command {
	var out []session.Command
	pressed.Each(func(b Button) {
		if cmd, ok := navBindings[b]; ok {
			out = append(out, cmd)
		}
	})
	return out
}
