// Package mode provides the interaction mode state machine.
//
// The current mode is a single string shared by every tool behavior and
// acts as the gate deciding which behavior may react to an event. The set
// of modes is open: tools may introduce their own. Names follow the
// pattern "<tool>.<state>", for example "rect.ready" or "polygon.drawing";
// "idle" is the initial mode and the common terminal state.
//
// # Transitions
//
//	m := mode.NewManager()
//	m.OnChange(func(from, to string) { log.Printf("%s -> %s", from, to) })
//	m.Switch(mode.RectReady)
//
// Callbacks run synchronously after the switch, outside the manager's
// lock, so a callback may read the manager.
package mode
