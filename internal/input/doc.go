// Package input turns raw user input into editor commands.
//
// # Architecture
//
// The input system consists of several cooperating components:
//
//   - key: keyboard events, modifiers and chord parsing ("mod+z", "esc")
//   - pointer: pointer events in screen space and click synthesis
//   - keymap: chord to command bindings with user overrides
//   - intent: JSON UI intents such as {"type":"edit","field":"label"}
//   - mode: the interaction mode state machine shared by all tools
//
// Shortcuts and intents both resolve to a Command, which the editor routes
// to its tool behaviors.
package input
