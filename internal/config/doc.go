// Package config provides the layered configuration of tessera.
//
// Settings come from three layers, each overriding the one before:
//
//  1. Built-in defaults (Default)
//  2. The user file, TOML or YAML by extension, with @include support
//  3. Environment variables named TESSERA_<SECTION>_<KEY>
//
// The file and environment layers are deep merged as generic maps and then
// decoded over the defaults into a typed Config. Unknown keys are rejected.
//
// Sections:
//
//	[snap]      sense_range, disable_modifier, restrict_modifier
//	[history]   max_entries
//	[pointer]   double_click_ms, double_click_distance, hit_tolerance,
//	            handle_size, nudge, nudge_large, duplicate_offset
//	[viewport]  zoom_step, min_zoom, max_zoom
//	[style]     stroke, stroke_width, fill, opacity, font_size
//	[keymap]    chord = "command arg=value ..."
//	[scripts]   name = "path/to/macro.lua"
//	[log]       level, file
//
// A Reloader watches the user file and hands each successfully validated
// Config to a callback.
package config
