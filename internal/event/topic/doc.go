// Package topic provides dotted event topics and wildcard matching.
//
// Topics name what changed, most general segment first:
//
//	scene.changed
//	selection.changed
//	mode.changed
//
// Subscription patterns may use wildcards:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// For example "*.changed" matches every editor notification and "**"
// matches everything.
package topic
