// Package event provides a synchronous publish/subscribe bus.
//
// The editor publishes a notification after each input event settles so
// that the renderer, scripts and the application can react to new state.
// Delivery happens on the publisher's goroutine, in subscription order,
// before Publish returns:
//
//	bus := event.NewBus()
//	sub, _ := bus.Subscribe("*.changed", func(ctx context.Context, ev event.Event) error {
//		log.Printf("%s from %s", ev.Topic, ev.Source)
//		return nil
//	})
//	defer bus.Unsubscribe(sub)
//
// A panicking handler is recovered and reported as an error; the remaining
// handlers still run.
package event
