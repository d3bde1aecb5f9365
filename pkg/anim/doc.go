// Package anim plays the one-shot intro animation.
//
// A [Scheduler] owns a single clock. The host calls [Scheduler.Tick] once per
// frame with the current time; the scheduler eases the raw progress with
// [EaseInOutQuart], asks its [Policy] which prefix of each segment is
// visible, and returns the complete list of shapes for that frame. Hosts
// replace whatever they drew on the previous frame with the new list.
//
// When the raw progress reaches 1 the scheduler commits every segment as a
// permanent stroke through its [stroke.Committer] and becomes Complete. It
// never runs again. [Scheduler.Cancel] stops it at any point without
// committing anything.
//
// # Policies
//
// [SequentialPolicy] reveals segments one after another, each taking an equal
// share of the eased timeline. [StaggeredPolicy] gives every segment its own
// random delay and duration so many segments grow at once.
package anim
