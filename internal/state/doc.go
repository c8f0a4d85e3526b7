// Package state holds the application state shared between the render
// loop and the background tasks that talk to the platform tools. All
// mutation goes through AppState methods holding an exclusive lock;
// the renderer reads one immutable Snapshot per frame. The lock is
// never held across an external command.
package state
