// Package viewstate holds the controllers that drive repository fetches and
// expose their outcome as observable state.
//
// Each controller owns one Observable and one task scope. Actions publish the
// loading flag synchronously, run the fetch on a goroutine in the scope, then
// publish data or an error message and finally clear the loading flag.
// Overlapping actions are not serialized; the last task to finish wins unless
// the controller was built WithStaleDiscard, in which case only the newest
// task for a state slot may publish. Close cancels the scope and turns every
// later write into a no-op.
package viewstate
