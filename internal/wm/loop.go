package wm

import (
	"context"
	"errors"
)

var (
	// ErrRestart is returned by Run when a restart was requested.
	ErrRestart = errors.New("restart requested")
	// ErrDisconnected is returned by Run when the event source closes.
	ErrDisconnected = errors.New("display connection closed")
)

// StopReason tells Run to return after the current event.
type StopReason int

const (
	StopNone StopReason = iota
	StopExit
	StopRestart
)

// Stop asks the run loop to end once the current event is handled.
func (s *State) Stop(r StopReason) {
	s.stop = r
}

// Command is work submitted to the run loop from another goroutine. Do runs
// on the loop goroutine; its result is sent on Reply when Reply is not nil.
type Command struct {
	Name  string
	Do    func(*State) (any, error)
	Reply chan<- Result
}

// Result is the outcome of a Command.
type Result struct {
	Data any
	Err  error
}

// Run processes events and commands until ctx is done, the event channel
// closes or a stop is requested.
func (s *State) Run(ctx context.Context, events <-chan Event, cmds <-chan Command) error {
	s.log.Info("event loop started")
	defer s.log.Info("event loop stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrDisconnected
			}
			s.step(ev)
		case cmd := <-cmds:
			s.execute(cmd)
		}

		switch s.stop {
		case StopExit:
			return nil
		case StopRestart:
			return ErrRestart
		}
	}
}

func (s *State) step(ev Event) {
	s.Dispatch(ev)
	if s.mode == ModeIdle && s.top != 0 {
		s.conn.Restack(s.top, StackAbove)
	}
}

func (s *State) execute(cmd Command) {
	var res Result
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("command panicked", "command", cmd.Name, "panic", r)
				res = Result{Err: errors.New("command failed")}
			}
		}()
		res.Data, res.Err = cmd.Do(s)
	}()
	if cmd.Reply != nil {
		cmd.Reply <- res
	}
}
