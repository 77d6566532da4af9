// Package proc feeds streaming fixed-size records into the standard
// input of an external process.
//
// A Sink launches a shell command with its stdin bound to the read end
// of a pipe. The write end stays in the parent, marked nonblocking, and
// is fronted by a fixed-capacity buffer, so a Work call never blocks on
// a slow child: it accepts the records that fit, pushes what it can
// into the kernel pipe, and reports the accepted count. A full pipe is
// backpressure, not an error — the caller re-offers the remainder
// later (stream.Runner does exactly that).
//
// Close switches the descriptor back to blocking, drains every record
// that was ever accepted, signals end-of-input by closing the pipe,
// reaps the child, and logs its exit status.
//
//	sink, err := proc.New(proc.Config{ItemSize: 4, Command: "wc -c > out"})
//	if err != nil { ... }
//	n, err := sink.Work(records)
//	...
//	err = sink.Close()
package proc
