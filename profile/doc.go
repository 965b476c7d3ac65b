// Package profile provides optional runtime profiling for ctext.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag. Without the tag [Config.Start] always returns a no-op
// [Profiler] and [Modes] reports nothing.
//
// # Modes
//
// With the tag, [Modes] lists the supported modes: allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, and trace.
//
// # Usage
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithPath(dir)).Start()
//	defer p.Stop()
//
// From the command line:
//
//	go build -tags pprof ./...
//	ctext --pprof-mode cpu -case upper "some text"
//	go tool pprof -http=: $XDG_CACHE_HOME/ctext/pprof/cpu.pprof
//
// Profiles are written to $XDG_CACHE_HOME/ctext/pprof unless --pprof-dir
// says otherwise. Building with the tag also registers the [net/http/pprof]
// handlers.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
