// Command rrp is the reverse proxy client: it manages the set of known
// servers and exposes local TCP services through them. Grounded on
// cmd/upspin/main.go's subcommand dispatch and
// original_source/client/src/cli.rs's command set.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"rrp.dev/config"
	"rrp.dev/internal/rpaths"
)

var commands = map[string]func(*State, ...string){
	"add":    (*State).add,
	"expose": (*State).expose,
	"list":   (*State).list,
}

// State carries the resources every subcommand needs.
type State struct {
	op       string
	dir      string
	servers  *config.ServerList
	exitCode int
}

func newState(op string) *State {
	dir, err := rpaths.ConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rrp: %v\n", err)
		os.Exit(1)
	}
	servers, err := config.LoadServerList(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rrp: %v\n", err)
		os.Exit(1)
	}
	return &State{op: op, dir: dir, servers: servers}
}

func (s *State) exitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "rrp: %s: %s\n", s.op, fmt.Sprintf(format, args...))
	s.exitCode = 1
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	state := newState(strings.ToLower(os.Args[1]))
	args := os.Args[2:]

	fn := commands[state.op]
	if fn == nil {
		fmt.Fprintf(os.Stderr, "rrp: no such command %q\n", os.Args[1])
		usage()
	}
	fn(state, args...)
	os.Exit(state.exitCode)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage of rrp:\n")
	fmt.Fprintf(os.Stderr, "\trrp <command> [flags]\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	var names []string
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "\t%s\n", name)
	}
	os.Exit(2)
}
