package main

import (
	"context"
	"flag"

	"rrp.dev/driver"
)

// expose implements "rrp expose": connects to a known server and exposes a
// local TCP port through it. Grounded on
// original_source/client/src/cli.rs's Commands::Expose.
func (s *State) expose(args ...string) {
	fs := flag.NewFlagSet("expose", flag.ExitOnError)
	identifier := fs.String("server", "", "the identifier of the server to expose the port through")
	protocol := fs.String("protocol", "", "the protocol to expose, only tcp is supported")
	local := fs.Uint("local", 0, "the local port to expose")
	external := fs.Uint("external", 0, "the external port to request, 0 lets the server choose")
	fs.Parse(args)

	if *identifier == "" || *local == 0 {
		s.exitf("-server and -local are required")
		return
	}
	if *protocol != "tcp" {
		s.exitf("-protocol must be tcp, got %q", *protocol)
		return
	}

	server, ok := s.servers.Get(*identifier)
	if !ok {
		s.exitf("can not find a server with %q as identifier", *identifier)
		return
	}

	ctx := context.Background()
	conn, err := driver.Dial(ctx, server)
	if err != nil {
		s.exitf("failed to connect to %q: %v", *identifier, err)
		return
	}
	defer conn.Close()

	if err := driver.Expose(ctx, conn, uint16(*local), uint16(*external)); err != nil {
		s.exitf("%v", err)
	}
}
