package main

import (
	"fmt"
	"sort"
)

// list implements "rrp list", a supplement to the original command set:
// printing every server known to this client, since the original only ever
// offered add/expose and expected operators to read servers.toml by hand.
func (s *State) list(args ...string) {
	entries := s.servers.All()
	if len(entries) == 0 {
		fmt.Println("no servers configured; use \"rrp add\" to add one")
		return
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Identifier < entries[j].Identifier })
	for _, e := range entries {
		fmt.Printf("%s\t%s\t%s\n", e.Identifier, e.URL, e.CertificateHostname)
	}
}
