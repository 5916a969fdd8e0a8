package main

import (
	"flag"
	"fmt"
	"os"

	"rrp.dev/config"
	"rrp.dev/token"
)

// add implements "rrp add": registers a server and generates a fresh token
// for it, printing the hashed token the operator must add to that server's
// clients.toml. Grounded on original_source/client/src/cli.rs's
// Commands::Add.
func (s *State) add(args ...string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	identifier := fs.String("identifier", "", "a unique identifier for this server")
	url := fs.String("url", "", "the server address, e.g. https://example.com:3600")
	certificatePath := fs.String("certificate", "", "path to the server's tls certificate, in pem format")
	certificateHostname := fs.String("certificate-hostname", "", "the certificate hostname, defaults to localhost")
	fs.Parse(args)

	if *identifier == "" || *url == "" || *certificatePath == "" {
		s.exitf("-identifier, -url and -certificate are required")
		return
	}

	certificate, err := os.ReadFile(*certificatePath)
	if err != nil {
		s.exitf("failed to read the server's certificate: %v", err)
		return
	}

	hostname := *certificateHostname
	if hostname == "" {
		hostname = "localhost"
	}

	rawToken, err := token.Generate()
	if err != nil {
		s.exitf("failed to generate a token: %v", err)
		return
	}

	entry := config.ServerEntry{
		Identifier:          *identifier,
		URL:                 *url,
		CertificateHostname: hostname,
		Certificate:         string(certificate),
		Token:               rawToken,
	}
	if err := s.servers.Add(entry); err != nil {
		s.exitf("failed to update the server list: %v", err)
		return
	}

	hashedToken, err := token.Hash(rawToken)
	if err != nil {
		s.exitf("failed to hash the generated token: %v", err)
		return
	}

	fmt.Printf("%q was added successfully.\n\nThe generated hashed client token is:\n%q\n", *identifier, hashedToken)
}
