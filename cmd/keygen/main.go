// Copyright (c) 2024 Wiregram Authors

// keygen generates an RSA key pair and prints the public part with its
// MTProto fingerprint, ready to drop into a trusted-keys file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wiregram/wiregram/internal/keys"
)

func main() {
	bits := flag.Int("bits", 2048, "key size in bits (2048 or 4096)")
	out := flag.String("out", "", "write the private key PEM to this file instead of stdout")
	flag.Parse()

	key, err := keys.Generate(*bits)
	if err != nil {
		fmt.Fprintln(os.Stderr, "keygen:", err)
		os.Exit(1)
	}

	public := key.Public()
	fmt.Printf("fingerprint: %d\n", public.Fingerprint())
	fmt.Printf("%s", public.ToPEM())

	privatePEM, err := key.ToPEM()
	if err != nil {
		fmt.Fprintln(os.Stderr, "keygen:", err)
		os.Exit(1)
	}

	if *out == "" {
		fmt.Printf("%s", privatePEM)
		return
	}

	if err := os.WriteFile(*out, privatePEM, 0o600); err != nil {
		fmt.Fprintln(os.Stderr, "keygen:", err)
		os.Exit(1)
	}
	fmt.Println("private key written to", *out)
}
