// Copyright (c) 2024 Wiregram Authors

// tlprobe decodes a hex-encoded TL buffer as a named record type and
// pretty-prints the result. Handy when staring at captured handshake or
// chat payloads.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/k0kubun/pp"

	"github.com/wiregram/wiregram/internal/encoding/tl"
	"github.com/wiregram/wiregram/internal/mtproto/objects"
)

var decoders = map[string]func(*tl.Decoder) (any, error){
	"chatfull": func(d *tl.Decoder) (any, error) {
		return objects.DecodeChatFull(d)
	},
	"userfull": func(d *tl.Decoder) (any, error) {
		return objects.DecodeUserFull(d)
	},
	"photo": func(d *tl.Decoder) (any, error) {
		return objects.DecodePhoto(d)
	},
	"notifysettings": func(d *tl.Decoder) (any, error) {
		return objects.DecodePeerNotifySettings(d)
	},
	"respq": func(d *tl.Decoder) (any, error) {
		return objects.DecodeResPQ(d)
	},
	"dhparams": func(d *tl.Decoder) (any, error) {
		return objects.DecodeServerDHParams(d)
	},
}

func main() {
	typeName := flag.String("type", "chatfull", "record type: "+strings.Join(typeNames(), ", "))
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tlprobe -type chatfull <hex>")
		os.Exit(2)
	}

	decode, ok := decoders[strings.ToLower(*typeName)]
	if !ok {
		fmt.Fprintln(os.Stderr, "tlprobe: unknown type", *typeName)
		os.Exit(2)
	}

	data, err := hex.DecodeString(strings.TrimSpace(flag.Arg(0)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "tlprobe: bad hex:", err)
		os.Exit(1)
	}

	obj, err := decode(tl.NewDecoderBytes(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, "tlprobe:", err)
		os.Exit(1)
	}

	pp.Println(obj)
}

func typeNames() []string {
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	return names
}
