// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fromusage command synthesizes TypeScript values from how they are
// used. Run "fromusage help" for usage.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fromusage/fromusage/internal/cmd"
)

var version = "" // if set by the linker, overrides the module version

func main() {
	if version != "" {
		cmd.Version = version
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cmd.New(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
