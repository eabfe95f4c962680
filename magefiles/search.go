// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the CLI and runs the GetData search demo.
func Search() error {
	mg.Deps(Build)
	return sh.RunV("./bin/" + binName)
}

// Token builds the CLI and requests a BizSearch token with the token masked.
func Token() error {
	mg.Deps(Build)
	return sh.RunV("./bin/"+binName, "token")
}
