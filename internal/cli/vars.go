// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// analyze
	password string
	// analyze
	batchFile string
	// analyze
	showHash bool
	// analyze
	interactive bool
	// analyze
	secondOpinion bool
	// serve
	debug bool
)
