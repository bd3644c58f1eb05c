// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the contentctl command tree.
//
// Commands share an App that holds the loaded settings and the logger. Output
// meant for the user goes to the App's stdout; structured log lines go to its
// stderr through charmbracelet/log.
package cmd
