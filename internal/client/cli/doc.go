// Package cli implements the interactive console of shigezane-admin: a
// read-eval-print loop over the application services with prompts for
// credentials and record fields, tables for listings and colored toasts
// for outcomes.
package cli
