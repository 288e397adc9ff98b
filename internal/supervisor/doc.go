// SunuDeal Reco - Marketplace Recommendation Service
// Copyright 2026 SunuDeal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/sunudeal/reco

// Package supervisor builds the suture supervision tree that keeps the
// long-running parts of the service alive.
//
// The tree has two layers:
//   - storage: interaction store maintenance (Badger GC, size gauge)
//   - api: the HTTP server
//
// A crash in the storage layer is restarted in isolation and never takes
// the API layer down with it. Supervision events are logged through
// sutureslog so restarts and backoffs show up in the structured log
// stream like everything else.
package supervisor
