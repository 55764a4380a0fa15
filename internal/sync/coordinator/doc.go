// Package coordinator is the entry point the rest of hydrosync uses to sync.
//
// It sits on top of sync.Manager and adds what a single manager run does
// not know about:
//
//   - the signed-in check, which fails with sync.ErrNotAuthenticated before
//     anything is read or written and leaves the status alone
//   - the published status (Idle, Syncing, Success, Error), persisted per
//     user so a restart shows the last outcome
//   - the lastSyncAt watermark on the user root document
//   - single-flighting of concurrent calls
//   - an optional periodic loop
//
// # Usage Example
//
//	mgr := sync.NewDefaultSyncManager(sync.DefaultSyncers(ids, store, docs))
//	c := coordinator.New(mgr, ids, docs,
//	    coordinator.WithStatusPersistence(status.NewFileStatusPersistence(dir)),
//	    coordinator.WithInterval(15*time.Minute),
//	)
//
//	go func() { _ = c.Start(ctx) }()
//	defer c.Stop()
//
//	report, err := c.SyncAll(ctx)
//
// # Concurrency
//
// Calls to SyncAll made while a sync for the same user is running wait for
// that run and share its result; DownloadAll and UploadAll are single-flighted
// under their own keys. The shared run uses the context of the caller that
// started it.
package coordinator
