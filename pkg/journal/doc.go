// Package journal records metadata about every generation call.
//
// A Record holds the operation, area, model, outcome, latency and token
// counts of one call. Prompt and response text are never stored.
//
// Records reach a Store through the Recorder, which writes asynchronously
// from a buffered channel so request handling never waits on the database.
// A full buffer drops the record. The Pruner enforces retention by age and by
// record count, and the Scheduler runs it on a cron expression.
//
//	store, err := journal.Open(&cfg.Journal)
//	recorder := journal.NewRecorder(store, cfg.Journal.BufferSize, collector)
//	defer recorder.Close()
package journal
