// Package container implements capacity-bounded containers and the registry
// that names them.
//
// A Container is a total accumulator: deposits and withdrawals never fail,
// they are clamped so that 0 <= level <= capacity holds, and the caller
// learns from the returned amount whether a request was only partly applied.
//
// The Registry keys containers by sequential integer ids and is the
// authoritative state of the service. It can optionally be backed by a
// Repository (SQLiteRepository) so state survives restarts, and can announce
// changes to a Notifier (see the telemetry package).
//
// # Locking
//
// The registry structure and each entry are separate lock domains. Creating or
// deleting entries never waits on an entry being mutated, and a
// read-modify-write of one entry's level is atomic with respect to other
// requests on the same entry.
//
// Usage:
//
//	reg := container.NewRegistry()
//	id, _ := reg.Create(ctx, "Flour", 100, 10)
//	t, ok, _ := reg.Deposit(ctx, id, 150)
//	// ok == true, t.Applied == 90, t.Partial() == true
package container
