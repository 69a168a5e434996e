// Package gateway implements the device table behind the gateway
// abstraction.
//
// Each connected peripheral occupies one table index and is assigned a
// base-instance number derived from that index. The table also holds one
// opaque attached-data reference per index; the lifecycle manager uses it
// to associate its slot bookkeeping with the device.
//
// Removing a device fires the registered delete hook while the index still
// resolves, so the hook can look up the base instance before the entry is
// cleared. An index is only reused after its entry has been cleared, which
// keeps stale attached data from ever being observed for a new device.
package gateway
