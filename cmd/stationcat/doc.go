// Command stationcat maintains the device catalog for the IC10 tooling.
//
// It imports device IO tables from the Stationeers wiki into
// catalog/devices/<title>.json, keeps catalog/index.json in sync, and
// validates a catalog directory. Subcommands share one configuration loaded
// from TOML and exit 0 on success, 1 on failure, and 2 on usage errors.
package main
