/*
Package ports defines the driven ports (interfaces) of the simulator.

These interfaces decouple the facade and the HTTP transport from concrete
storage backends.

# Key Interfaces

  - RunStore: persists finished runs (RunRecord) so they can be listed and reloaded.
*/
package ports
