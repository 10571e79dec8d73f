/*
Package observability turns lifecycle hooks into logs and Prometheus metrics.

Hooks from several sources can be chained with Combine and passed to the registry
(tool calls) and to the panel controller or session manager (panel switches).
*/
package observability
