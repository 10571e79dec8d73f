/*
Package session keeps the active panel of front-end sessions.

A session is an HTTP client that navigates the tool layout. The Manager serialises
updates per session with reference-counted local locks and, optionally, a distributed
lock so that several replicas can share one PanelStore.
*/
package session
