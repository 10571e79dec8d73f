// Package transform implements the Workbench tools.
//
// Every tool is a registry.Transform: it validates its raw input, computes a
// domain.Output and reports failures as *domain.ToolError. Tools that produce
// files delegate the heavy lifting to the collaborators in pkg/ports.
package transform
