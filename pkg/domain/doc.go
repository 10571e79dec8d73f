/*
Package domain contains the core models of the Workbench toolkit.

It defines the values that flow through a single tool invocation: the raw Input,
the Output a transform derives from it, and the Result that wraps exactly one of a
success or a failure. It also holds the panel state and the tool metadata used by
the front ends. The package is kept free of I/O so it can be shared by every adapter.

# Key Entities

  - Tool: metadata about a registered transform (identifier, panel, parameters).
  - Input: the unvalidated fields a user submitted.
  - Result: Success(Output) or Failure(Kind, Message).
  - PanelState: the single active panel.
  - ToolEvent: the payload of lifecycle hooks fired around every invocation.
*/
package domain
