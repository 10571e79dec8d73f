/*
Package ports defines the driven ports (interfaces) of Workbench.

These interfaces decouple the transforms from the collaborators they delegate to,
so every tool can be tested with fakes and every collaborator can be swapped.

# Key Interfaces

  - Clipboard: writes text to the system clipboard.
  - DocumentRenderer: renders text into a paginated PDF document.
  - QREncoder: encodes text into a QR symbol.
  - ImageCodec and TextRasterizer: re-encode raster images and draw text onto a canvas.
  - Clock: the current time, for age arithmetic and the footer year.
  - PanelStore: keeps the active panel of a front-end session.
  - DistributedLocker: serialises panel updates across replicas.
*/
package ports
