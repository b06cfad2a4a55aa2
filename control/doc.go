// SPDX-License-Identifier: EPL-2.0

// Package control exposes a VBAP engine over HTTP and a WebSocket so a remote
// client can steer the source while audio plays.
//
// Direction updates received on either surface are broadcast to every
// connected WebSocket client as {"direction": ..., "gains": [...]}.
package control
