// Package plantuml prepares PlantUML diagram source for a PlantUML-compatible
// rendering server.
//
// # Overview
//
// The server accepts diagram text embedded directly in a URL path. The text
// is compressed with DEFLATE and re-encoded with the server's own 64-symbol
// alphabet:
//
//	0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_
//
// This is neither standard Base64 (RFC 4648) nor its URL-safe variant. Every
// 3 input bytes become 4 output characters, and a final group of 1 or 2
// bytes is zero-filled and still emits 4 characters. No padding symbol is
// ever written, so a token's length is always ceil(L/3)*4 for L compressed
// bytes.
//
// # Encoding
//
// [Encode] runs the whole pipeline with the default [Encoder]:
//
//	token, err := plantuml.Encode("@startuml\nAlice -> Bob: hello\n@enduml")
//	url := "https://www.plantuml.com/plantuml/png/~1" + token
//
// [Deflate] and [Encode64] expose the two stages separately. [Encode64] is a
// pure function of its input and never fails.
//
// # Decoding
//
// [Decode64], [Inflate] and [Decode] reverse the pipeline. They are used for
// diagnostics (the "umlpad decode" command) and to verify round trips.
//
// # Editing Helpers
//
// [ExtractEntities] scans source for participant, actor, class, interface,
// abstract and enum declarations for autocompletion. [InsertSnippet] inserts
// one of the [Snippets] at a selection.
package plantuml
