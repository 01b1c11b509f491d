// Package model defines the host-facing inputs and outputs shared by the
// dashboard widgets. TableInput and FormInput mirror the `inputData` payloads
// a host assigns to the table editor and form widgets; Theme mirrors the
// `theme` property. Every struct is annotated with the JSON names hosts
// already emit so payloads decode without adapters. Values are treated as
// read-only snapshots: widgets derive their own state from them and never
// write back.
package model
