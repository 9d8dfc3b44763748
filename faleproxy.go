// Package faleproxy fetches remote HTML documents and returns a copy in
// which a target term has been replaced in visible text, preserving the
// case of each occurrence. URLs, attribute values, tag names and comments
// are left untouched.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, rod/).
package faleproxy
