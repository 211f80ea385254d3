// Package pagemedia extracts the ordered list of media items (images, video,
// audio, pronunciation clips, math and timeline renderings) embedded in a
// server-rendered encyclopedia article, and merges in per-file metadata.
//
// This package contains domain types, pure helpers and interfaces following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, http/).
package pagemedia
