// Package workspace stages build output next to its final location and
// promotes it in one rename once the build has succeeded.
//
// For an output directory "release" the staging directory is the sibling
// "release_stage". On promotion the current "release" is moved to
// "release.prev", the staging directory takes its place, and the backup is
// removed. A failed build removes the staging directory and never touches
// the existing output.
package workspace
