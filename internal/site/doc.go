// Package site builds a complete site from a source tree.
//
// A build runs a fixed sequence of stages against one BuildState:
//
//	load      parse and render every post, load templates, index posts
//	posts     expand TOC directives, write one page per post
//	listings  write paginated listings (all posts, per tag, per month)
//	feed      write /feed.xml
//	assets    copy content-addressed assets, write /highlight.css
//	require   copy the configured requireFiles verbatim
//
// All output goes to a staging directory that replaces release/ only when
// every stage succeeded.
package site
