/*
Package catalog extracts course records from the hand-maintained course listing.

The listing is free-form JavaScript-like text in which course objects sit between
style rules, helper functions and comments. Rather than parse it as a strict format,
the Extractor runs a small tolerant scanner over it: every brace-delimited fragment
that looks like a course record is validated on its own, valid ones become
CourseRecord values in source order, and broken ones are reported as Malformed
without stopping extraction. Only a source that cannot be read at all is an error.

Discover offers a second, weaker input: it recovers ids, titles and tags from the
directory names of a previously generated output tree.
*/
package catalog
