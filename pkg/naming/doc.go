/*
Package naming derives the on-disk directory name of a generated course from its id
and title, and parses such names back.

A directory name has the form <prefix><zero-padded id><separator><slug>. The id is
always the leading numeric component, so distinct ids can never map to the same
directory and a lexical listing of the output tree follows numeric id order.
*/
package naming
